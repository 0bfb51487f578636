package tui

import (
	pberrors "github.com/mrz1836/postbuild/internal/errors"
)

// ActionableError wraps an error with a user-facing message and suggestion.
//
// Example usage:
//
//	out.Error(NewActionableError(err))
//	// Outputs: ✗ The renamed build output already exists. (move build/Game.exe ...)
//	//          ▸ Try: Remove or archive the earlier output, or bump the version code.
type ActionableError struct {
	// Message is the user-facing error description.
	Message string

	// Suggestion provides guidance for resolving the error.
	Suggestion string

	// Context is the underlying error text, shown after the message.
	Context string

	err error
}

// NewActionableError builds an ActionableError from err using the user message table.
// Errors without a table entry keep their own text and get no suggestion.
func NewActionableError(err error) *ActionableError {
	msg, action := pberrors.Actionable(err)
	ae := &ActionableError{Message: msg, Suggestion: action, err: err}
	if msg != err.Error() {
		ae.Context = err.Error()
	}
	return ae
}

// Error implements the error interface.
func (e *ActionableError) Error() string {
	if e.Context != "" {
		return e.Message + " (" + e.Context + ")"
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ActionableError) Unwrap() error {
	return e.err
}
