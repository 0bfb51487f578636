package tui

import (
	"io"

	"github.com/mrz1836/postbuild/internal/domain"
)

// Output is what commands print through. TTYOutput and JSONOutput render
// the same calls for people and for scripts.
type Output interface {
	Success(msg string)
	// Error prints err, with its suggested action when it is an ActionableError.
	Error(err error)
	Warning(msg string)
	Info(msg string)
	Table(headers []string, rows [][]string)
	// Result prints the operations and outcome of a finalize or plan run.
	Result(r *domain.Result)
	JSON(v any) error
}

// Format names accepted by NewOutput.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewOutput returns a JSONOutput for FormatJSON and a TTYOutput otherwise.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}
