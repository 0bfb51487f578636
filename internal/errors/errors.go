// Package errors holds the postbuild sentinel errors, the table of
// user-facing messages and suggested actions for them, and the marker type
// that turns an error into exit code 2.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: any internal package
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrArtifactNotFound indicates the build artifact passed to finalize does not exist.
	ErrArtifactNotFound = errors.New("build artifact not found")

	// ErrSourceMissing indicates a move or delete targeted a path that does not exist.
	ErrSourceMissing = errors.New("source path does not exist")

	// ErrTargetExists indicates a create or move targeted a path that already exists.
	ErrTargetExists = errors.New("target path already exists")

	// ErrInvalidVersionCode indicates a version code is not a decimal integer.
	ErrInvalidVersionCode = errors.New("invalid version code")

	// ErrMetadataWrite indicates the version metadata files could not be written.
	ErrMetadataWrite = errors.New("version metadata write failed")

	// ErrProjectLocked indicates that another finalize run holds the project lock.
	ErrProjectLocked = errors.New("project is locked by another run")

	// ErrUnknownTarget indicates a build target string is not recognized.
	// Finalize tolerates unknown targets; only commands that need a concrete
	// profile return this.
	ErrUnknownTarget = errors.New("unknown build target")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidProject indicates an invalid project configuration value.
	ErrConfigInvalidProject = errors.New("invalid project configuration")

	// ErrConfigInvalidPlatform indicates an invalid platform configuration value.
	ErrConfigInvalidPlatform = errors.New("invalid platform configuration")

	// ErrConfigInvalidSymbols indicates an invalid symbols configuration value.
	ErrConfigInvalidSymbols = errors.New("invalid symbols configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrFlagConflict indicates mutually exclusive options were both set,
	// on the command line or through POSTBUILD_* variables.
	ErrFlagConflict = errors.New("conflicting options")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")
)

// ExitCode2Error marks Err as a problem with the invocation (bad flags,
// bad arguments, incomplete configuration) rather than with the build.
// The CLI exits with status 2 for it.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error marks err as invalid input.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

func (e *ExitCode2Error) Error() string { return e.Err.Error() }

func (e *ExitCode2Error) Unwrap() error { return e.Err }

// IsExitCode2Error reports whether any error in err's chain is an ExitCode2Error.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
