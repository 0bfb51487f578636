package errors

import (
	"errors"
	"slices"
)

// ErrorInfo is what a user sees for an error: a sentence describing it and,
// when there is one, the next thing to try.
type ErrorInfo struct {
	Message string
	Action  string
}

type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is matched in order with errors.Is, so a wrapped sentinel
// anywhere in the chain finds its entry. The first match wins.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	// ===================
	// Build output
	// ===================
	{
		err: ErrArtifactNotFound,
		info: ErrorInfo{
			Message: "The build artifact does not exist.",
			Action:  "Check the artifact path, or whether this build was already finalized.",
		},
	},
	{
		err: ErrSourceMissing,
		info: ErrorInfo{
			Message: "A file the build layout expects is missing.",
			Action:  "Inspect the build directory; a previous run may have left it half-renamed.",
		},
	},
	{
		err: ErrTargetExists,
		info: ErrorInfo{
			Message: "The renamed build output already exists.",
			Action:  "Remove or archive the earlier output, or bump the version code.",
		},
	},
	{
		err: ErrProjectLocked,
		info: ErrorInfo{
			Message: "Another postbuild run is finalizing this project.",
			Action:  "Wait for the other build to finish, then retry.",
		},
	},
	{
		err: ErrUnknownTarget,
		info: ErrorInfo{
			Message: "The build target is not recognized.",
			Action:  "Run 'postbuild targets' to list supported targets.",
		},
	},

	// ===================
	// Version metadata
	// ===================
	{
		err: ErrInvalidVersionCode,
		info: ErrorInfo{
			Message: "The version code is not a whole number.",
			Action:  "Set ios.build_number or android.bundle_version_code to an integer.",
		},
	},
	{
		err: ErrMetadataWrite,
		info: ErrorInfo{
			Message: "Could not write version.txt or bundleVersionCode.txt.",
			Action:  "Check write permissions on the project root.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is not loaded.",
			Action:  "Ensure .postbuild/config.yaml exists and is valid YAML.",
		},
	},
	{
		err: ErrConfigInvalidProject,
		info: ErrorInfo{
			Message: "Invalid project configuration.",
			Action:  "Check the 'project' section or pass --product and --version.",
		},
	},
	{
		err: ErrConfigInvalidPlatform,
		info: ErrorInfo{
			Message: "Invalid platform configuration.",
			Action:  "Check the 'android' and 'ios' sections for invalid values.",
		},
	},
	{
		err: ErrConfigInvalidSymbols,
		info: ErrorInfo{
			Message: "Invalid symbols configuration.",
			Action:  "symbols.extension must start with a dot, e.g. '.pdb'.",
		},
	},
	{
		err: ErrEmptyValue,
		info: ErrorInfo{
			Message: "A required value was not provided.",
			Action:  "Provide the required value and try again.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrFlagConflict,
		info: ErrorInfo{
			Message: "Options that cannot be combined were both set.",
			Action:  "Check POSTBUILD_VERBOSE and POSTBUILD_QUIET as well as the flags.",
		},
	},
}

// lookup returns the table entry for err, or err's own text with no action.
func lookup(err error) ErrorInfo {
	i := slices.IndexFunc(errorInfoEntries, func(e errorEntry) bool {
		return errors.Is(err, e.err)
	})
	if i < 0 {
		return ErrorInfo{Message: err.Error()}
	}
	return errorInfoEntries[i].info
}

// UserMessage returns the user-facing sentence for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return lookup(err).Message
}

// Actionable returns the user-facing sentence for err and the suggested
// next step, which is empty when there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := lookup(err)
	return info.Message, info.Action
}
