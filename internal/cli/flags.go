package cli

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/postbuild/internal/constants"
	"github.com/mrz1836/postbuild/internal/errors"
	"github.com/mrz1836/postbuild/internal/signal"
)

// Process exit codes. A Unity build script treats anything non-zero as a
// failed post-build step; 2 additionally means the invocation itself was
// wrong and retrying will not help.
const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitInvalidInput = 2
	// ExitInterrupted follows the shell convention of 128+SIGINT.
	ExitInterrupted = 130
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// GlobalFlags holds the persistent flags shared by every command. Each one
// except --config can also come from POSTBUILD_OUTPUT, POSTBUILD_VERBOSE and
// POSTBUILD_QUIET; a flag given on the command line wins.
type GlobalFlags struct {
	Output     string
	Verbose    bool
	Quiet      bool
	ConfigFile string
}

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "log every step at debug level")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "log warnings and errors only")
	pf.StringVarP(&flags.ConfigFile, "config", "c", "", "config file layered over .postbuild/config.yaml")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// resolveGlobalFlags fills flags from the command line and the POSTBUILD_*
// environment, then validates the result.
func resolveGlobalFlags(v *viper.Viper, cmd *cobra.Command, flags *GlobalFlags) error {
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	flags.Output = v.GetString("output")
	flags.Verbose = v.GetBool("verbose")
	flags.Quiet = v.GetBool("quiet")

	if !IsValidOutputFormat(flags.Output) {
		return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
	}
	if flags.Verbose && flags.Quiet {
		return errors.NewExitCode2Error(fmt.Errorf("%w: verbose and quiet are both set", errors.ErrFlagConflict))
	}

	// Subcommands read the format back from the flag.
	return cmd.Root().PersistentFlags().Set("output", flags.Output)
}

// ValidOutputFormats returns the accepted --output values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat reports whether format is an accepted --output value.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// flagError marks cobra flag parsing failures as invalid input.
func flagError(_ *cobra.Command, err error) error {
	return errors.NewExitCode2Error(err)
}

// ExitCodeForError maps a command error to the process exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case stderrors.Is(err, signal.ErrInterrupted):
		return ExitInterrupted
	case errors.IsExitCode2Error(err),
		stderrors.Is(err, errors.ErrInvalidOutputFormat),
		isUsageError(err.Error()):
		return ExitInvalidInput
	default:
		return ExitError
	}
}

// usageErrorMarkers are fragments of the cobra errors that bypass the flag
// error func: command lookup, positional args, and flag group checks.
//
//nolint:gochecknoglobals // fixed lookup table
var usageErrorMarkers = []string{
	"unknown command",
	"arg(s), received",
	"required flag",
	"if any flags in the group",
}

func isUsageError(msg string) bool {
	return slices.ContainsFunc(usageErrorMarkers, func(marker string) bool {
		return strings.Contains(msg, marker)
	})
}
