// Package cli wires the postbuild commands: finalize, plan, version-files,
// targets and config show.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BuildInfo is stamped into the binary with -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// String renders the --version line, filling unset fields.
func (b BuildInfo) String() string {
	orDefault := func(s, def string) string {
		if s == "" {
			return def
		}
		return s
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)",
		orDefault(b.Version, "dev"), orDefault(b.Commit, "none"), orDefault(b.Date, "unknown"))
}

const rootLong = `postbuild runs once after a player build completes. It:

  • deletes debug symbol files next to Windows builds
  • writes version.txt and bundleVersionCode.txt to the project root
  • renames the build output to {product}_{version}_{code}

Product name, version and version codes come from .postbuild/config.yaml,
~/.postbuild/config.yaml, POSTBUILD_* environment variables, or flags.`

// newRootCmd builds the command tree. flags receives the resolved global
// flags before any subcommand runs.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "postbuild",
		Short:        "Finalize game builds after the engine finishes writing them",
		Long:         rootLong,
		Version:      info.String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := resolveGlobalFlags(v, cmd, flags); err != nil {
				return err
			}

			logger := NewLogger(LogOptions{
				Verbose: flags.Verbose,
				Quiet:   flags.Quiet,
				File:    logFileEnabled(cmd.Context(), flags.ConfigFile),
			})
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.SetFlagErrorFunc(flagError)

	AddGlobalFlags(cmd, flags)
	for _, add := range []func(*cobra.Command){
		AddFinalizeCommand,
		AddPlanCommand,
		AddVersionFilesCommand,
		AddTargetsCommand,
		AddConfigCommand,
	} {
		add(cmd)
	}
	return cmd
}

// Execute runs the postbuild command tree with ctx. Interrupt handling and
// log file cleanup are the caller's job.
func Execute(ctx context.Context, info BuildInfo) error {
	//nolint:contextcheck // cobra passes ctx through cmd.Context()
	return newRootCmd(&GlobalFlags{}, info).ExecuteContext(ctx)
}
