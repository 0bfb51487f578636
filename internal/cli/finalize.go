package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/postbuild/internal/ctxutil"
	"github.com/mrz1836/postbuild/internal/tui"
)

// FinalizeFlags holds flags for the finalize and plan commands.
type FinalizeFlags struct {
	BuildFlags

	// DryRun computes and prints the plan without changing anything.
	DryRun bool
}

// AddFinalizeCommand adds the finalize command to the root command.
func AddFinalizeCommand(root *cobra.Command) {
	flags := &FinalizeFlags{}

	cmd := &cobra.Command{
		Use:   "finalize <artifact-path>",
		Short: "Clean, stamp and rename a finished build",
		Long: `Finalize a build produced for --target at <artifact-path>.

Steps, in order:
  1. Windows targets: delete *.pdb files next to the executable.
  2. Write version.txt and bundleVersionCode.txt to the project root.
  3. Rename the output to {product}_{version}_{code}:
       Android        Game.apk        -> Game_1.0_37.apk
       macOS          Game.app        -> Game_1.0_0.app
       Windows        Game.exe        -> Game_1.0_0/Game.exe (+ Game_Data)
       WebGL          WebBuild/       -> WebBuild/Game_1.0_0/index.html (+ assets)

Other targets only get the version files. A run is not repeatable: running it
twice on the same artifact fails because the original output has moved.

Examples:
  postbuild finalize --target StandaloneWindows64 build/Game.exe
  postbuild finalize -t Android --android-version-code 37 build/Game.apk
  postbuild finalize -t WebGL --dry-run build/WebBuild`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFinalize(cmd.Context(), cmd, flags, args[0], flags.DryRun)
		},
	}

	addBuildFlags(cmd, &flags.BuildFlags)
	cmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "n", false, "print the plan without changing anything")

	root.AddCommand(cmd)
}

// AddPlanCommand adds the plan command, a finalize that never touches disk.
func AddPlanCommand(root *cobra.Command) {
	flags := &FinalizeFlags{}

	cmd := &cobra.Command{
		Use:   "plan <artifact-path>",
		Short: "Show what finalize would do",
		Long: `Print the operations finalize would perform for <artifact-path>
without deleting, writing or moving anything.

Example:
  postbuild plan --target StandaloneOSX build/Game.app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFinalize(cmd.Context(), cmd, flags, args[0], true)
		},
	}

	addBuildFlags(cmd, &flags.BuildFlags)

	root.AddCommand(cmd)
}

// runFinalize loads configuration and runs the finalizer for artifactPath.
func runFinalize(ctx context.Context, cmd *cobra.Command, flags *FinalizeFlags, artifactPath string, dryRun bool) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	format := outputFormat(cmd)
	out := tui.NewOutput(cmd.OutOrStdout(), format)
	errOut := tui.NewOutput(errorWriter(cmd, format), format)
	logger := GetLogger()

	cfg, err := loadBuildConfig(ctx, cmd, &flags.BuildFlags)
	if err != nil {
		return reportError(cmd, errOut, err)
	}

	target := resolveTarget(flags.Target, logger)
	if !target.IsKnown() && format == OutputText {
		errOut.Warning(fmt.Sprintf("unrecognized target %q: writing version files only", flags.Target))
	}

	f := newFinalizer(cfg, logger, dryRun)

	result, err := f.Finalize(ctx, target, artifactPath)
	if err != nil {
		if result != nil && len(result.Operations) > 0 && format == OutputText {
			errOut.Warning(fmt.Sprintf("%d step(s) completed before the failure and were not rolled back", len(result.Operations)))
		}
		return reportError(cmd, errOut, err)
	}

	out.Result(result)
	return nil
}
