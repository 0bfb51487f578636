package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/postbuild/internal/ctxutil"
	"github.com/mrz1836/postbuild/internal/metadata"
	"github.com/mrz1836/postbuild/internal/tui"
)

// versionFilesResult is the JSON response of the version-files command.
type versionFilesResult struct {
	Target      string `json:"target"`
	Version     string `json:"version"`
	VersionCode int    `json:"version_code"`
	VersionFile string `json:"version_file"`
	CodeFile    string `json:"code_file"`
	DryRun      bool   `json:"dry_run"`
}

// AddVersionFilesCommand adds the version-files command to the root command.
func AddVersionFilesCommand(root *cobra.Command) {
	flags := &FinalizeFlags{}

	cmd := &cobra.Command{
		Use:   "version-files",
		Short: "Write version.txt and bundleVersionCode.txt only",
		Long: `Write the version metadata files for --target without cleaning or
renaming any build output. Useful for builds that are relocated elsewhere.

The version code is the Android bundle version code for Android, the iOS
build number for iOS, and 0 for every other target.

Example:
  postbuild version-files --target iOS --ios-build-number 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersionFiles(cmd.Context(), cmd, flags)
		},
	}

	addBuildFlags(cmd, &flags.BuildFlags)
	cmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "n", false, "print the values without writing")

	root.AddCommand(cmd)
}

func runVersionFiles(ctx context.Context, cmd *cobra.Command, flags *FinalizeFlags) error {
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
	f := newFinalizer(cfg, logger, flags.DryRun)

	info, err := f.WriteVersionFiles(ctx, target)
	if err != nil {
		return reportError(cmd, errOut, err)
	}

	versionPath, codePath := metadata.Paths(cfg.Project.Root)
	if format == OutputJSON {
		return out.JSON(versionFilesResult{
			Target:      target.String(),
			Version:     info.Version,
			VersionCode: info.Code,
			VersionFile: versionPath,
			CodeFile:    codePath,
			DryRun:      flags.DryRun,
		})
	}

	if flags.DryRun {
		out.Info(fmt.Sprintf("would write %s (%s) and %s (%d)", versionPath, info.Version, codePath, info.Code))
		return nil
	}
	out.Success(fmt.Sprintf("wrote %s (%s) and %s (%d)", versionPath, info.Version, codePath, info.Code))
	return nil
}
