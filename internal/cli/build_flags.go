package cli

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/postbuild/internal/config"
	"github.com/mrz1836/postbuild/internal/domain"
	"github.com/mrz1836/postbuild/internal/errors"
	"github.com/mrz1836/postbuild/internal/finalize"
	"github.com/mrz1836/postbuild/internal/tui"
)

// BuildFlags holds the per-build settings shared by finalize, plan and
// version-files. Non-empty values override the loaded configuration;
// --android-version-code overrides it whenever given, including 0.
type BuildFlags struct {
	Target             string
	Product            string
	Version            string
	AndroidVersionCode int
	IOSBuildNumber     string
	ProjectRoot        string
}

// addBuildFlags registers the shared build flags on cmd.
func addBuildFlags(cmd *cobra.Command, flags *BuildFlags) {
	cmd.Flags().StringVarP(&flags.Target, "target", "t", "", "build target (e.g. StandaloneWindows64, Android, WebGL)")
	cmd.Flags().StringVar(&flags.Product, "product", "", "product name (overrides project.product_name)")
	cmd.Flags().StringVar(&flags.Version, "version", "", "version string (overrides project.version)")
	cmd.Flags().IntVar(&flags.AndroidVersionCode, "android-version-code", 0, "Android bundle version code")
	cmd.Flags().StringVar(&flags.IOSBuildNumber, "ios-build-number", "", "iOS build number")
	cmd.Flags().StringVar(&flags.ProjectRoot, "project-root", "", "directory receiving version.txt and bundleVersionCode.txt")
	_ = cmd.MarkFlagRequired("target")
}

// overrides converts the flags to a partial Config for config.Resolve.
func (f *BuildFlags) overrides() *config.Config {
	o := &config.Config{}
	o.Project.ProductName = f.Product
	o.Project.Version = f.Version
	o.Project.Root = f.ProjectRoot
	o.Android.BundleVersionCode = f.AndroidVersionCode
	o.IOS.BuildNumber = f.IOSBuildNumber
	return o
}

// loadBuildConfig resolves and validates configuration for a build command.
// Validation failures are user input errors and exit with code 2.
func loadBuildConfig(ctx context.Context, cmd *cobra.Command, flags *BuildFlags) (*config.Config, error) {
	configFile := ""
	if f := cmd.Flag("config"); f != nil {
		configFile = f.Value.String()
	}

	cfg, err := config.Resolve(ctx, configFile, flags.overrides())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	if cmd.Flags().Changed("android-version-code") {
		cfg.Android.BundleVersionCode = flags.AndroidVersionCode
	}

	if err := config.Validate(cfg); err != nil {
		err = errors.Wrap(err, "invalid configuration")
		if isConfigValidationError(err) {
			return nil, errors.NewExitCode2Error(err)
		}
		return nil, err
	}
	return cfg, nil
}

func isConfigValidationError(err error) bool {
	for _, sentinel := range []error{
		errors.ErrConfigInvalidProject,
		errors.ErrConfigInvalidPlatform,
		errors.ErrConfigInvalidSymbols,
		errors.ErrEmptyValue,
	} {
		if stderrors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// resolveTarget parses the --target value. Unrecognized targets are allowed
// and only logged; they get metadata but no relocation.
func resolveTarget(raw string, logger zerolog.Logger) domain.BuildTarget {
	target, ok := domain.ParseBuildTarget(raw)
	if !ok {
		logger.Warn().Str("target", raw).Msg("unrecognized build target")
	}
	return target
}

// newFinalizer builds the finalizer used by finalize, plan and version-files.
// If the lock directory cannot be prepared the run proceeds without the
// project lock.
func newFinalizer(cfg *config.Config, logger zerolog.Logger, dryRun bool) *finalize.Finalizer {
	opts := []finalize.Option{
		finalize.WithLogger(logger),
		finalize.WithDryRun(dryRun),
	}
	if !dryRun {
		if dir, err := config.LockDir(); err != nil {
			logger.Warn().Err(err).Msg("project lock unavailable")
		} else {
			opts = append(opts, finalize.WithLockDir(dir))
		}
	}
	return finalize.New(cfg, opts...)
}

// outputFormat returns the global --output value.
func outputFormat(cmd *cobra.Command) string {
	if f := cmd.Flag("output"); f != nil {
		return f.Value.String()
	}
	return OutputText
}

// reportError prints err through out with its user-facing message and
// suggested action, then silences cobra's own error printing. The error is
// returned unchanged so the exit code still reflects it.
func reportError(cmd *cobra.Command, out tui.Output, err error) error {
	out.Error(tui.NewActionableError(err))
	cmd.SilenceErrors = true
	return err
}

// errorWriter returns where errors go for format: stdout for JSON so scripts
// read one stream, stderr otherwise.
func errorWriter(cmd *cobra.Command, format string) io.Writer {
	if format == OutputJSON {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}
