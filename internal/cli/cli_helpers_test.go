package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// cliRun holds the captured streams of one command execution.
type cliRun struct {
	stdout string
	stderr string
	err    error
}

// isolateCLI points POSTBUILD_HOME at a temp dir and clears environment
// overrides so commands only see flags and explicit config files.
func isolateCLI(t *testing.T) {
	t.Helper()
	t.Setenv("POSTBUILD_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{
		"POSTBUILD_PROJECT_PRODUCT_NAME",
		"POSTBUILD_PROJECT_VERSION",
		"POSTBUILD_PROJECT_ROOT",
		"POSTBUILD_ANDROID_BUNDLE_VERSION_CODE",
		"POSTBUILD_IOS_BUILD_NUMBER",
		"POSTBUILD_SYMBOLS_EXTENSION",
		"POSTBUILD_WEB_OPTIONAL_DIRS",
		"POSTBUILD_LOG_FILE",
		"POSTBUILD_OUTPUT",
		"POSTBUILD_VERBOSE",
		"POSTBUILD_QUIET",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Cleanup(CloseLogFile)
}

// execute runs the root command with args in an isolated environment.
func execute(t *testing.T, args ...string) cliRun {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

// executeContext is execute with a caller-supplied context.
func executeContext(t *testing.T, ctx context.Context, args ...string) cliRun {
	t.Helper()
	isolateCLI(t)
	return runCLI(ctx, args...)
}

// runCLI runs the root command without touching the environment. Tests that
// set POSTBUILD_* variables call isolateCLI first and then runCLI.
func runCLI(ctx context.Context, args ...string) cliRun {
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return cliRun{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
