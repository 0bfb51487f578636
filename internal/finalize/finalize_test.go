package finalize

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/postbuild/internal/clock"
	"github.com/mrz1836/postbuild/internal/config"
	"github.com/mrz1836/postbuild/internal/domain"
	pberrors "github.com/mrz1836/postbuild/internal/errors"
	"github.com/mrz1836/postbuild/internal/flock"
	"github.com/mrz1836/postbuild/internal/fsops"
	"github.com/mrz1836/postbuild/internal/metadata"
	"github.com/mrz1836/postbuild/internal/platform"
	"github.com/mrz1836/postbuild/internal/testutil"
)

func testConfig(root, version string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Project.ProductName = "Game"
	cfg.Project.Version = version
	cfg.Project.Root = root
	return cfg
}

// assertMetadata checks version.txt and bundleVersionCode.txt under root.
func assertMetadata(t *testing.T, root, version, code string) {
	t.Helper()
	versionPath, codePath := metadata.Paths(root)
	assert.Equal(t, version, testutil.ReadFile(t, versionPath))
	assert.Equal(t, code, testutil.ReadFile(t, codePath))
}

func TestFinalize_Windows(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	exe := testutil.WindowsBuild(t, build, "Game")

	f := New(testConfig(project, "2.0"))
	result, err := f.Finalize(context.Background(), domain.TargetStandaloneWindows64, exe)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Game_2.0_0/",
		"Game_2.0_0/Game.exe",
		"Game_2.0_0/Game_Data/",
		"Game_2.0_0/Game_Data/data.unity3d",
	}, testutil.Tree(t, build))
	assertMetadata(t, project, "2.0", "0")

	assert.Equal(t, filepath.Join(build, "Game_2.0_0"), result.OutputPath)
	assert.Equal(t, "Game_2.0_0", result.VersionName)
	assert.True(t, result.Relocated())
	assert.Len(t, result.DeletedSymbols, 2)
}

func TestFinalize_WindowsRenamesExecutableToProductName(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	exe := testutil.WindowsBuild(t, build, "MyGame-Win")

	cfg := testConfig(project, "3.1")
	cfg.Project.ProductName = "Quest"

	_, err := New(cfg).Finalize(context.Background(), domain.TargetStandaloneWindows, exe)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Quest_3.1_0/",
		"Quest_3.1_0/Quest.exe",
		"Quest_3.1_0/Quest_Data/",
		"Quest_3.1_0/Quest_Data/data.unity3d",
	}, testutil.Tree(t, build))
}

func TestFinalize_SymbolCleanupRunsBeforeRename(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	exe := testutil.WindowsBuild(t, build, "Game")
	testutil.WriteFile(t, filepath.Join(build, "a.pdb"), "a")
	testutil.WriteFile(t, filepath.Join(build, "b.PDB"), "b")
	testutil.WriteFile(t, filepath.Join(build, "c.dll"), "c")
	testutil.WriteFile(t, filepath.Join(build, "Game_Data", "nested.pdb"), "nested")

	result, err := New(testConfig(project, "1.0")).Finalize(context.Background(), domain.TargetStandaloneWindows, exe)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(build, "c.dll"))
	assert.NoFileExists(t, filepath.Join(build, "a.pdb"))
	assert.NoFileExists(t, filepath.Join(build, "b.PDB"))
	// Only the build directory itself is scanned.
	assert.FileExists(t, filepath.Join(build, "Game_1.0_0", "Game_Data", "nested.pdb"))

	require.Len(t, result.DeletedSymbols, 4)
	for i, op := range result.Operations[:4] {
		assert.Equal(t, domain.OpDelete, op.Kind, "operation %d", i)
	}
	assert.Equal(t, domain.OpMkdir, result.Operations[4].Kind)
}

func TestFinalize_SymbolCleanupOnlyOnWindows(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	app := testutil.MacBuild(t, build, "Game")
	testutil.WriteFile(t, filepath.Join(build, "Game.pdb"), "symbols")

	result, err := New(testConfig(project, "1.1")).Finalize(context.Background(), domain.TargetStandaloneOSX, app)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(build, "Game.pdb"))
	assert.Empty(t, result.DeletedSymbols)
}

func TestFinalize_CustomSymbolExtension(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	exe := testutil.WindowsBuild(t, build, "Game")
	testutil.WriteFile(t, filepath.Join(build, "Game.sym"), "sym")

	cfg := testConfig(project, "1.0")
	cfg.Symbols.Extension = ".sym"

	result, err := New(cfg).Finalize(context.Background(), domain.TargetStandaloneWindows64, exe)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(build, "Game.sym")}, result.DeletedSymbols)
	assert.FileExists(t, filepath.Join(build, "Game.pdb"))
}

func TestFinalize_WebGL(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	web := testutil.WebBuild(t, filepath.Join(build, "WebBuild"), "TemplateData")

	result, err := New(testConfig(project, "1.0")).Finalize(context.Background(), domain.TargetWebGL, web)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Game_1.0_0/",
		"Game_1.0_0/TemplateData/",
		"Game_1.0_0/TemplateData/asset.bin",
		"Game_1.0_0/index.html",
	}, testutil.Tree(t, web))
	assert.NoFileExists(t, filepath.Join(web, "index.html"))
	assertMetadata(t, project, "1.0", "0")

	require.Len(t, result.Operations, 5)
	assert.False(t, result.Operations[2].Skipped, "TemplateData moved")
	assert.True(t, result.Operations[3].Skipped, "Release absent")
	assert.True(t, result.Operations[4].Skipped, "Debug absent")
}

func TestFinalize_WebGLAllAssetDirs(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	web := testutil.WebBuild(t, filepath.Join(build, "WebBuild"), "TemplateData", "Release", "Debug", "StreamingAssets")

	_, err := New(testConfig(project, "1.0")).Finalize(context.Background(), domain.TargetWebGL, web)
	require.NoError(t, err)

	dst := filepath.Join(web, "Game_1.0_0")
	for _, d := range []string{"TemplateData", "Release", "Debug"} {
		assert.DirExists(t, filepath.Join(dst, d))
	}
	// Directories outside the configured list stay put.
	assert.DirExists(t, filepath.Join(web, "StreamingAssets"))
}

func TestFinalize_WebGLLeavesPlainFilesNamedLikeAssetDirs(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	web := testutil.WebBuild(t, filepath.Join(build, "WebBuild"), "TemplateData")
	testutil.WriteFile(t, filepath.Join(web, "Release"), "not a folder")

	result, err := New(testConfig(project, "1.0")).Finalize(context.Background(), domain.TargetWebGL, web)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(web, "Release"))
	assert.NoFileExists(t, filepath.Join(web, "Game_1.0_0", "Release"))
	assert.DirExists(t, filepath.Join(web, "Game_1.0_0", "TemplateData"))

	require.Len(t, result.Operations, 5)
	assert.True(t, result.Operations[3].Skipped, "Release is a file")
}

func TestFinalize_Mac(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	app := testutil.MacBuild(t, build, "Game")

	for _, target := range []domain.BuildTarget{
		domain.TargetStandaloneOSX,
		domain.TargetStandaloneOSXIntel,
		domain.TargetStandaloneOSXIntel64,
	} {
		require.Equal(t, platform.RelocateSingleFile, platform.Lookup(target).Relocation, target.String())
	}

	result, err := New(testConfig(project, "1.1")).Finalize(context.Background(), domain.TargetStandaloneOSX, app)
	require.NoError(t, err)

	assert.NoDirExists(t, app)
	assert.FileExists(t, filepath.Join(build, "Game_1.1_0.app", "Contents", "Info.plist"))
	assert.Equal(t, filepath.Join(build, "Game_1.1_0.app"), result.OutputPath)
}

func TestFinalize_TrailingSeparator(t *testing.T) {
	t.Parallel()
	sep := string(filepath.Separator)

	t.Run("mac bundle", func(t *testing.T) {
		t.Parallel()
		project, build := t.TempDir(), t.TempDir()
		app := testutil.MacBuild(t, build, "Game")

		result, err := New(testConfig(project, "1.1")).Finalize(context.Background(), domain.TargetStandaloneOSX, app+sep)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"Game_1.1_0.app/",
			"Game_1.1_0.app/Contents/",
			"Game_1.1_0.app/Contents/Info.plist",
		}, testutil.Tree(t, build))
		assert.Equal(t, app, result.ArtifactPath)
		assert.Equal(t, filepath.Join(build, "Game_1.1_0.app"), result.OutputPath)
	})

	t.Run("web folder", func(t *testing.T) {
		t.Parallel()
		project, build := t.TempDir(), t.TempDir()
		web := testutil.WebBuild(t, filepath.Join(build, "WebBuild"), "TemplateData")

		result, err := New(testConfig(project, "1.0")).Finalize(context.Background(), domain.TargetWebGL, web+sep+sep)
		require.NoError(t, err)

		assert.FileExists(t, filepath.Join(web, "Game_1.0_0", "index.html"))
		assert.DirExists(t, filepath.Join(web, "Game_1.0_0", "TemplateData"))
		assert.Equal(t, filepath.Join(web, "Game_1.0_0"), result.OutputPath)
	})
}

func TestFinalize_Android(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	apk := testutil.AndroidBuild(t, build, "Game")

	cfg := testConfig(project, "1.0")
	cfg.Android.BundleVersionCode = 37

	result, err := New(cfg).Finalize(context.Background(), domain.TargetAndroid, apk)
	require.NoError(t, err)

	assert.Equal(t, []string{"Game_1.0_37.apk"}, testutil.Tree(t, build))
	assertMetadata(t, project, "1.0", "37")
	assert.Equal(t, "37", result.VersionCode)
}

func TestFinalize_IOS(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	xcode := filepath.Join(build, "ios")
	testutil.WriteFile(t, filepath.Join(xcode, "Unity-iPhone.xcodeproj", "project.pbxproj"), "{}")

	cfg := testConfig(project, "4.2.0")
	cfg.IOS.BuildNumber = "12"

	result, err := New(cfg).Finalize(context.Background(), domain.TargetIOS, xcode)
	require.NoError(t, err)

	assertMetadata(t, project, "4.2.0", "12")
	assert.Equal(t, xcode, result.OutputPath)
	assert.False(t, result.Relocated())
	assert.Empty(t, result.Operations)
}

func TestFinalize_IOSInvalidBuildNumber(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	xcode := filepath.Join(build, "ios")
	testutil.MkdirAll(t, xcode)

	cfg := testConfig(project, "4.2.0")
	cfg.IOS.BuildNumber = "12b"

	_, err := New(cfg).Finalize(context.Background(), domain.TargetIOS, xcode)
	require.ErrorIs(t, err, pberrors.ErrInvalidVersionCode)

	versionPath, codePath := metadata.Paths(project)
	assert.NoFileExists(t, versionPath)
	assert.NoFileExists(t, codePath)
}

func TestFinalize_UnrecognizedTarget(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	artifact := filepath.Join(build, "Game.rom")
	testutil.WriteFile(t, artifact, "rom")

	result, err := New(testConfig(project, "1.0")).Finalize(context.Background(), domain.BuildTarget("Dreamcast"), artifact)
	require.NoError(t, err)

	assertMetadata(t, project, "1.0", "0")
	assert.FileExists(t, artifact)
	assert.Equal(t, []string{"Game.rom"}, testutil.Tree(t, build))
	assert.Equal(t, artifact, result.OutputPath)
	assert.False(t, result.Relocated())
}

func TestFinalize_MetadataForEveryTarget(t *testing.T) {
	t.Parallel()

	for _, profile := range platform.All() {
		t.Run(profile.Target.String(), func(t *testing.T) {
			t.Parallel()
			project, build := t.TempDir(), t.TempDir()

			var artifact string
			switch profile.Relocation {
			case platform.RelocateWindows:
				artifact = testutil.WindowsBuild(t, build, "Game")
			case platform.RelocateWeb:
				artifact = testutil.WebBuild(t, filepath.Join(build, "web"))
			case platform.RelocateSingleFile:
				artifact = filepath.Join(build, "Game.out")
				testutil.WriteFile(t, artifact, "out")
			case platform.RelocateNone:
				artifact = filepath.Join(build, "out")
				testutil.MkdirAll(t, artifact)
			}

			cfg := testConfig(project, "5.0.1")
			cfg.Android.BundleVersionCode = 8
			cfg.IOS.BuildNumber = "6"

			_, err := New(cfg).Finalize(context.Background(), profile.Target, artifact)
			require.NoError(t, err)

			want := "0"
			switch profile.Target {
			case domain.TargetAndroid:
				want = "8"
			case domain.TargetIOS:
				want = "6"
			}
			assertMetadata(t, project, "5.0.1", want)
		})
	}
}

func TestFinalize_SecondRunFails(t *testing.T) {
	t.Parallel()

	t.Run("single file artifact is gone", func(t *testing.T) {
		t.Parallel()
		project, build := t.TempDir(), t.TempDir()
		app := testutil.MacBuild(t, build, "Game")
		f := New(testConfig(project, "1.1"))

		_, err := f.Finalize(context.Background(), domain.TargetStandaloneOSX, app)
		require.NoError(t, err)

		_, err = f.Finalize(context.Background(), domain.TargetStandaloneOSX, app)
		require.ErrorIs(t, err, pberrors.ErrArtifactNotFound)
	})

	t.Run("windows destination already exists", func(t *testing.T) {
		t.Parallel()
		project, build := t.TempDir(), t.TempDir()
		exe := testutil.WindowsBuild(t, build, "Game")
		f := New(testConfig(project, "2.0"))

		_, err := f.Finalize(context.Background(), domain.TargetStandaloneWindows64, exe)
		require.NoError(t, err)

		// Rebuild into the same directory without bumping the version.
		testutil.WindowsBuild(t, build, "Game")
		result, err := f.Finalize(context.Background(), domain.TargetStandaloneWindows64, exe)
		require.ErrorIs(t, err, pberrors.ErrTargetExists)

		// Metadata and symbol cleanup ran before the failing step.
		assertMetadata(t, project, "2.0", "0")
		assert.Len(t, result.DeletedSymbols, 2)
		assert.FileExists(t, exe)
	})

	t.Run("web page already moved", func(t *testing.T) {
		t.Parallel()
		project, build := t.TempDir(), t.TempDir()
		web := testutil.WebBuild(t, filepath.Join(build, "WebBuild"), "TemplateData")
		f := New(testConfig(project, "1.0"))

		_, err := f.Finalize(context.Background(), domain.TargetWebGL, web)
		require.NoError(t, err)

		_, err = f.Finalize(context.Background(), domain.TargetWebGL, web)
		require.ErrorIs(t, err, pberrors.ErrTargetExists)
	})
}

func TestFinalize_MissingDataDirectoryLeavesPartialState(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	exe := filepath.Join(build, "Game.exe")
	testutil.WriteFile(t, exe, "MZ")

	result, err := New(testConfig(project, "2.0")).Finalize(context.Background(), domain.TargetStandaloneWindows, exe)
	require.ErrorIs(t, err, pberrors.ErrSourceMissing)
	require.NotNil(t, result)

	// No rollback: the directory and moved executable stay.
	assert.Equal(t, []string{"Game_2.0_0/", "Game_2.0_0/Game.exe"}, testutil.Tree(t, build))
	assert.Len(t, result.Operations, 2)
	assert.Equal(t, exe, result.OutputPath)
}

func TestFinalize_DryRun(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	exe := testutil.WindowsBuild(t, build, "Game")
	before := testutil.Tree(t, build)

	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	result, err := New(testConfig(project, "2.0"), WithDryRun(true), WithClock(clock.Fixed(at))).
		Finalize(context.Background(), domain.TargetStandaloneWindows64, exe)
	require.NoError(t, err)

	assert.Equal(t, before, testutil.Tree(t, build))
	assert.Equal(t, at, result.StartedAt)
	assert.Zero(t, result.Duration())
	assert.Empty(t, testutil.Tree(t, project), "metadata files are not written")

	assert.True(t, result.DryRun)
	assert.Equal(t, "0", result.VersionCode)
	assert.Equal(t, filepath.Join(build, "Game_2.0_0"), result.OutputPath)
	require.Len(t, result.Operations, 5)
	assert.Equal(t, domain.OpDelete, result.Operations[0].Kind)
	assert.Equal(t, domain.OpMkdir, result.Operations[2].Kind)
}

func TestFinalize_DryRunUsesConfiguredCode(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	apk := testutil.AndroidBuild(t, build, "Game")

	cfg := testConfig(project, "1.0")
	cfg.Android.BundleVersionCode = 41

	result, err := New(cfg, WithDryRun(true)).Finalize(context.Background(), domain.TargetAndroid, apk)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(build, "Game_1.0_41.apk"), result.OutputPath)
	assert.FileExists(t, apk)
	assert.False(t, fsops.Exists(result.OutputPath))
}

func TestFinalize_InputErrors(t *testing.T) {
	t.Parallel()

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		project, build := t.TempDir(), t.TempDir()
		app := testutil.MacBuild(t, build, "Game")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New(testConfig(project, "1.0")).Finalize(ctx, domain.TargetStandaloneOSX, app)
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, testutil.Tree(t, project))
		assert.DirExists(t, app)
	})

	t.Run("missing artifact", func(t *testing.T) {
		t.Parallel()
		project := t.TempDir()

		_, err := New(testConfig(project, "1.0")).
			Finalize(context.Background(), domain.TargetAndroid, filepath.Join(project, "nope.apk"))
		require.ErrorIs(t, err, pberrors.ErrArtifactNotFound)
		assert.Empty(t, testutil.Tree(t, project))
	})

	t.Run("empty artifact path", func(t *testing.T) {
		t.Parallel()
		project := t.TempDir()

		_, err := New(testConfig(project, "1.0")).Finalize(context.Background(), domain.TargetAndroid, "")
		require.ErrorIs(t, err, pberrors.ErrArtifactNotFound)
		assert.Empty(t, testutil.Tree(t, project))
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil).Finalize(context.Background(), domain.TargetAndroid, t.TempDir())
		require.ErrorIs(t, err, pberrors.ErrConfigNil)
	})
}

func TestFinalize_ResultFields(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	app := testutil.MacBuild(t, build, "Game")

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := New(testConfig(project, "1.1"), WithClock(&testutil.StepClock{Start: start, Step: 250 * time.Millisecond}))
	f.newID = func() string { return "run-1" }

	result, err := f.Finalize(context.Background(), domain.TargetStandaloneOSX, app)
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, domain.TargetStandaloneOSX, result.Target)
	assert.Equal(t, app, result.ArtifactPath)
	assert.Equal(t, "1.1", result.Version)
	assert.Equal(t, start, result.StartedAt)
	assert.Equal(t, 250*time.Millisecond, result.Duration())
}

func TestFinalize_Logging(t *testing.T) {
	t.Parallel()
	project, build := t.TempDir(), t.TempDir()
	exe := testutil.WindowsBuild(t, build, "Game")

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	f := New(testConfig(project, "2.0"), WithLogger(logger))
	f.newID = func() string { return "run-42" }

	_, err := f.Finalize(context.Background(), domain.TargetStandaloneWindows64, exe)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"run_id":"run-42"`)
	assert.Contains(t, out, `"target":"StandaloneWindows64"`)
	assert.Contains(t, out, "deleted symbol file")
	assert.Contains(t, out, "built path")
	assert.Contains(t, out, "destination path")
	assert.Contains(t, out, "renamed successfully")
	assert.Contains(t, out, "build finalized")
}

func TestWriteVersionFiles(t *testing.T) {
	t.Parallel()

	t.Run("writes both files", func(t *testing.T) {
		t.Parallel()
		project := t.TempDir()
		cfg := testConfig(project, "1.2.3")
		cfg.Android.BundleVersionCode = 99

		info, err := New(cfg).WriteVersionFiles(context.Background(), domain.TargetAndroid)
		require.NoError(t, err)

		assert.Equal(t, metadata.Info{Version: "1.2.3", Code: 99}, info)
		assertMetadata(t, project, "1.2.3", "99")
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		t.Parallel()
		project := t.TempDir()

		info, err := New(testConfig(project, "1.2.3"), WithDryRun(true)).
			WriteVersionFiles(context.Background(), domain.TargetWebGL)
		require.NoError(t, err)

		assert.Equal(t, metadata.Info{Version: "1.2.3", Code: 0}, info)
		assert.Empty(t, testutil.Tree(t, project))
	})
}

func TestFinalize_ProjectLock(t *testing.T) {
	t.Parallel()

	t.Run("concurrent run is refused", func(t *testing.T) {
		t.Parallel()
		project, build, locks := t.TempDir(), t.TempDir(), t.TempDir()
		apk := testutil.AndroidBuild(t, build, "Game")

		path, err := flock.ProjectLockPath(locks, project)
		require.NoError(t, err)
		held, err := flock.TryAcquire(path)
		require.NoError(t, err)
		defer func() { require.NoError(t, held.Release()) }()

		f := New(testConfig(project, "1.0"), WithLockDir(locks))
		result, err := f.Finalize(context.Background(), domain.TargetAndroid, apk)
		require.ErrorIs(t, err, pberrors.ErrProjectLocked)
		assert.Nil(t, result)
		assert.FileExists(t, apk)
		assert.Empty(t, testutil.Tree(t, project))

		_, err = f.WriteVersionFiles(context.Background(), domain.TargetAndroid)
		require.ErrorIs(t, err, pberrors.ErrProjectLocked)
	})

	t.Run("lock is released after a run", func(t *testing.T) {
		t.Parallel()
		project, build, locks := t.TempDir(), t.TempDir(), t.TempDir()
		apk := testutil.AndroidBuild(t, build, "Game")

		f := New(testConfig(project, "1.0"), WithLockDir(locks))
		_, err := f.Finalize(context.Background(), domain.TargetAndroid, apk)
		require.NoError(t, err)

		path, err := flock.ProjectLockPath(locks, project)
		require.NoError(t, err)
		lock, err := flock.TryAcquire(path)
		require.NoError(t, err)
		require.NoError(t, lock.Release())
	})

	t.Run("dry run ignores a held lock", func(t *testing.T) {
		t.Parallel()
		project, build, locks := t.TempDir(), t.TempDir(), t.TempDir()
		apk := testutil.AndroidBuild(t, build, "Game")

		path, err := flock.ProjectLockPath(locks, project)
		require.NoError(t, err)
		held, err := flock.TryAcquire(path)
		require.NoError(t, err)
		defer func() { require.NoError(t, held.Release()) }()

		f := New(testConfig(project, "1.0"), WithLockDir(locks), WithDryRun(true))
		_, err = f.Finalize(context.Background(), domain.TargetAndroid, apk)
		require.NoError(t, err)
	})
}
