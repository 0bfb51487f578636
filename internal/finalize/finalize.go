// Package finalize runs the post-build step for a finished game build.
//
// A run has three phases, always in this order:
//  1. Debug symbol cleanup (Windows targets only).
//  2. Version metadata write (every target).
//  3. Relocation of the build output to a versioned name (per target).
//
// Phases 1 and 3 are planned as a list of domain.Operation values and
// executed by fsops.Apply. Dry-run mode returns the plan without touching disk.
//
// Import rules:
//   - CAN import: internal/config, internal/constants, internal/domain,
//     internal/errors, internal/fsops, internal/metadata, internal/platform,
//     internal/clock, internal/ctxutil, internal/flock
//   - MUST NOT import: internal/cli, internal/tui
package finalize

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/postbuild/internal/clock"
	"github.com/mrz1836/postbuild/internal/config"
	"github.com/mrz1836/postbuild/internal/constants"
	"github.com/mrz1836/postbuild/internal/ctxutil"
	"github.com/mrz1836/postbuild/internal/domain"
	"github.com/mrz1836/postbuild/internal/errors"
	"github.com/mrz1836/postbuild/internal/flock"
	"github.com/mrz1836/postbuild/internal/fsops"
	"github.com/mrz1836/postbuild/internal/metadata"
	"github.com/mrz1836/postbuild/internal/platform"
)

// Finalizer applies the post-build step using a resolved configuration.
type Finalizer struct {
	cfg     *config.Config
	logger  zerolog.Logger
	clock   clock.Clock
	dryRun  bool
	lockDir string
	newID   func() string
}

// Option configures a Finalizer.
type Option func(*Finalizer)

// WithLogger sets the logger used for per-step messages.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Finalizer) {
		f.logger = logger
	}
}

// WithClock sets the clock used for run timestamps.
func WithClock(c clock.Clock) Option {
	return func(f *Finalizer) {
		f.clock = c
	}
}

// WithDryRun makes Finalize compute and return the plan without changing
// anything on disk, including the metadata files.
func WithDryRun(dryRun bool) Option {
	return func(f *Finalizer) {
		f.dryRun = dryRun
	}
}

// WithLockDir enables the per-project lock: runs against the same project
// root take a lock file in dir and a concurrent run fails with
// errors.ErrProjectLocked. An empty dir disables locking. Dry runs never lock.
func WithLockDir(dir string) Option {
	return func(f *Finalizer) {
		f.lockDir = dir
	}
}

// New creates a Finalizer for cfg. The default logger discards output.
func New(cfg *config.Config, opts ...Option) *Finalizer {
	f := &Finalizer{
		cfg:    cfg,
		logger: zerolog.Nop(),
		clock:  clock.RealClock{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Finalize runs the post-build step for the artifact produced for target.
//
// Unrecognized targets are not an error: metadata is written with code 0 and
// nothing is relocated. The context is only consulted before the first change
// to disk; once started a run goes to completion or to its first failure.
//
// On failure the returned Result is still non-nil when the run got far enough
// to have one, and holds the operations completed before the failure. Earlier
// steps are not rolled back.
//
// Trailing separators on artifactPath are ignored, so "Game.app/" names the
// bundle itself.
func (f *Finalizer) Finalize(ctx context.Context, target domain.BuildTarget, artifactPath string) (*domain.Result, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	if f.cfg == nil {
		return nil, errors.ErrConfigNil
	}
	if artifactPath == "" {
		return nil, errors.Wrap(errors.ErrArtifactNotFound, "empty artifact path")
	}
	artifactPath = filepath.Clean(artifactPath)
	if !fsops.Exists(artifactPath) {
		return nil, errors.Wrapf(errors.ErrArtifactNotFound, "%s", artifactPath)
	}

	release, err := f.lockProject()
	if err != nil {
		return nil, err
	}
	defer release()

	profile := platform.Lookup(target)
	result := &domain.Result{
		RunID:        f.newID(),
		Target:       target,
		ArtifactPath: artifactPath,
		OutputPath:   artifactPath,
		Version:      f.cfg.Project.Version,
		DryRun:       f.dryRun,
		StartedAt:    f.clock.Now(),
	}

	log := f.logger.With().
		Str("run_id", result.RunID).
		Str("target", target.String()).
		Logger()

	if !target.IsKnown() {
		log.Warn().Str("artifact", artifactPath).Msg("unrecognized build target, output will not be relocated")
	}

	err = f.run(log, profile, result)
	result.FinishedAt = f.clock.Now()
	if err != nil {
		return result, err
	}

	log.Info().
		Str("output", result.OutputPath).
		Bool("dry_run", result.DryRun).
		Dur("duration", result.Duration()).
		Msg("build finalized")
	return result, nil
}

func (f *Finalizer) run(log zerolog.Logger, profile platform.Profile, result *domain.Result) error {
	symbolOps, err := f.planSymbolCleanup(profile, result.ArtifactPath)
	if err != nil {
		return err
	}

	if err := f.execute(log, symbolOps, result); err != nil {
		return err
	}
	for _, op := range symbolOps {
		result.DeletedSymbols = append(result.DeletedSymbols, op.Source)
		log.Info().Str("file", op.Source).Msg("deleted symbol file")
	}

	info, err := f.writeMetadata(log, result.Target)
	if err != nil {
		return err
	}
	result.VersionCode = strconv.Itoa(info.Code)
	result.VersionName = platform.VersionName(f.cfg.Project.ProductName, f.cfg.Project.Version, result.VersionCode)

	ops, output := profile.Plan(platform.PlanInput{
		ArtifactPath:    result.ArtifactPath,
		ProductName:     f.cfg.Project.ProductName,
		VersionName:     result.VersionName,
		WebOptionalDirs: f.cfg.Web.OptionalDirs,
	})
	if len(ops) == 0 {
		log.Debug().Str("relocation", string(profile.Relocation)).Msg("no relocation for target")
		return nil
	}

	log.Info().Str("path", result.ArtifactPath).Msg("built path")
	log.Info().Str("path", output).Msg("destination path")

	if err := f.execute(log, ops, result); err != nil {
		return err
	}
	result.OutputPath = output

	if !f.dryRun {
		log.Info().Str("path", output).Msg("renamed successfully")
	}
	return nil
}

// planSymbolCleanup lists the debug symbol files next to the artifact as
// delete operations. Profiles without symbol cleanup get an empty plan.
func (f *Finalizer) planSymbolCleanup(profile platform.Profile, artifactPath string) ([]domain.Operation, error) {
	if !profile.CleanSymbols {
		return nil, nil
	}

	ext := f.cfg.Symbols.Extension
	if ext == "" {
		ext = constants.DefaultSymbolExt
	}

	files, err := fsops.FindByExtension(filepath.Dir(artifactPath), ext)
	if err != nil {
		return nil, errors.Wrap(err, "scan for debug symbols")
	}

	ops := make([]domain.Operation, 0, len(files))
	for _, file := range files {
		ops = append(ops, domain.Operation{Kind: domain.OpDelete, Source: file})
	}
	return ops, nil
}

// execute applies ops, or records them unapplied in dry-run mode.
// Completed operations are appended to result either way.
func (f *Finalizer) execute(log zerolog.Logger, ops []domain.Operation, result *domain.Result) error {
	if len(ops) == 0 {
		return nil
	}
	if f.dryRun {
		result.Operations = append(result.Operations, ops...)
		return nil
	}

	done, err := fsops.Apply(ops, log)
	result.Operations = append(result.Operations, done...)
	return err
}

// writeMetadata writes version.txt and bundleVersionCode.txt and returns the
// metadata the relocated name is built from. Outside dry-run mode the files
// are read back from disk, so naming always matches them.
func (f *Finalizer) writeMetadata(log zerolog.Logger, target domain.BuildTarget) (metadata.Info, error) {
	code, err := metadata.CodeFor(target, f.cfg)
	if err != nil {
		return metadata.Info{}, err
	}

	info := metadata.Info{Version: f.cfg.Project.Version, Code: code}
	if f.dryRun {
		return info, nil
	}

	root := f.cfg.Project.Root
	if err := metadata.Write(root, info); err != nil {
		return metadata.Info{}, err
	}

	versionPath, codePath := metadata.Paths(root)
	log.Debug().
		Str("version_file", versionPath).
		Str("code_file", codePath).
		Str("version", f.cfg.Project.Version).
		Int("code", code).
		Msg("version metadata written")

	return metadata.Read(root)
}

// WriteVersionFiles runs only the metadata phase: it writes version.txt and
// bundleVersionCode.txt for target and returns what was written. Dry-run mode
// returns the values without writing.
func (f *Finalizer) WriteVersionFiles(ctx context.Context, target domain.BuildTarget) (metadata.Info, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return metadata.Info{}, err
	}
	if f.cfg == nil {
		return metadata.Info{}, errors.ErrConfigNil
	}

	release, err := f.lockProject()
	if err != nil {
		return metadata.Info{}, err
	}
	defer release()

	log := f.logger.With().Str("target", target.String()).Logger()
	return f.writeMetadata(log, target)
}

// lockProject takes the project lock when locking is enabled and returns the
// function that releases it.
func (f *Finalizer) lockProject() (func(), error) {
	if f.lockDir == "" || f.dryRun {
		return func() {}, nil
	}

	path, err := flock.ProjectLockPath(f.lockDir, f.cfg.Project.Root)
	if err != nil {
		return nil, err
	}
	lock, err := flock.TryAcquire(path)
	if err != nil {
		if stderrors.Is(err, flock.ErrLocked) {
			return nil, fmt.Errorf("%w: %s", errors.ErrProjectLocked, f.cfg.Project.Root)
		}
		return nil, err
	}

	f.logger.Debug().Str("lock", lock.Path()).Msg("project lock acquired")
	return func() {
		if err := lock.Release(); err != nil {
			f.logger.Warn().Err(err).Str("lock", lock.Path()).Msg("failed to release project lock")
		}
	}, nil
}
