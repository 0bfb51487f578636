package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/mrz1836/postbuild/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - project.product_name and project.version must be non-empty plain names
//   - project.version must be MAJOR.MINOR.PATCH when project.strict_semver is set
//   - project.root must not be empty
//   - android.bundle_version_code must not be negative
//   - symbols.extension must start with a dot
//   - web.optional_dirs entries must be plain directory names
//
// ios.build_number is only checked when an iOS build is finalized.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateProjectConfig(&cfg.Project); err != nil {
		return err
	}

	if cfg.Android.BundleVersionCode < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidPlatform,
			"android.bundle_version_code cannot be negative, got %d", cfg.Android.BundleVersionCode)
	}

	if !strings.HasPrefix(cfg.Symbols.Extension, ".") || len(cfg.Symbols.Extension) < 2 {
		return errors.Wrapf(errors.ErrConfigInvalidSymbols,
			"symbols.extension must start with a dot, got %q", cfg.Symbols.Extension)
	}

	for _, dir := range cfg.Web.OptionalDirs {
		if !isPlainName(dir) {
			return errors.Wrapf(errors.ErrConfigInvalidPlatform,
				"web.optional_dirs entry %q must be a plain directory name", dir)
		}
	}

	return nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if cfg.ProductName == "" {
		return errors.Wrap(errors.ErrConfigInvalidProject, "project.product_name must not be empty")
	}
	if !isPlainName(cfg.ProductName) {
		return errors.Wrapf(errors.ErrConfigInvalidProject,
			"project.product_name %q must not contain path separators", cfg.ProductName)
	}

	if cfg.Version == "" {
		return errors.Wrap(errors.ErrConfigInvalidProject, "project.version must not be empty")
	}
	if !isPlainName(cfg.Version) {
		return errors.Wrapf(errors.ErrConfigInvalidProject,
			"project.version %q must not contain path separators", cfg.Version)
	}
	if cfg.StrictSemver {
		if _, err := semver.StrictNewVersion(cfg.Version); err != nil {
			return errors.Wrapf(errors.ErrConfigInvalidProject,
				"project.version %q is not a semantic version: %v", cfg.Version, err)
		}
	}

	if cfg.Root == "" {
		return errors.Wrap(errors.ErrConfigInvalidProject, "project.root must not be empty")
	}
	return nil
}

// isPlainName reports whether s can be used as a single path element.
func isPlainName(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}
