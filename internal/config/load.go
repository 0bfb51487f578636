package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/postbuild/internal/constants"
	"github.com/mrz1836/postbuild/internal/errors"
)

// newViperInstance creates a new Viper instance with the POSTBUILD_ env
// prefix, key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// viperDecoderOption lets list values arrive as comma-separated strings,
// e.g. POSTBUILD_WEB_OPTIONAL_DIRS=TemplateData,Build.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeFile merges the config file at path into v. A missing optional file
// is skipped; a missing required file is an error.
func mergeFile(v *viper.Viper, path string, required bool) error {
	if path == "" {
		return nil
	}
	if !fileExists(path) {
		if required {
			return errors.Wrapf(os.ErrNotExist, "config file %s", path)
		}
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	return nil
}

// Resolve merges every configuration layer without validating the result.
// explicitPath, when set, names a config file that must exist and takes
// precedence over the global and project files. Non-zero values in
// overrides take precedence over everything.
func Resolve(ctx context.Context, explicitPath string, overrides *Config) (*Config, error) {
	v := newViperInstance()

	if globalPath, err := GlobalConfigPath(); err == nil {
		if err := mergeFile(v, globalPath, false); err != nil {
			return nil, err
		}
	}
	if err := mergeFile(v, ProjectConfigPath(), false); err != nil {
		return nil, err
	}
	if err := mergeFile(v, explicitPath, true); err != nil {
		return nil, err
	}

	cfg, err := unmarshal(ctx, v)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}
	return cfg, nil
}

func unmarshal(ctx context.Context, v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("project.product_name", cfg.Project.ProductName).
		Str("project.version", cfg.Project.Version).
		Str("project.root", cfg.Project.Root).
		Str("config_file", v.ConfigFileUsed()).
		Msg("configuration loaded")

	return &cfg, nil
}

// applyOverrides merges non-zero override values into the config.
//
// Zero means "not set", so an override cannot lower
// Android.BundleVersionCode to 0. Callers that accept an explicit zero assign
// it after Resolve returns.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Project.ProductName != "" {
		cfg.Project.ProductName = overrides.Project.ProductName
	}
	if overrides.Project.Version != "" {
		cfg.Project.Version = overrides.Project.Version
	}
	if overrides.Project.Root != "" {
		cfg.Project.Root = overrides.Project.Root
	}
	if overrides.Android.BundleVersionCode != 0 {
		cfg.Android.BundleVersionCode = overrides.Android.BundleVersionCode
	}
	if overrides.IOS.BuildNumber != "" {
		cfg.IOS.BuildNumber = overrides.IOS.BuildNumber
	}
	if overrides.Symbols.Extension != "" {
		cfg.Symbols.Extension = overrides.Symbols.Extension
	}
	if len(overrides.Web.OptionalDirs) > 0 {
		cfg.Web.OptionalDirs = overrides.Web.OptionalDirs
	}
}
