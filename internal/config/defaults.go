package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/postbuild/internal/constants"
)

// DefaultConfig returns a new Config with default values.
// ProductName and Version have no sensible default and must be configured.
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			Root: ".",
		},
		Symbols: SymbolsConfig{
			Extension: constants.DefaultSymbolExt,
		},
		Web: WebConfig{
			OptionalDirs: constants.WebOptionalDirs(),
		},
		Log: LogConfig{
			File: true,
		},
	}
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly, and every key must
// have a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("project.product_name", "")
	v.SetDefault("project.version", "")
	v.SetDefault("project.root", ".")
	v.SetDefault("project.strict_semver", false)

	v.SetDefault("android.bundle_version_code", 0)
	v.SetDefault("ios.build_number", "")

	v.SetDefault("symbols.extension", constants.DefaultSymbolExt)
	v.SetDefault("web.optional_dirs", constants.WebOptionalDirs())

	v.SetDefault("log.file", true)
}
