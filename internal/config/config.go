// Package config provides configuration management for postbuild with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed to Resolve as overrides)
//  2. Environment variables (POSTBUILD_* prefix)
//  3. Explicit config file (--config)
//  4. Project config (.postbuild/config.yaml)
//  5. Global config (~/.postbuild/config.yaml)
//  6. Built-in defaults
//
// These values replace the build settings a game engine would otherwise
// read from its own project settings: product name, version, and the
// per-platform version codes.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

// Config is the root configuration structure for postbuild.
type Config struct {
	// Project contains the product identity used for naming build output.
	Project ProjectConfig `yaml:"project" json:"project" mapstructure:"project"`

	// Android contains Android-specific build settings.
	Android AndroidConfig `yaml:"android" json:"android" mapstructure:"android"`

	// IOS contains iOS-specific build settings.
	IOS IOSConfig `yaml:"ios" json:"ios" mapstructure:"ios"`

	// Symbols controls debug symbol cleanup for Windows builds.
	Symbols SymbolsConfig `yaml:"symbols" json:"symbols" mapstructure:"symbols"`

	// Web controls relocation of web builds.
	Web WebConfig `yaml:"web" json:"web" mapstructure:"web"`

	// Log controls the CLI log file.
	Log LogConfig `yaml:"log" json:"log" mapstructure:"log"`
}

// ProjectConfig identifies the product being built.
type ProjectConfig struct {
	// ProductName is the product name, used as the first part of relocated
	// names and as the Windows executable name.
	ProductName string `yaml:"product_name" json:"product_name" mapstructure:"product_name"`

	// Version is the human-readable version written to version.txt.
	Version string `yaml:"version" json:"version" mapstructure:"version"`

	// Root is the project root where version.txt and bundleVersionCode.txt live.
	// Default: "." (the working directory)
	Root string `yaml:"root" json:"root" mapstructure:"root"`

	// StrictSemver requires Version to be a full MAJOR.MINOR.PATCH semantic version.
	// Default: false
	StrictSemver bool `yaml:"strict_semver" json:"strict_semver" mapstructure:"strict_semver"`
}

// AndroidConfig contains Android build settings.
type AndroidConfig struct {
	// BundleVersionCode is the Android version code written for Android builds.
	BundleVersionCode int `yaml:"bundle_version_code" json:"bundle_version_code" mapstructure:"bundle_version_code"`
}

// IOSConfig contains iOS build settings.
type IOSConfig struct {
	// BuildNumber is the iOS build number. It must be an integer when
	// finalizing an iOS build.
	BuildNumber string `yaml:"build_number" json:"build_number" mapstructure:"build_number"`
}

// SymbolsConfig controls debug symbol cleanup.
type SymbolsConfig struct {
	// Extension is the debug symbol file extension, including the dot.
	// Default: ".pdb"
	Extension string `yaml:"extension" json:"extension" mapstructure:"extension"`
}

// WebConfig controls web build relocation.
type WebConfig struct {
	// OptionalDirs are moved next to index.html only when present.
	// Default: ["TemplateData", "Release", "Debug"]
	OptionalDirs []string `yaml:"optional_dirs" json:"optional_dirs" mapstructure:"optional_dirs"`
}

// LogConfig controls the CLI log file.
type LogConfig struct {
	// File enables the rotating log file under ~/.postbuild/logs.
	// Default: true
	File bool `yaml:"file" json:"file" mapstructure:"file"`
}
