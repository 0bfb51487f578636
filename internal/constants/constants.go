// Package constants provides centralized constant values used throughout postbuild.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

// Version metadata files written next to the project root on every run.
const (
	// VersionFileName holds the human-readable version string (e.g. "1.4.2").
	VersionFileName = "version.txt"

	// VersionCodeFileName holds the platform version code as decimal text (e.g. "37").
	VersionCodeFileName = "bundleVersionCode.txt"

	// MetadataFilePerm is the permission used for the version metadata files.
	MetadataFilePerm = 0o644

	// BuildDirPerm is the permission used for directories created during relocation.
	BuildDirPerm = 0o755
)

// Build output naming.
const (
	// NameSeparator joins product name, version and version code in relocated names.
	NameSeparator = "_"

	// WindowsExecutableExt is the extension of the Windows player executable.
	WindowsExecutableExt = ".exe"

	// WindowsDataSuffix is appended to the executable base name to locate its data directory.
	WindowsDataSuffix = "_Data"

	// AndroidPackageExt is the extension given to relocated Android packages.
	AndroidPackageExt = ".apk"

	// MacAppBundleExt is the extension given to relocated macOS app bundles.
	MacAppBundleExt = ".app"

	// DefaultSymbolExt is the debug symbol extension removed from Windows builds.
	DefaultSymbolExt = ".pdb"

	// WebIndexFile is the entry page of a web build.
	WebIndexFile = "index.html"
)

// WebOptionalDirs are the web build subdirectories moved only when present.
func WebOptionalDirs() []string {
	return []string{"TemplateData", "Release", "Debug"}
}

// Directory names and paths used by postbuild.
const (
	// PostbuildHome is the hidden directory name where postbuild stores its data.
	// It is created in the user's home directory and, for project config, in the project root.
	PostbuildHome = ".postbuild"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// LocksDir is the directory name where per-project lock files live.
	LocksDir = "locks"
)

// EnvPrefix is the prefix for environment variable overrides (POSTBUILD_PROJECT_VERSION).
const EnvPrefix = "POSTBUILD"
