// Package domain provides shared domain types for postbuild.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case.
package domain

import "strings"

// BuildTarget identifies the platform a build was produced for.
// Values use the player target names of the build pipeline (e.g. "StandaloneWindows64").
type BuildTarget string

// Recognized build targets.
const (
	TargetStandaloneWindows    BuildTarget = "StandaloneWindows"
	TargetStandaloneWindows64  BuildTarget = "StandaloneWindows64"
	TargetStandaloneOSX        BuildTarget = "StandaloneOSX"
	TargetStandaloneOSXIntel   BuildTarget = "StandaloneOSXIntel"
	TargetStandaloneOSXIntel64 BuildTarget = "StandaloneOSXIntel64"
	TargetStandaloneLinux64    BuildTarget = "StandaloneLinux64"
	TargetAndroid              BuildTarget = "Android"
	TargetIOS                  BuildTarget = "iOS"
	TargetTvOS                 BuildTarget = "tvOS"
	TargetWebGL                BuildTarget = "WebGL"
	TargetPS4                  BuildTarget = "PS4"
	TargetXboxOne              BuildTarget = "XboxOne"
	TargetSwitch               BuildTarget = "Switch"

	// TargetUnknown is the zero value. Finalizing an unknown target still
	// writes version metadata but performs no relocation.
	TargetUnknown BuildTarget = ""
)

// KnownTargets returns every recognized build target in a stable order.
func KnownTargets() []BuildTarget {
	return []BuildTarget{
		TargetStandaloneWindows,
		TargetStandaloneWindows64,
		TargetStandaloneOSX,
		TargetStandaloneOSXIntel,
		TargetStandaloneOSXIntel64,
		TargetStandaloneLinux64,
		TargetAndroid,
		TargetIOS,
		TargetTvOS,
		TargetWebGL,
		TargetPS4,
		TargetXboxOne,
		TargetSwitch,
	}
}

// targetAliases maps lowercase short names to canonical targets.
//
//nolint:gochecknoglobals // Read-only lookup table
var targetAliases = map[string]BuildTarget{
	"windows":   TargetStandaloneWindows,
	"win":       TargetStandaloneWindows,
	"win32":     TargetStandaloneWindows,
	"windows64": TargetStandaloneWindows64,
	"win64":     TargetStandaloneWindows64,
	"macos":     TargetStandaloneOSX,
	"osx":       TargetStandaloneOSX,
	"mac":       TargetStandaloneOSX,
	"linux":     TargetStandaloneLinux64,
	"linux64":   TargetStandaloneLinux64,
	"apk":       TargetAndroid,
	"web":       TargetWebGL,
}

// ParseBuildTarget resolves s to a BuildTarget. Matching is case-insensitive
// against canonical names and a small set of aliases ("win64", "macos", "web").
//
// The second return value reports whether s named a recognized target. For an
// unrecognized, non-empty s the trimmed input is returned as-is so it can still
// be logged and written to results.
func ParseBuildTarget(s string) (BuildTarget, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return TargetUnknown, false
	}

	lower := strings.ToLower(trimmed)
	for _, t := range KnownTargets() {
		if strings.ToLower(string(t)) == lower {
			return t, true
		}
	}
	if t, ok := targetAliases[lower]; ok {
		return t, true
	}

	return BuildTarget(trimmed), false
}

// IsKnown reports whether t is one of KnownTargets.
func (t BuildTarget) IsKnown() bool {
	for _, k := range KnownTargets() {
		if t == k {
			return true
		}
	}
	return false
}

// String returns the target name, or "unknown" for the zero value.
func (t BuildTarget) String() string {
	if t == TargetUnknown {
		return "unknown"
	}
	return string(t)
}
