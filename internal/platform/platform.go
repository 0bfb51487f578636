// Package platform maps build targets to their post-build rules.
//
// Each target has a Profile describing whether debug symbols are cleaned,
// which extension the relocated artifact receives, and how the output is
// relocated. Supporting a new target is a table entry, not a new code path.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, standard library
//   - MUST NOT import: other internal packages
package platform

import (
	"github.com/mrz1836/postbuild/internal/constants"
	"github.com/mrz1836/postbuild/internal/domain"
)

// Family groups targets that share a relocation shape.
type Family string

// Target families.
const (
	FamilyWindows Family = "windows"
	FamilyMac     Family = "mac"
	FamilyLinux   Family = "linux"
	FamilyMobile  Family = "mobile"
	FamilyWeb     Family = "web"
	FamilyConsole Family = "console"
	FamilyOther   Family = "other"
)

// Relocation selects how the build output is renamed.
type Relocation string

// Relocation rules.
const (
	// RelocateNone leaves the artifact where the build pipeline put it.
	RelocateNone Relocation = "none"

	// RelocateSingleFile renames the artifact in place to {name}{ext}.
	RelocateSingleFile Relocation = "single_file"

	// RelocateWindows gathers the executable and its _Data directory into
	// a new {name} directory next to the executable.
	RelocateWindows Relocation = "windows"

	// RelocateWeb moves index.html and the web asset directories into a new
	// {name} directory inside the artifact directory.
	RelocateWeb Relocation = "web"
)

// Profile holds the post-build rules for one target.
type Profile struct {
	Target       domain.BuildTarget `json:"target"`
	Family       Family             `json:"family"`
	Extension    string             `json:"extension,omitempty"`
	CleanSymbols bool               `json:"clean_symbols"`
	Relocation   Relocation         `json:"relocation"`
}

// profiles is the lookup table, in the order KnownTargets reports targets.
//
//nolint:gochecknoglobals // Read-only lookup table
var profiles = []Profile{
	{Target: domain.TargetStandaloneWindows, Family: FamilyWindows, CleanSymbols: true, Relocation: RelocateWindows},
	{Target: domain.TargetStandaloneWindows64, Family: FamilyWindows, CleanSymbols: true, Relocation: RelocateWindows},
	{Target: domain.TargetStandaloneOSX, Family: FamilyMac, Extension: constants.MacAppBundleExt, Relocation: RelocateSingleFile},
	{Target: domain.TargetStandaloneOSXIntel, Family: FamilyMac, Extension: constants.MacAppBundleExt, Relocation: RelocateSingleFile},
	{Target: domain.TargetStandaloneOSXIntel64, Family: FamilyMac, Extension: constants.MacAppBundleExt, Relocation: RelocateSingleFile},
	{Target: domain.TargetStandaloneLinux64, Family: FamilyLinux, Relocation: RelocateNone},
	{Target: domain.TargetAndroid, Family: FamilyMobile, Extension: constants.AndroidPackageExt, Relocation: RelocateSingleFile},
	{Target: domain.TargetIOS, Family: FamilyMobile, Relocation: RelocateNone},
	{Target: domain.TargetTvOS, Family: FamilyMobile, Relocation: RelocateNone},
	{Target: domain.TargetWebGL, Family: FamilyWeb, Relocation: RelocateWeb},
	{Target: domain.TargetPS4, Family: FamilyConsole, Relocation: RelocateNone},
	{Target: domain.TargetXboxOne, Family: FamilyConsole, Relocation: RelocateNone},
	{Target: domain.TargetSwitch, Family: FamilyConsole, Relocation: RelocateNone},
}

// Lookup returns the profile for target. Unrecognized targets get a profile
// with family "other", no symbol cleanup and no relocation.
func Lookup(target domain.BuildTarget) Profile {
	for _, p := range profiles {
		if p.Target == target {
			return p
		}
	}
	return Profile{Target: target, Family: FamilyOther, Relocation: RelocateNone}
}

// All returns a copy of every known profile in a stable order.
func All() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}
