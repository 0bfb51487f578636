// Package metadata writes and reads the version metadata files kept next to
// the project root: version.txt (human-readable version) and
// bundleVersionCode.txt (platform version code as decimal text).
//
// Both files are deleted and rewritten on every run; their contents always
// describe the most recent build.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mrz1836/postbuild/internal/config"
	"github.com/mrz1836/postbuild/internal/constants"
	"github.com/mrz1836/postbuild/internal/domain"
	"github.com/mrz1836/postbuild/internal/errors"
	"github.com/mrz1836/postbuild/internal/fsops"
)

// Info is the version metadata of one build.
type Info struct {
	// Version is the human-readable version string, e.g. "1.4.2".
	Version string `json:"version"`

	// Code is the platform version code. Zero for platforms without one.
	Code int `json:"code"`
}

// Paths returns the locations of version.txt and bundleVersionCode.txt under root.
func Paths(root string) (versionPath, codePath string) {
	return filepath.Join(root, constants.VersionFileName), filepath.Join(root, constants.VersionCodeFileName)
}

// CodeFor returns the version code for target: the Android bundle version
// code, the iOS build number parsed as an integer, or 0 for every other target.
func CodeFor(target domain.BuildTarget, cfg *config.Config) (int, error) {
	switch target {
	case domain.TargetAndroid:
		return cfg.Android.BundleVersionCode, nil
	case domain.TargetIOS:
		raw := strings.TrimSpace(cfg.IOS.BuildNumber)
		code, err := strconv.Atoi(raw)
		if err != nil {
			return 0, errors.Wrapf(errors.ErrInvalidVersionCode, "ios.build_number %q", cfg.IOS.BuildNumber)
		}
		return code, nil
	default:
		return 0, nil
	}
}

// Write removes any existing metadata files under root and writes both anew.
// The code file is written first.
func Write(root string, info Info) error {
	versionPath, codePath := Paths(root)

	for _, path := range []string{codePath, versionPath} {
		if err := fsops.RemoveIfExists(path); err != nil {
			return fmt.Errorf("%w: %w", errors.ErrMetadataWrite, err)
		}
	}

	if err := writeFile(codePath, []byte(strconv.Itoa(info.Code))); err != nil {
		return fmt.Errorf("%w: write %s: %w", errors.ErrMetadataWrite, codePath, err)
	}
	if err := writeFile(versionPath, []byte(info.Version)); err != nil {
		return fmt.Errorf("%w: write %s: %w", errors.ErrMetadataWrite, versionPath, err)
	}
	return nil
}

// ReadCode parses bundleVersionCode.txt under root. Surrounding whitespace
// is ignored; the rest must be a decimal integer.
func ReadCode(root string) (int, error) {
	_, codePath := Paths(root)

	data, err := os.ReadFile(codePath) //#nosec G304 -- path is built from the configured project root
	if err != nil {
		return 0, errors.Wrapf(err, "read %s", codePath)
	}

	raw := strings.TrimSpace(string(data))
	code, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidVersionCode, "%s contains %q", codePath, raw)
	}
	return code, nil
}

// Read returns the metadata currently on disk under root.
func Read(root string) (Info, error) {
	versionPath, _ := Paths(root)

	code, err := ReadCode(root)
	if err != nil {
		return Info{}, err
	}
	version, err := os.ReadFile(versionPath) //#nosec G304 -- path is built from the configured project root
	if err != nil {
		return Info{}, errors.Wrapf(err, "read %s", versionPath)
	}

	return Info{Version: string(version), Code: code}, nil
}
