package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/postbuild/internal/constants"
	"github.com/mrz1836/postbuild/internal/errors"
)

// HomeDir returns the postbuild home directory.
// If POSTBUILD_HOME is set it wins; otherwise it is ~/.postbuild.
func HomeDir() (string, error) {
	if home := os.Getenv(constants.EnvPrefix + "_HOME"); home != "" {
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(userHome, constants.PostbuildHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// LockDir returns the directory holding per-project lock files, creating it
// if needed.
func LockDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, constants.LocksDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.Wrap(err, "failed to create lock directory")
	}
	return dir, nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
// This is always .postbuild/config.yaml relative to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.PostbuildHome, constants.ConfigFileName)
}
