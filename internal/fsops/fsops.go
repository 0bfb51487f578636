// Package fsops provides the guarded filesystem primitives used to relocate
// build output.
//
// Every primitive refuses to overwrite: creating or moving onto an existing
// path fails with errors.ErrTargetExists, and moving or deleting a path that
// does not exist fails with errors.ErrSourceMissing. There is no rollback;
// a failure part way through a sequence leaves earlier steps in place.
package fsops

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrz1836/postbuild/internal/constants"
	"github.com/mrz1836/postbuild/internal/errors"
)

// Exists reports whether path exists. Symlinks are not followed.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Mkdir creates a single directory. The parent must already exist and the
// directory itself must not.
func Mkdir(path string) error {
	if err := os.Mkdir(path, constants.BuildDirPerm); err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return errors.Wrapf(errors.ErrTargetExists, "create directory %s", path)
		}
		return errors.Wrapf(err, "create directory %s", path)
	}
	return nil
}

// Move renames src to dst. src may be a file or a directory.
func Move(src, dst string) error {
	if !Exists(src) {
		return errors.Wrapf(errors.ErrSourceMissing, "move %s", src)
	}
	if Exists(dst) {
		return errors.Wrapf(errors.ErrTargetExists, "move %s to %s", src, dst)
	}
	if err := os.Rename(src, dst); err != nil {
		return errors.Wrapf(err, "move %s to %s", src, dst)
	}
	return nil
}

// MoveDirIfExists moves src to dst when src is a directory. It reports
// whether a move happened; an absent source, or a plain file in its place, is
// not an error and is left where it is.
func MoveDirIfExists(src, dst string) (bool, error) {
	if !IsDir(src) {
		return false, nil
	}
	if err := Move(src, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes a single file.
func Remove(path string) error {
	if err := os.Remove(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(errors.ErrSourceMissing, "delete %s", path)
		}
		return errors.Wrapf(err, "delete %s", path)
	}
	return nil
}

// RemoveIfExists deletes path when present. An absent file is not an error.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "delete %s", path)
	}
	return nil
}

// FindByExtension lists regular files directly inside dir whose extension
// matches ext, ignoring case. Subdirectories are not searched.
// The result is sorted by file name.
func FindByExtension(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", dir)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}
	return matches, nil
}
