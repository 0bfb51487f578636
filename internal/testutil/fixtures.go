package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// WriteFile creates path and any missing parents with content.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// MkdirAll creates path and any missing parents.
func MkdirAll(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o750))
}

// ReadFile returns the contents of path as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //#nosec G304 -- test fixture path
	require.NoError(t, err)
	return string(data)
}

// WindowsBuild lays out a Windows player build in dir:
//
//	{exe}.exe
//	{exe}_Data/data.unity3d
//	{exe}.pdb, UnityPlayer.pdb
//
// and returns the executable path.
func WindowsBuild(t *testing.T, dir, exe string) string {
	t.Helper()
	exePath := filepath.Join(dir, exe+".exe")
	WriteFile(t, exePath, "MZ")
	WriteFile(t, filepath.Join(dir, exe+"_Data", "data.unity3d"), "data")
	WriteFile(t, filepath.Join(dir, exe+".pdb"), "symbols")
	WriteFile(t, filepath.Join(dir, "UnityPlayer.pdb"), "symbols")
	return exePath
}

// WebBuild lays out a web build in dir with index.html and the given asset
// directories, each holding one file. It returns dir.
func WebBuild(t *testing.T, dir string, assetDirs ...string) string {
	t.Helper()
	WriteFile(t, filepath.Join(dir, "index.html"), "<html></html>")
	for _, d := range assetDirs {
		WriteFile(t, filepath.Join(dir, d, "asset.bin"), d)
	}
	return dir
}

// MacBuild creates a {name}.app bundle directory in dir and returns its path.
func MacBuild(t *testing.T, dir, name string) string {
	t.Helper()
	app := filepath.Join(dir, name+".app")
	WriteFile(t, filepath.Join(app, "Contents", "Info.plist"), "<plist/>")
	return app
}

// AndroidBuild creates a single-file Android package in dir and returns its path.
func AndroidBuild(t *testing.T, dir, name string) string {
	t.Helper()
	pkg := filepath.Join(dir, name+".apk")
	WriteFile(t, pkg, "PK")
	return pkg
}

// Tree returns every path under root, relative to root and slash-separated,
// in sorted order. Directories are suffixed with "/".
func Tree(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			rel += "/"
		}
		paths = append(paths, rel)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(paths)
	return paths
}

// StepClock is a clock that starts at Start and advances by Step on every call.
type StepClock struct {
	Start time.Time
	Step  time.Duration

	mu    sync.Mutex
	calls int
}

// Now returns Start plus Step for every previous call.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.Start.Add(time.Duration(c.calls) * c.Step)
	c.calls++
	return now
}
