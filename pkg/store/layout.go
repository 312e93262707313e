// Package store manages the persistent storage layout that survives
// container restarts: the directory tree under the persist root, and the
// manifest recording what has been installed into it.
package store

import (
	"os"
	"path/filepath"
)

const (
	// DefaultRoot is the persist root used when no configuration overrides it.
	DefaultRoot = "/data/pkgkeep"
	// ManifestFileName is the name of the manifest file under the state directory.
	ManifestFileName = "manifest.yaml"
)

// Layout describes the fixed directory tree under the persist root.
// All paths are derived; only Root varies between deployments.
type Layout struct {
	Root string
}

// NewLayout creates a Layout rooted at the given directory.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// BinDir returns the directory for persisted executables.
func (l Layout) BinDir() string {
	return filepath.Join(l.Root, "bin")
}

// LibDir returns the directory for persisted shared libraries.
func (l Layout) LibDir() string {
	return filepath.Join(l.Root, "lib")
}

// PkgConfigDir returns the pkg-config metadata directory under LibDir.
func (l Layout) PkgConfigDir() string {
	return filepath.Join(l.Root, "lib", "pkgconfig")
}

// PythonDir returns the directory holding the Python environment.
func (l Layout) PythonDir() string {
	return filepath.Join(l.Root, "python")
}

// VenvDir returns the virtual environment root.
func (l Layout) VenvDir() string {
	return filepath.Join(l.Root, "python", "venv")
}

// VenvBinDir returns the virtual environment's executable directory.
func (l Layout) VenvBinDir() string {
	return filepath.Join(l.Root, "python", "venv", "bin")
}

// CacheDir returns the persistent apk download cache directory.
func (l Layout) CacheDir() string {
	return filepath.Join(l.Root, "apk-cache")
}

// StateDir returns the directory for pkgkeep's own state files.
func (l Layout) StateDir() string {
	return filepath.Join(l.Root, "state")
}

// ManifestPath returns the full path to the manifest file.
func (l Layout) ManifestPath() string {
	return filepath.Join(l.StateDir(), ManifestFileName)
}

// EnsureDirs creates the full directory tree if it doesn't exist.
// Safe to call repeatedly.
func (l Layout) EnsureDirs() error {
	dirs := []string{
		l.BinDir(),
		l.LibDir(),
		l.PkgConfigDir(),
		l.PythonDir(),
		l.CacheDir(),
		l.StateDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// VenvExists reports whether the virtual environment has been created.
// The pyvenv.cfg marker is what venv itself writes on creation.
func (l Layout) VenvExists() bool {
	if _, err := os.Stat(filepath.Join(l.VenvDir(), "pyvenv.cfg")); err == nil {
		return true
	}
	_, err := os.Stat(l.VenvDir())
	return err == nil
}
