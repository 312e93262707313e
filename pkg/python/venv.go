// Package python manages the persistent virtual environment and pip
// installs into it. No relocation step is needed here: the venv itself
// lives under the persist root.
package python

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/charmbracelet/log"

	"github.com/pkgkeep/pkgkeep/pkg/execx"
	"github.com/pkgkeep/pkgkeep/pkg/store"
)

// ErrNoPackages is returned when an install is requested with no package
// names.
var ErrNoPackages = errors.New("no packages specified")

// VirtualEnv wraps the virtual environment under the persist root.
type VirtualEnv struct {
	layout   store.Layout
	executor execx.CommandExecutor
}

// New creates a VirtualEnv using the real python/pip on the system.
func New(layout store.Layout) *VirtualEnv {
	return &VirtualEnv{
		layout:   layout,
		executor: &execx.RealExecutor{},
	}
}

// NewWithExecutor creates a VirtualEnv with a custom executor.
func NewWithExecutor(layout store.Layout, executor execx.CommandExecutor) *VirtualEnv {
	return &VirtualEnv{
		layout:   layout,
		executor: executor,
	}
}

// Exists reports whether the virtual environment has been created.
func (v *VirtualEnv) Exists() bool {
	return v.layout.VenvExists()
}

// EnsureCreated creates the virtual environment if and only if it's
// absent. Repeated calls leave an existing environment untouched.
func (v *VirtualEnv) EnsureCreated() error {
	if v.Exists() {
		return nil
	}
	if _, err := v.executor.LookPath("python3"); err != nil {
		return fmt.Errorf("python3 not found on PATH: %w", err)
	}

	log.Info("creating virtual environment", "dir", v.layout.VenvDir())
	if err := v.executor.Stream(nil, "python3", "-m", "venv", v.layout.VenvDir()); err != nil {
		return fmt.Errorf("failed to create virtual environment: %w", err)
	}
	return nil
}

// Pip returns the path to the venv's own pip executable.
func (v *VirtualEnv) Pip() string {
	return filepath.Join(v.layout.VenvBinDir(), "pip")
}

// Install upgrades pip itself and then installs the named packages, all
// inside the virtual environment with the given environment applied.
func (v *VirtualEnv) Install(env []string, pkgs []string) error {
	if len(pkgs) == 0 {
		return ErrNoPackages
	}

	if err := v.executor.Stream(env, v.Pip(), "install", "--upgrade", "pip"); err != nil {
		return fmt.Errorf("pip self-upgrade failed: %w", err)
	}

	args := append([]string{"install"}, pkgs...)
	if err := v.executor.Stream(env, v.Pip(), args...); err != nil {
		return fmt.Errorf("pip install failed: %w", err)
	}

	log.Info("installed python packages", "packages", strings.Join(pkgs, " "))
	return nil
}

// Installed returns pip's listing of what the virtual environment
// currently holds.
func (v *VirtualEnv) Installed(env []string) (string, error) {
	out, err := v.executor.Run(env, v.Pip(), "list")
	if err != nil {
		return "", fmt.Errorf("pip list failed: %w", err)
	}
	return out, nil
}
