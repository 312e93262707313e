// Package auto drives the installers from declarative configuration at
// startup: system packages first, then Python packages, since the latter
// may link against system libraries installed in the first step.
package auto

import (
	"fmt"

	log "github.com/charmbracelet/log"
)

// SystemInstaller installs system packages into persistent storage.
type SystemInstaller interface {
	Install(pkgs []string) error
}

// PythonInstaller installs Python packages into the persistent virtualenv.
type PythonInstaller interface {
	Install(pkgs []string) error
}

// Runner invokes the installers for each configured, non-empty package
// list. An empty list is a no-op, not an error.
type Runner struct {
	System SystemInstaller
	Python PythonInstaller
}

// Run processes both package lists in order. The first installer failure
// aborts the run.
func (r *Runner) Run(apkPkgs, pipPkgs []string) error {
	if len(apkPkgs) > 0 {
		log.Info("auto-installing system packages", "count", len(apkPkgs))
		if err := r.System.Install(apkPkgs); err != nil {
			return fmt.Errorf("system package auto-install failed: %w", err)
		}
	}

	if len(pipPkgs) > 0 {
		log.Info("auto-installing python packages", "count", len(pipPkgs))
		if err := r.Python.Install(pipPkgs); err != nil {
			return fmt.Errorf("python package auto-install failed: %w", err)
		}
	}

	return nil
}
