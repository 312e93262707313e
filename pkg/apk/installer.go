// Package apk installs Alpine packages and relocates the executables and
// shared libraries they own into persistent storage, so they survive the
// ephemeral root filesystem being discarded on restart.
package apk

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/charmbracelet/log"

	"github.com/pkgkeep/pkgkeep/pkg/execx"
	"github.com/pkgkeep/pkgkeep/pkg/store"
)

// ErrNoPackages is returned when an install is requested with no package
// names.
var ErrNoPackages = errors.New("no packages specified")

// PackageFiles lists what one package contributed to persistent storage.
type PackageFiles struct {
	Name      string
	Binaries  []string
	Libraries []string
}

// Persisted returns every file the package contributed, binaries first.
func (p PackageFiles) Persisted() []string {
	return append(append([]string{}, p.Binaries...), p.Libraries...)
}

// InstallReport summarizes a completed install for manifest recording.
type InstallReport struct {
	Packages []PackageFiles
}

// Installer runs apk and persists what it installs.
type Installer struct {
	layout   store.Layout
	executor execx.CommandExecutor
}

// NewInstaller creates an Installer using the real apk on the system.
func NewInstaller(layout store.Layout) *Installer {
	return &Installer{
		layout:   layout,
		executor: &execx.RealExecutor{},
	}
}

// NewInstallerWithExecutor creates an Installer with a custom executor.
func NewInstallerWithExecutor(layout store.Layout, executor execx.CommandExecutor) *Installer {
	return &Installer{
		layout:   layout,
		executor: executor,
	}
}

// Install installs the named packages with apk, then copies every
// executable and shared library they directly own into the persistent bin
// and lib directories. The apk download cache is pointed at persistent
// storage so it too survives restarts. Subprocesses run with env, which
// callers compose from the persistent layout.
//
// A failed apk add aborts the whole operation. A package whose owned-file
// query yields nothing is skipped without aborting: the package manager
// installed it, there is just nothing of it to relocate.
func (i *Installer) Install(env []string, pkgs []string) (*InstallReport, error) {
	if len(pkgs) == 0 {
		return nil, ErrNoPackages
	}
	if _, err := i.executor.LookPath("apk"); err != nil {
		return nil, fmt.Errorf("apk not found on PATH: %w", err)
	}

	args := append([]string{"add", "--cache-dir", i.layout.CacheDir()}, pkgs...)
	if err := i.executor.Stream(env, "apk", args...); err != nil {
		return nil, fmt.Errorf("apk add failed: %w", err)
	}

	report := &InstallReport{}
	for _, pkg := range pkgs {
		files, err := i.ownedFiles(env, pkg)
		if err != nil || len(files) == 0 {
			log.Debug("no file metadata for package, skipping relocation", "package", pkg, "err", err)
			continue
		}

		persisted, err := i.persist(pkg, files)
		if err != nil {
			return nil, err
		}
		report.Packages = append(report.Packages, persisted)
	}

	return report, nil
}

// ownedFiles queries apk for the list of files the named package owns,
// returned as absolute paths.
func (i *Installer) ownedFiles(env []string, pkg string) ([]string, error) {
	out, err := i.executor.Run(env, "apk", "info", "-L", pkg)
	if err != nil {
		return nil, fmt.Errorf("apk info -L %s failed: %w", pkg, err)
	}

	// Output shape:
	//   pkg-1.2.3 contains:
	//   usr/bin/tool
	//   usr/lib/libtool.so.1
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, "contains:") {
			continue
		}
		if !strings.HasPrefix(line, "/") {
			line = "/" + line
		}
		files = append(files, line)
	}
	return files, nil
}

// persist copies the relocatable subset of a package's owned files into
// persistent storage, logging one line per copied file.
func (i *Installer) persist(pkg string, files []string) (PackageFiles, error) {
	result := PackageFiles{Name: pkg}

	for _, file := range files {
		switch classify(file) {
		case classBinary:
			if !isExecutableFile(file) {
				continue
			}
			dst, err := copyPreserving(file, i.layout.BinDir())
			if err != nil {
				return result, fmt.Errorf("failed to persist %s: %w", file, err)
			}
			result.Binaries = append(result.Binaries, dst)
			log.Info("persisted binary", "package", pkg, "file", file, "dest", dst)
		case classLibrary:
			if !fileExists(file) {
				continue
			}
			dst, err := copyPreserving(file, i.layout.LibDir())
			if err != nil {
				return result, fmt.Errorf("failed to persist %s: %w", file, err)
			}
			result.Libraries = append(result.Libraries, dst)
			log.Info("persisted library", "package", pkg, "file", file, "dest", dst)
		}
	}

	return result, nil
}
