package main

import (
	"time"

	log "github.com/charmbracelet/log"

	"github.com/pkgkeep/pkgkeep/pkg/apk"
	"github.com/pkgkeep/pkgkeep/pkg/environ"
	"github.com/pkgkeep/pkgkeep/pkg/python"
	"github.com/pkgkeep/pkgkeep/pkg/store"
)

// systemInstaller adapts the apk installer for the auto runner, applying
// the composed environment to apk and recording what it persisted in the
// manifest.
type systemInstaller struct {
	layout    store.Layout
	installer *apk.Installer
	env       environ.Env
}

func (s *systemInstaller) Install(pkgs []string) error {
	report, err := s.installer.Install(s.env.Environ(), pkgs)
	if err != nil {
		return err
	}

	recordInstall(s.layout, func(m *store.Manifest) {
		for _, p := range report.Packages {
			m.Record(store.Entry{
				Name:        p.Name,
				Kind:        store.KindSystem,
				InstalledAt: time.Now().UTC(),
				Files:       p.Persisted(),
			})
		}
	})
	return nil
}

// pythonInstaller adapts the venv for the auto runner, applying the
// composed environment to pip and recording installs in the manifest.
type pythonInstaller struct {
	layout store.Layout
	venv   *python.VirtualEnv
	env    environ.Env
}

func (p *pythonInstaller) Install(pkgs []string) error {
	if err := p.venv.Install(p.env.Environ(), pkgs); err != nil {
		return err
	}

	recordInstall(p.layout, func(m *store.Manifest) {
		for _, pkg := range pkgs {
			m.Record(store.Entry{
				Name:        pkg,
				Kind:        store.KindPython,
				InstalledAt: time.Now().UTC(),
			})
		}
	})
	return nil
}

// recordInstall updates the manifest. Manifest problems are logged and
// swallowed: the install already succeeded and the manifest is
// informational only.
func recordInstall(layout store.Layout, update func(*store.Manifest)) {
	m, err := store.LoadManifest(layout.ManifestPath())
	if err != nil {
		log.Warn("could not read manifest", "err", err)
		return
	}
	update(m)
	if err := m.Save(layout.ManifestPath()); err != nil {
		log.Warn("could not write manifest", "err", err)
	}
}
