package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgkeep/pkgkeep/pkg/apk"
	"github.com/pkgkeep/pkgkeep/pkg/auto"
	"github.com/pkgkeep/pkgkeep/pkg/config"
	"github.com/pkgkeep/pkgkeep/pkg/environ"
	"github.com/pkgkeep/pkgkeep/pkg/python"
	"github.com/pkgkeep/pkgkeep/pkg/store"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Prepare persistent storage and auto-install configured packages",
		Long: `Initialize persistent storage: create the directory layout and the
Python virtual environment (only if absent), then install any packages
declared in configuration (PKGKEEP_APK_PACKAGES / PKGKEEP_PIP_PACKAGES as
JSON arrays, or a pkgkeep.yaml under the persist root).

Finishes by printing environment exports on stdout; eval them in the
supervising shell so persisted tools take precedence:

  eval "$(pkgkeep init)"`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

// runInit is the full startup flow: layout, venv, auto-install, exports.
func runInit(cmd *cobra.Command, _ []string) error {
	// Past arg parsing; anything that fails now is a runtime error.
	cmd.SilenceUsage = true

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	layout := store.NewLayout(cfg.Root)
	if err := layout.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create storage layout: %w", err)
	}

	venv := python.New(layout)
	if err := venv.EnsureCreated(); err != nil {
		return err
	}

	env := environ.FromSystem(layout)

	runner := &auto.Runner{
		System: &systemInstaller{layout: layout, installer: apk.NewInstaller(layout), env: env},
		Python: &pythonInstaller{layout: layout, venv: venv, env: env},
	}
	if err := runner.Run(cfg.APKPackages, cfg.PipPackages); err != nil {
		return err
	}

	// Exports go to stdout for eval by the caller; everything else this
	// command prints is on stderr.
	fmt.Print(env.ExportLines())
	return nil
}
