package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgkeep/pkgkeep/pkg/config"
	"github.com/pkgkeep/pkgkeep/pkg/environ"
	"github.com/pkgkeep/pkgkeep/pkg/python"
	"github.com/pkgkeep/pkgkeep/pkg/store"
)

func newInstallPipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install-pip <package>...",
		Short: "Install Python packages into the persistent virtualenv",
		Long: `Install the named packages with pip inside the virtual environment
under persistent storage. The environment already survives restarts, so no
relocation step is needed.

Examples:
  pkgkeep install-pip requests
  pkgkeep install-pip black ruff`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInstallPip,
	}
}

func runInstallPip(cmd *cobra.Command, args []string) error {
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

	installer := &pythonInstaller{
		layout: layout,
		venv:   venv,
		env:    environ.FromSystem(layout),
	}
	return installer.Install(args)
}
