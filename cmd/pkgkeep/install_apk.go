package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgkeep/pkgkeep/pkg/apk"
	"github.com/pkgkeep/pkgkeep/pkg/config"
	"github.com/pkgkeep/pkgkeep/pkg/environ"
	"github.com/pkgkeep/pkgkeep/pkg/store"
)

func newInstallAPKCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install-apk <package>...",
		Short: "Install system packages and persist their binaries and libraries",
		Long: `Install the named packages with apk, then copy every executable and
shared library they own into persistent storage so the tools remain
available after the container's root filesystem is discarded.

Examples:
  pkgkeep install-apk jq
  pkgkeep install-apk curl git openssh-client`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInstallAPK,
	}
}

func runInstallAPK(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	layout := store.NewLayout(cfg.Root)
	if err := layout.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create storage layout: %w", err)
	}

	installer := &systemInstaller{
		layout:    layout,
		installer: apk.NewInstaller(layout),
		env:       environ.FromSystem(layout),
	}
	return installer.Install(args)
}
