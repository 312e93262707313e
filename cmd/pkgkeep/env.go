package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgkeep/pkgkeep/pkg/config"
	"github.com/pkgkeep/pkgkeep/pkg/environ"
	"github.com/pkgkeep/pkgkeep/pkg/store"
)

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print environment exports for persistent storage",
		Long: `Print shell export statements that put persistent binaries first on
PATH, point the dynamic loader and pkg-config at persistent libraries, and
mark the persistent virtualenv active.

Usage:
  eval "$(pkgkeep env)"`,
		Args: cobra.NoArgs,
		RunE: runEnv,
	}
}

func runEnv(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	layout := store.NewLayout(cfg.Root)
	fmt.Print(environ.FromSystem(layout).ExportLines())
	return nil
}
