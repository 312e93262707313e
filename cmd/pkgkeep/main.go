// Package main provides the pkgkeep CLI for persisting package installs
// across ephemeral container restarts.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing. Usage is shown for unknown commands
	// and bad arguments; each RunE silences it once past arg parsing so
	// runtime failures don't drown in help text.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for pkgkeep.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pkgkeep",
		Short: "Persist package installs across container restarts",
		Long: `pkgkeep installs apk and pip packages into durable storage so they
survive ephemeral container restarts.

It supports:
  - init: prepare persistent storage and auto-install configured packages
  - install-apk: install system packages and persist their binaries/libraries
  - install-pip: install Python packages into the persistent virtualenv
  - list: show what persistent storage currently holds
  - env: print environment exports that point tools at persistent storage`,
		Version: version,
		Args:    cobra.NoArgs,
		// Running pkgkeep with no subcommand is the init flow, the common
		// case at container start.
		RunE: runInit,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newInstallAPKCmd(),
		newInstallPipCmd(),
		newListCmd(),
		newEnvCmd(),
	)

	return rootCmd
}
