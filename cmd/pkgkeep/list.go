package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pkgkeep/pkgkeep/pkg/config"
	"github.com/pkgkeep/pkgkeep/pkg/environ"
	"github.com/pkgkeep/pkgkeep/pkg/python"
	"github.com/pkgkeep/pkgkeep/pkg/store"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show what persistent storage currently holds",
		Long: `List the persisted binaries, the Python packages installed in the
persistent virtualenv, and the manifest of recorded installs.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	layout := store.NewLayout(cfg.Root)

	listBinaries(layout)
	listPythonPackages(layout)
	listManifest(layout)
	return nil
}

// listBinaries prints the contents of the persistent bin directory, or an
// explicit (none) marker when it is empty or unreadable.
func listBinaries(layout store.Layout) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("Persistent binaries (%s):", layout.BinDir())))

	entries, err := os.ReadDir(layout.BinDir())
	if err != nil || len(entries) == 0 {
		fmt.Println("  " + dimStyle.Render("(none)"))
		return
	}

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			fmt.Printf("  %s\n", entry.Name())
			continue
		}
		fmt.Printf("  %s  %s%s\n", info.Mode(), entry.Name(),
			dimStyle.Render(fmt.Sprintf("  (%d bytes)", info.Size())))
	}
}

// listPythonPackages prints pip's view of the persistent virtualenv.
func listPythonPackages(layout store.Layout) {
	fmt.Println()
	fmt.Println(headerStyle.Render("Python packages:"))

	venv := python.New(layout)
	if !venv.Exists() {
		fmt.Println("  " + dimStyle.Render("(none)"))
		return
	}

	out, err := venv.Installed(environ.FromSystem(layout).Environ())
	if err != nil {
		fmt.Printf("  (error: %v)\n", err)
		return
	}
	fmt.Print(indent(out))
}

// listManifest prints the recorded install history when one exists.
func listManifest(layout store.Layout) {
	m, err := store.LoadManifest(layout.ManifestPath())
	if err != nil {
		log.Warn("could not read manifest", "err", err)
		return
	}
	if len(m.Packages) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Recorded installs:"))
	for _, e := range m.Packages {
		fmt.Printf("  %-4s %s %s\n", e.Kind, e.Name,
			dimStyle.Render(e.InstalledAt.Format("2006-01-02 15:04")))
	}
}

// indent prefixes every non-empty line with two spaces.
func indent(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if line == "" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
