package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestVersion is the current manifest schema version.
const ManifestVersion = "1.0"

// PackageKind identifies which installer persisted a package.
type PackageKind string

const (
	// KindSystem marks packages installed through apk.
	KindSystem PackageKind = "apk"
	// KindPython marks packages installed through pip.
	KindPython PackageKind = "pip"
)

// Entry records one persisted package.
type Entry struct {
	Name        string      `yaml:"name"`
	Kind        PackageKind `yaml:"kind"`
	InstalledAt time.Time   `yaml:"installed_at"`
	// Files lists the paths copied into persistent storage, when known.
	// Empty for pip packages since the venv holds them directly.
	Files []string `yaml:"files,omitempty"`
}

// Manifest is the record of everything persisted so far. It is purely
// informational: installs proceed whether or not it can be read or written.
type Manifest struct {
	Version  string  `yaml:"version"`
	Packages []Entry `yaml:"packages"`
}

// NewManifest creates an empty Manifest.
func NewManifest() *Manifest {
	return &Manifest{
		Version:  ManifestVersion,
		Packages: []Entry{},
	}
}

// LoadManifest reads the manifest at path. A missing file yields a fresh
// empty manifest, not an error.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewManifest(), nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Version == "" {
		m.Version = ManifestVersion
	}
	return &m, nil
}

// Save writes the manifest to path.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Record adds an entry, replacing any existing entry with the same name
// and kind so reinstalls don't accumulate duplicates.
func (m *Manifest) Record(e Entry) {
	idx := -1
	for i := range m.Packages {
		if m.Packages[i].Name == e.Name && m.Packages[i].Kind == e.Kind {
			idx = i
			break
		}
	}
	if idx != -1 {
		m.Packages = append(m.Packages[:idx], m.Packages[idx+1:]...)
	}
	m.Packages = append(m.Packages, e)
}

// Find returns the entry for a name and kind, or nil if not recorded.
func (m *Manifest) Find(name string, kind PackageKind) *Entry {
	for i := range m.Packages {
		if m.Packages[i].Name == name && m.Packages[i].Kind == kind {
			return &m.Packages[i]
		}
	}
	return nil
}

// ByKind returns all entries of the given kind, in recorded order.
func (m *Manifest) ByKind(kind PackageKind) []Entry {
	result := make([]Entry, 0)
	for _, e := range m.Packages {
		if e.Kind == kind {
			result = append(result, e)
		}
	}
	return result
}
