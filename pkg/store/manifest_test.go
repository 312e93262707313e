package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest_Missing(t *testing.T) {
	m, err := LoadManifest(filepath.Join(t.TempDir(), "manifest.yaml"))

	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, m.Version)
	assert.Empty(t, m.Packages)
}

func TestLoadManifest_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0644))

	_, err := LoadManifest(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestManifest_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")

	m := NewManifest()
	m.Record(Entry{
		Name:        "jq",
		Kind:        KindSystem,
		InstalledAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Files:       []string{"/data/pkgkeep/bin/jq"},
	})
	m.Record(Entry{
		Name:        "requests",
		Kind:        KindPython,
		InstalledAt: time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
	})
	require.NoError(t, m.Save(path))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, loaded.Packages, 2)

	jq := loaded.Find("jq", KindSystem)
	require.NotNil(t, jq)
	assert.Equal(t, []string{"/data/pkgkeep/bin/jq"}, jq.Files)

	assert.Nil(t, loaded.Find("jq", KindPython))
}

func TestManifest_Record_ReplacesDuplicates(t *testing.T) {
	m := NewManifest()
	m.Record(Entry{Name: "curl", Kind: KindSystem, Files: []string{"/old/curl"}})
	m.Record(Entry{Name: "curl", Kind: KindSystem, Files: []string{"/new/curl"}})

	require.Len(t, m.Packages, 1)
	assert.Equal(t, []string{"/new/curl"}, m.Packages[0].Files)
}

func TestManifest_Record_AdditiveAcrossInstalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")

	m := NewManifest()
	m.Record(Entry{Name: "curl", Kind: KindSystem})
	require.NoError(t, m.Save(path))

	m2, err := LoadManifest(path)
	require.NoError(t, err)
	m2.Record(Entry{Name: "jq", Kind: KindSystem})
	require.NoError(t, m2.Save(path))

	final, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Len(t, final.Packages, 2)
}

func TestManifest_ByKind(t *testing.T) {
	m := NewManifest()
	m.Record(Entry{Name: "curl", Kind: KindSystem})
	m.Record(Entry{Name: "requests", Kind: KindPython})
	m.Record(Entry{Name: "jq", Kind: KindSystem})

	system := m.ByKind(KindSystem)
	require.Len(t, system, 2)
	assert.Equal(t, "curl", system[0].Name)
	assert.Equal(t, "jq", system[1].Name)

	assert.Len(t, m.ByKind(KindPython), 1)
}
