package environ

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgkeep/pkgkeep/pkg/store"
)

func testLayout() store.Layout {
	return store.NewLayout("/data/pkgkeep")
}

func TestCompute_PathPrecedence(t *testing.T) {
	lookup := func(key string) string {
		if key == "PATH" {
			return "/usr/bin:/bin"
		}
		return ""
	}

	env := Compute(testLayout(), lookup)
	path := env.Get("PATH")

	// Persistent bin, then venv bin, then the prior value.
	assert.Equal(t, "/data/pkgkeep/bin:/data/pkgkeep/python/venv/bin:/usr/bin:/bin", path)

	binIdx := strings.Index(path, "/data/pkgkeep/bin")
	venvIdx := strings.Index(path, "/data/pkgkeep/python/venv/bin")
	priorIdx := strings.Index(path, "/usr/bin:/bin")
	assert.Less(t, binIdx, venvIdx)
	assert.Less(t, venvIdx, priorIdx)
}

func TestCompute_EmptyPrior(t *testing.T) {
	env := Compute(testLayout(), nil)

	assert.Equal(t, "/data/pkgkeep/bin:/data/pkgkeep/python/venv/bin", env.Get("PATH"))
	assert.Equal(t, "/data/pkgkeep/lib", env.Get("LD_LIBRARY_PATH"))
	assert.Equal(t, "/data/pkgkeep/python/venv", env.Get("VIRTUAL_ENV"))
	assert.Equal(t, "/data/pkgkeep/lib/pkgconfig", env.Get("PKG_CONFIG_PATH"))
}

func TestCompute_PriorValuesKept(t *testing.T) {
	lookup := func(key string) string {
		switch key {
		case "LD_LIBRARY_PATH":
			return "/opt/lib"
		case "PKG_CONFIG_PATH":
			return "/opt/lib/pkgconfig"
		}
		return ""
	}

	env := Compute(testLayout(), lookup)

	assert.Equal(t, "/data/pkgkeep/lib:/opt/lib", env.Get("LD_LIBRARY_PATH"))
	assert.Equal(t, "/data/pkgkeep/lib/pkgconfig:/opt/lib/pkgconfig", env.Get("PKG_CONFIG_PATH"))
}

func TestEnv_VarsOrder(t *testing.T) {
	env := Compute(testLayout(), nil)

	vars := env.Vars()
	require.Len(t, vars, 4)
	assert.Equal(t, "PATH", vars[0].Key)
	assert.Equal(t, "LD_LIBRARY_PATH", vars[1].Key)
	assert.Equal(t, "VIRTUAL_ENV", vars[2].Key)
	assert.Equal(t, "PKG_CONFIG_PATH", vars[3].Key)
}

func TestEnv_Apply(t *testing.T) {
	env := Compute(testLayout(), func(key string) string {
		if key == "PATH" {
			return "/usr/bin"
		}
		return ""
	})

	base := []string{"HOME=/root", "PATH=/usr/bin", "TERM=xterm"}
	applied := env.Apply(base)

	// Untouched entries survive in place; composed ones are replaced.
	assert.Contains(t, applied, "HOME=/root")
	assert.Contains(t, applied, "TERM=xterm")
	assert.Contains(t, applied, "PATH=/data/pkgkeep/bin:/data/pkgkeep/python/venv/bin:/usr/bin")
	assert.NotContains(t, applied, "PATH=/usr/bin")

	// Variables absent from the base are appended.
	assert.Contains(t, applied, "VIRTUAL_ENV=/data/pkgkeep/python/venv")
	assert.Contains(t, applied, "LD_LIBRARY_PATH=/data/pkgkeep/lib")

	// The base slice is untouched.
	assert.Equal(t, []string{"HOME=/root", "PATH=/usr/bin", "TERM=xterm"}, base)
}

func TestEnv_Apply_NoDuplicates(t *testing.T) {
	env := Compute(testLayout(), nil)

	applied := env.Apply([]string{"PATH=/usr/bin", "PATH=/stale"})

	count := 0
	for _, entry := range applied {
		if strings.HasPrefix(entry, "PATH=") {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestEnv_ExportLines(t *testing.T) {
	env := Compute(testLayout(), nil)

	lines := env.ExportLines()

	expected := `export PATH="/data/pkgkeep/bin:/data/pkgkeep/python/venv/bin"
export LD_LIBRARY_PATH="/data/pkgkeep/lib"
export VIRTUAL_ENV="/data/pkgkeep/python/venv"
export PKG_CONFIG_PATH="/data/pkgkeep/lib/pkgconfig"
`
	assert.Equal(t, expected, lines)
}

func TestEnv_Get_Unknown(t *testing.T) {
	env := Compute(testLayout(), nil)
	assert.Empty(t, env.Get("HOME"))
}
