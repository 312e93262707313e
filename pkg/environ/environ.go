// Package environ composes the environment that redirects package managers
// and runtime loaders at persistent storage. The composition is an explicit
// value passed to every subprocess launch; the process never mutates its
// own environment.
package environ

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkgkeep/pkgkeep/pkg/store"
)

// Var is a single environment variable.
type Var struct {
	Key   string
	Value string
}

// Env is the ordered set of variables pkgkeep composes. Persistent
// binaries come first on PATH so they shadow system-installed ones of the
// same name.
type Env struct {
	vars []Var
}

// Compute builds the environment for the given layout. lookup supplies the
// prior value of each variable (os.Getenv in production, a map lookup in
// tests); the prior value, when non-empty, is kept after the persistent
// entries.
func Compute(l store.Layout, lookup func(string) string) Env {
	if lookup == nil {
		lookup = func(string) string { return "" }
	}

	return Env{vars: []Var{
		{Key: "PATH", Value: prefix(lookup("PATH"), l.BinDir(), l.VenvBinDir())},
		{Key: "LD_LIBRARY_PATH", Value: prefix(lookup("LD_LIBRARY_PATH"), l.LibDir())},
		{Key: "VIRTUAL_ENV", Value: l.VenvDir()},
		{Key: "PKG_CONFIG_PATH", Value: prefix(lookup("PKG_CONFIG_PATH"), l.PkgConfigDir())},
	}}
}

// FromSystem builds the environment for the layout on top of the current
// process environment.
func FromSystem(l store.Layout) Env {
	return Compute(l, os.Getenv)
}

// prefix joins entries ahead of the prior value, dropping the prior value
// entirely when it is empty.
func prefix(prior string, entries ...string) string {
	if prior != "" {
		entries = append(entries, prior)
	}
	return strings.Join(entries, string(os.PathListSeparator))
}

// Vars returns the composed variables in stable order.
func (e Env) Vars() []Var {
	return e.vars
}

// Get returns the composed value for key, or "" if not composed.
func (e Env) Get(key string) string {
	for _, v := range e.vars {
		if v.Key == key {
			return v.Value
		}
	}
	return ""
}

// Apply overlays the composed variables onto a base environment in
// KEY=VALUE form, replacing existing entries and appending the rest.
// The base slice is not modified.
func (e Env) Apply(base []string) []string {
	result := make([]string, 0, len(base)+len(e.vars))
	seen := make(map[string]bool, len(e.vars))

	for _, entry := range base {
		key, _, ok := strings.Cut(entry, "=")
		if ok && e.composed(key) {
			if !seen[key] {
				result = append(result, key+"="+e.Get(key))
				seen[key] = true
			}
			continue
		}
		result = append(result, entry)
	}

	for _, v := range e.vars {
		if !seen[v.Key] {
			result = append(result, v.Key+"="+v.Value)
		}
	}
	return result
}

// Environ returns the current process environment with the composed
// variables applied.
func (e Env) Environ() []string {
	return e.Apply(os.Environ())
}

// ExportLines renders the variables as shell export statements for eval by
// a sourcing shell.
func (e Env) ExportLines() string {
	var b strings.Builder
	for _, v := range e.vars {
		fmt.Fprintf(&b, "export %s=%q\n", v.Key, v.Value)
	}
	return b.String()
}

// composed reports whether key is one of the composed variables.
func (e Env) composed(key string) bool {
	for _, v := range e.vars {
		if v.Key == key {
			return true
		}
	}
	return false
}
