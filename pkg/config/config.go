// Package config loads pkgkeep configuration from an optional YAML file and
// PKGKEEP_* environment variables. Package lists arrive as JSON arrays of
// strings and are decoded into typed slices at this boundary.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pkgkeep/pkgkeep/pkg/store"
)

const (
	// EnvPrefix is the prefix for environment variable overrides
	// (PKGKEEP_ROOT, PKGKEEP_APK_PACKAGES, PKGKEEP_PIP_PACKAGES).
	EnvPrefix = "PKGKEEP"
	// ConfigFileName is the name of the optional config file under the
	// persist root.
	ConfigFileName = "pkgkeep.yaml"
	// ConfigPathEnv overrides the config file location entirely.
	ConfigPathEnv = "PKGKEEP_CONFIG"
)

// Config holds everything pkgkeep reads from configuration.
type Config struct {
	// Root is the persist root directory.
	Root string

	// APKPackages are system packages the auto-installer should persist.
	APKPackages []string

	// PipPackages are Python packages the auto-installer should install
	// into the persistent virtualenv.
	PipPackages []string
}

// Load reads configuration with precedence: environment variables, then the
// config file, then defaults. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("root", store.DefaultRoot)
	v.SetDefault("apk_packages", []string{})
	v.SetDefault("pip_packages", []string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Root must be resolved before the file lookup, since the default
	// file location lives under it.
	root := v.GetString("root")

	configPath := os.Getenv(ConfigPathEnv)
	if configPath == "" {
		configPath = filepath.Join(root, ConfigFileName)
	}
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	apkPkgs, err := decodeList(v.Get("apk_packages"))
	if err != nil {
		return nil, fmt.Errorf("invalid apk_packages: %w", err)
	}
	pipPkgs, err := decodeList(v.Get("pip_packages"))
	if err != nil {
		return nil, fmt.Errorf("invalid pip_packages: %w", err)
	}

	return &Config{
		Root:        v.GetString("root"),
		APKPackages: apkPkgs,
		PipPackages: pipPkgs,
	}, nil
}

// decodeList converts a configuration value into a package list. YAML lists
// come through as slices; environment values are JSON-array strings. Empty
// string, empty array, and absence all mean an empty list.
func decodeList(value interface{}) ([]string, error) {
	switch val := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return val, nil
	case []interface{}:
		result := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list element %v is not a string", item)
			}
			result = append(result, s)
		}
		return result, nil
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return []string{}, nil
		}
		var result []string
		if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
			return nil, fmt.Errorf("not a JSON array of strings: %w", err)
		}
		if result == nil {
			result = []string{}
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported list value of type %T", value)
	}
}
