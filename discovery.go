// File: treeline/config/discovery.go
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileDiscoveryOptions configures automatic configuration file
// discovery.
type FileDiscoveryOptions struct {
	// Base name of the config file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (checked before the defaults)
	Paths []string

	// Environment variable holding an explicit path
	EnvVar string

	// Whether to search the user config directory (XDG on Unix)
	UseConfigDir bool

	// Whether to search the current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible discovery defaults for an
// application name: YAML first, then TOML and JSON, with
// APPNAME_CONFIG as the explicit-path variable.
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".yaml", ".yml", ".toml", ".json"},
		EnvVar:        defaultEnvTransform("")(appName) + "_CONFIG",
		UseConfigDir:  true,
		UseCurrentDir: true,
	}
}

// FindFile searches for a configuration file on fsys per opts and
// returns the first match. The environment variable wins outright when
// set, whether or not the file it names exists.
func FindFile(fsys afero.Fs, opts FileDiscoveryOptions) (string, bool) {
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path, true
		}
	}

	var dirs []string
	dirs = append(dirs, opts.Paths...)
	if opts.UseCurrentDir {
		dirs = append(dirs, ".")
	}
	if opts.UseConfigDir {
		if configDir, err := os.UserConfigDir(); err == nil {
			dirs = append(dirs, filepath.Join(configDir, opts.Name))
		}
	}

	for _, dir := range dirs {
		for _, ext := range opts.Extensions {
			candidate := filepath.Join(dir, opts.Name+ext)
			if ok, err := afero.Exists(fsys, candidate); err == nil && ok {
				return candidate, true
			}
		}
	}
	return "", false
}
