// File: treeline/config/env.go
package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvTransformFunc converts a configuration path to an environment
// variable name.
type EnvTransformFunc func(path string) string

// defaultEnvTransform maps "server.max-conns" with prefix "APP_" to
// "APP_SERVER_MAX_CONNS".
func defaultEnvTransform(prefix string) EnvTransformFunc {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	return func(path string) string {
		return prefix + strings.ToUpper(replacer.Replace(path))
	}
}

// PatchEnv overlays environment variables onto the configuration as a
// dict-kind patch at the root. Every leaf path of the consolidated tree
// is transformed into a variable name (prefix + path uppercased, dots
// and dashes to underscores) and looked up; set variables are parsed as
// bool, int64, float64 or string. Nothing happens when no variable
// matches. The overlay is provenance-tracked like any other patch, so
// later SetValue calls on overlaid paths resolve to it.
func (s *Store) PatchEnv(prefix string) error {
	return s.PatchEnvFunc(defaultEnvTransform(prefix), "env:"+prefix)
}

// PatchEnvFunc is PatchEnv with a custom path-to-variable transform and
// patch origin label.
func (s *Store) PatchEnvFunc(transform EnvTransformFunc, origin string) error {
	overlay := Tree{}
	for _, path := range leafPaths(s.tree) {
		value, ok := os.LookupEnv(transform(path))
		if !ok {
			continue
		}
		setPath(overlay, path, parseScalar(value))
	}
	if len(overlay) == 0 {
		return nil
	}
	return s.Patch(treeSource{tree: overlay, origin: origin}, "")
}

// PatchArgs overlays command-line arguments onto the configuration as a
// dict-kind patch at the root. Arguments take the form
// "--dotted.path value"; a flag followed by another flag or by the end
// of the argument list is treated as a boolean true.
func (s *Store) PatchArgs(args []string) error {
	overlay := parseArgs(args)
	if len(overlay) == 0 {
		return nil
	}
	return s.Patch(treeSource{tree: overlay, origin: "cli"}, "")
}

// parseArgs processes command-line arguments into a nested tree.
func parseArgs(args []string) Tree {
	result := Tree{}
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}
		keyPath := strings.TrimPrefix(arg, "--")
		if keyPath == "" {
			i++
			continue
		}

		var raw string
		if eq := strings.IndexByte(keyPath, '='); eq >= 0 {
			keyPath, raw = keyPath[:eq], keyPath[eq+1:]
			i++
		} else if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
			raw = "true"
			i++
		} else {
			raw = args[i+1]
			i += 2
		}

		setPath(result, keyPath, parseScalar(raw))
	}
	return result
}

// parseScalar interprets a textual value as bool, int64, float64 or,
// failing those, a plain string.
func parseScalar(raw string) any {
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return raw
}
