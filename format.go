// File: treeline/config/format.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names a serialization format the package can read and write.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// detectFormat maps a file name to its format by extension. Unknown
// extensions return "" so the caller can fall back to content sniffing
// or the package default.
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return ""
	}
}

// detectFormatFromContent guesses the format by trial parsing. JSON is
// tried before YAML because YAML is a superset of it.
func detectFormatFromContent(data []byte) Format {
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}
	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}
	return ""
}

// decodeTree parses source text into a Tree. Syntax problems are
// reported as ErrParse with the parser's diagnostic attached; a
// well-formed document whose root is not a mapping is ErrNotAMapping.
func decodeTree(data []byte, format Format, origin string) (Tree, error) {
	var root any
	switch format {
	case FormatTOML:
		tree := make(Tree)
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, origin, err)
		}
		return tree, nil
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber() // preserve number precision
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, origin, err)
		}
	default:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, origin, err)
		}
	}

	tree, ok := normalizeValue(root).(Tree)
	if !ok {
		return nil, fmt.Errorf("%w: %s: got %T", ErrNotAMapping, origin, root)
	}
	return tree, nil
}

// encodeTree serializes a Tree for persistence.
func encodeTree(tree Tree, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(tree); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(tree, "", "  ")
	default:
		return yaml.Marshal(tree)
	}
}

// normalizeValue rewrites decoder output so every mapping is a Tree.
// yaml.v3 produces map[string]any for string-keyed mappings but
// map[any]any when any key is not a plain string.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case Tree:
		for key, e := range v {
			v[key] = normalizeValue(e)
		}
		return v
	case map[any]any:
		out := make(Tree, len(v))
		for key, e := range v {
			out[fmt.Sprint(key)] = normalizeValue(e)
		}
		return out
	case []any:
		for i, e := range v {
			v[i] = normalizeValue(e)
		}
		return v
	default:
		return v
	}
}
