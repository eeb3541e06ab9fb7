// File: treeline/config/decode.go
package config

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// DecodeSection decodes the section at path into target, which must be
// a non-nil pointer to a struct or map. Field matching uses the store's
// tag name ("yaml" unless overridden with WithTagName) with weak type
// conversion and hooks for time.Duration and comma-separated slices.
// An empty path decodes the whole consolidated tree.
func (s *Store) DecodeSection(path string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", target)
	}

	var sect Tree
	if path == "" {
		sect = s.tree
	} else if sect = s.Section(path); sect == nil {
		return fmt.Errorf("%w: %q", ErrSectionNotFound, path)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          s.tagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(sect); err != nil {
		return fmt.Errorf("failed to decode section %q: %w", path, err)
	}
	return nil
}
