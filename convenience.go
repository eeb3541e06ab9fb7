// File: treeline/config/convenience.go
package config

import "fmt"

// Well-known sections used by the step and global helpers.
const (
	StepsSection  = "steps"
	GlobalSection = "GLOBAL"
)

// QuickFile builds a store from a single configuration file.
func QuickFile(path string, opts ...Option) (*Store, error) {
	return New(File(path), opts...)
}

// QuickTree builds a store from an in-memory tree.
func QuickTree(tree Tree, opts ...Option) (*Store, error) {
	return New(FromTree(tree), opts...)
}

// RuleSet returns the rule set named key for a processing step, from
// steps.<step>.rules.<key>. The node may be a mapping or a scalar rule
// expression; it must exist.
func (s *Store) RuleSet(step, key string) (any, error) {
	path := StepsSection + "." + step + ".rules." + key
	node, ok := navigate(s.tree, path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, path)
	}
	return node, nil
}

// Parameter returns a parameter for a processing step, from
// steps.<step>.parameters, or def when undefined.
func (s *Store) Parameter(step, key string, def any) any {
	return s.Value(StepsSection+"."+step+".parameters", key, def)
}

// SetParameter sets a step parameter through SetValue, so the change
// is provenance-tracked and persistable when the owning patch is
// file-backed. It returns the previous value, if any.
func (s *Store) SetParameter(step, key string, value any) (any, error) {
	prev, _, err := s.SetValue(StepsSection+"."+step+".parameters", key, value)
	return prev, err
}

// Global returns the value of a global parameter from the GLOBAL
// section. A nil default makes a missing parameter an error.
func (s *Store) Global(key string, def any) (any, error) {
	sect := s.Section(GlobalSection)
	if sect != nil {
		if value, ok := sect[key]; ok {
			return value, nil
		}
	}
	if def == nil {
		return nil, fmt.Errorf("%w: global parameter %q not set and no default given", ErrSectionNotFound, key)
	}
	return def, nil
}

// SetGlobal sets a global parameter through SetValue and returns the
// previous value, if any.
func (s *Store) SetGlobal(key string, value any) (any, error) {
	prev, _, err := s.SetValue(GlobalSection, key, value)
	return prev, err
}
