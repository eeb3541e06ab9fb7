// File: treeline/config/save.go
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// SaveResult records the persistence outcome for one patch.
type SaveResult struct {
	Kind   PatchKind
	Origin string
	Branch string
	// Saved is true when the patch content was written out.
	Saved bool
	// Reason explains why an unsaved patch was skipped.
	Reason string
	// Err holds the write error for a failed attempt.
	Err error
}

// Skip reasons reported by Save.
const (
	ReasonNotFileBacked = "not file-backed"
	ReasonNotModified   = "not modified"
)

// Save writes every dirty file-backed patch back to its origin file
// and reports one result per patch in load order. Dict and resource
// patches are never written; clean file patches are skipped. A failure
// on one patch does not stop the others. A successful write clears the
// patch's dirty flag.
func (s *Store) Save() []SaveResult {
	return s.save("")
}

// SaveTo is Save with every dirty file-backed patch redirected to the
// single override path instead of its own origin.
func (s *Store) SaveTo(path string) []SaveResult {
	return s.save(path)
}

func (s *Store) save(override string) []SaveResult {
	results := make([]SaveResult, 0, len(s.registry.patches))
	for _, p := range s.registry.patches {
		res := SaveResult{Kind: p.Kind, Origin: p.Origin, Branch: p.Branch}
		switch {
		case p.Kind != KindFile:
			res.Reason = ReasonNotFileBacked
		case !p.Dirty:
			res.Reason = ReasonNotModified
		default:
			target := p.Origin
			if override != "" {
				target = override
			}
			if err := s.writePatch(p, target); err != nil {
				res.Err = err
			} else {
				res.Saved = true
				p.Dirty = false
			}
		}
		s.log.Debug().
			Str("origin", p.Origin).
			Bool("saved", res.Saved).
			Str("reason", res.Reason).
			Msg("save")
		results = append(results, res)
	}
	return results
}

// writePatch serializes a patch's content and writes it atomically:
// temp file in the target directory, then rename over the target.
func (s *Store) writePatch(p *Patch, target string) error {
	format := detectFormat(target)
	if format == "" {
		format = FormatYAML
	}
	data, err := encodeTree(p.Content, format)
	if err != nil {
		return fmt.Errorf("failed to marshal patch %s: %w", p.Origin, err)
	}

	dir := filepath.Dir(target)
	if err := s.host.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.host.FS, dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %q: %w", target, err)
	}
	tmpName := tmp.Name()
	defer s.host.FS.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file %q: %w", tmpName, err)
	}
	if err := s.host.FS.Rename(tmpName, target); err != nil {
		return fmt.Errorf("failed to rename temp file to %q: %w", target, err)
	}
	if err := s.host.FS.Chmod(target, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %q: %w", target, err)
	}
	return nil
}
