// File: treeline/config/patch.go
package config

import (
	"fmt"
	"sort"
)

// PatchKind identifies where a patch's content originated.
type PatchKind string

const (
	// KindFile marks a patch loaded from a filesystem path. Only file
	// patches are persistable through Save.
	KindFile PatchKind = "file"
	// KindResource marks a patch loaded from an embedded resource.
	KindResource PatchKind = "resource"
	// KindDict marks a patch applied from an in-memory tree.
	KindDict PatchKind = "dict"
)

// Patch is the provenance record of one load/merge operation. Content
// is an independent copy of the loaded tree; it never shares structure
// with the consolidated tree.
type Patch struct {
	Kind    PatchKind
	Origin  string
	Branch  string
	Content Tree
	Dirty   bool
}

// indexEntry pairs a changed absolute path with the position of its
// owning patch in the load-order sequence.
type indexEntry struct {
	path  string
	patch int
}

// registry holds the patches in load order together with the sorted
// path index used to resolve value mutations back to their source.
type registry struct {
	patches []*Patch
	index   []indexEntry
}

// add appends a patch and indexes every path it changed.
func (r *registry) add(p *Patch, changed []string) int {
	pos := len(r.patches)
	r.patches = append(r.patches, p)
	for _, path := range changed {
		r.insert(path, pos)
	}
	return pos
}

// insert places an index entry at the upper bound of equal paths, so a
// backward scan meets the most recently registered patch first.
func (r *registry) insert(path string, patch int) {
	i := sort.Search(len(r.index), func(i int) bool { return r.index[i].path > path })
	r.index = append(r.index, indexEntry{})
	copy(r.index[i+1:], r.index[i:])
	r.index[i] = indexEntry{path: path, patch: patch}
}

// locate finds the patch owning path: the entry with the longest
// recorded path that is a prefix of it. The scan runs backward from the
// binary-search upper bound, so the most specific match wins and equal
// paths resolve to the latest patch. When nothing matches, the root
// patch (index 0) is eligible as a fallback; its branch is still
// checked by the caller.
func (r *registry) locate(path string) (int, error) {
	i := sort.Search(len(r.index), func(i int) bool { return r.index[i].path > path })
	for j := i - 1; j >= 0; j-- {
		if isPathPrefix(r.index[j].path, path) {
			return r.index[j].patch, nil
		}
	}
	if len(r.patches) > 0 {
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrPatchNotFound, path)
}
