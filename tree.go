// File: treeline/config/tree.go
package config

import (
	"sort"
	"strings"
)

// Tree is a configuration tree node: a mapping from string keys to
// scalars, []any sequences, or nested Trees. The root of every loaded
// source is a Tree.
type Tree = map[string]any

// splitPath splits a dot-separated branch path into segments.
// The empty path denotes the root and yields no segments.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// joinPath appends a key to a branch path.
func joinPath(branch, key string) string {
	if branch == "" {
		return key
	}
	return branch + "." + key
}

// isPathPrefix reports whether prefix addresses the same node as path or
// an ancestor of it. Matching is segment-aware: "steps.load" covers
// "steps.load.parameters" but not "steps.load2".
func isPathPrefix(prefix, path string) bool {
	if prefix == "" || prefix == path {
		return true
	}
	return strings.HasPrefix(path, prefix+".")
}

// pathSuffix returns the remainder of path below branch. It assumes
// isPathPrefix(branch, path); the result is "" when they are equal.
func pathSuffix(branch, path string) string {
	if branch == "" {
		return path
	}
	if branch == path {
		return ""
	}
	return strings.TrimPrefix(path, branch+".")
}

// navigate walks tree along a dot-separated path and returns the node
// found there. The empty path returns the tree itself.
func navigate(tree Tree, path string) (any, bool) {
	var node any = tree
	for _, seg := range splitPath(path) {
		m, ok := node.(Tree)
		if !ok {
			return nil, false
		}
		node, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// setPath sets a value in tree at a dot-notation path, creating
// intermediate mappings as needed. A non-mapping intermediate node is
// replaced by a new mapping.
func setPath(tree Tree, path string, value any) {
	segs := splitPath(path)
	current := tree
	for _, seg := range segs[:len(segs)-1] {
		next, ok := current[seg].(Tree)
		if !ok {
			next = Tree{}
			current[seg] = next
		}
		current = next
	}
	current[segs[len(segs)-1]] = value
}

// leafPaths returns the dot-separated paths of every non-mapping value
// in tree, sorted for deterministic iteration.
func leafPaths(tree Tree) []string {
	var paths []string
	var walk func(t Tree, prefix string)
	walk = func(t Tree, prefix string) {
		for key, value := range t {
			p := joinPath(prefix, key)
			if sub, ok := value.(Tree); ok {
				walk(sub, p)
			} else {
				paths = append(paths, p)
			}
		}
	}
	walk(tree, "")
	sort.Strings(paths)
	return paths
}

// deepCopyValue returns a copy of value that shares no mutable state
// with the original. Scalars are returned as-is.
func deepCopyValue(value any) any {
	switch v := value.(type) {
	case Tree:
		return deepCopyTree(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}

// deepCopyTree returns an independent copy of tree.
func deepCopyTree(tree Tree) Tree {
	out := make(Tree, len(tree))
	for key, value := range tree {
		out[key] = deepCopyValue(value)
	}
	return out
}

// isMapping reports whether value is a tree node rather than a leaf.
func isMapping(value any) bool {
	switch value.(type) {
	case Tree:
		return true
	case map[any]any:
		return true
	default:
		return false
	}
}
