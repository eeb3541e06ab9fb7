// File: treeline/config/store.go
package config

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// IncludeKey is the reserved directive key that triggers recursive
// loading of nested sources during Patch. It never survives into the
// consolidated tree.
const IncludeKey = "__INCLUDE__"

// ValidatorFunc validates a freshly constructed Store and may veto
// construction by returning an error.
type ValidatorFunc func(*Store) error

// Store owns a consolidated configuration tree assembled from an
// ordered sequence of patches, and tracks which patch every value came
// from so edits can be written back to their originating source.
//
// A Store is built for single-owner, single-thread use: all operations
// are synchronous and it carries no locking. Callers needing shared
// access must serialize externally.
type Store struct {
	tree     Tree
	registry registry
	host     Host
	validate ValidatorFunc
	tagName  string
	log      zerolog.Logger
}

// Option configures a Store at construction.
type Option func(*Store)

// WithFS sets the filesystem file sources and Save operate on.
// Defaults to the OS filesystem.
func WithFS(fsys afero.Fs) Option {
	return func(s *Store) { s.host.FS = fsys }
}

// WithResources installs a resource provider backed by an fs.FS,
// typically an embed.FS.
func WithResources(fsys fs.FS) Option {
	return func(s *Store) { s.host.Resources = FSResources{FS: fsys} }
}

// WithResourceProvider installs a custom resource provider.
func WithResourceProvider(p ResourceProvider) Option {
	return func(s *Store) { s.host.Resources = p }
}

// WithValidator sets the validation hook run after the initial load.
// The default accepts everything.
func WithValidator(v ValidatorFunc) Option {
	return func(s *Store) { s.validate = v }
}

// WithLogger attaches a logger for debug traces of patch, mutation and
// save activity. The default logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithTagName sets the struct tag consulted by DecodeSection.
// Defaults to "yaml".
func WithTagName(tag string) Option {
	return func(s *Store) { s.tagName = tag }
}

// New builds a Store from a single initial source and runs the
// validation hook. A nil source loads the default embedded resource
// (DefaultResourceName in DefaultResourcePackage).
func New(src Source, opts ...Option) (*Store, error) {
	s := &Store{
		tree:    Tree{},
		host:    Host{FS: afero.NewOsFs()},
		tagName: "yaml",
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if src == nil {
		src = Resource(DefaultResourceName, DefaultResourcePackage)
	}
	if err := s.Patch(src, ""); err != nil {
		return nil, err
	}
	if s.validate != nil {
		if err := s.validate(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Patch loads src and merges it into the consolidated tree at branch,
// recording provenance for every changed path. After the merge, an
// IncludeKey directive found at the target node is removed and its
// entries are loaded recursively, each at branch + "." + name, through
// sources resolved from src. Includes compose.
func (s *Store) Patch(src Source, branch string) error {
	target, err := s.branchNode(branch)
	if err != nil {
		return err
	}

	loaded, err := src.Load(s.host)
	if err != nil {
		return err
	}

	changed := merge(target, loaded, branch)
	s.registry.add(&Patch{
		Kind:    src.Kind(),
		Origin:  src.Origin(),
		Branch:  branch,
		Content: deepCopyTree(loaded),
	}, changed)

	s.log.Debug().
		Str("kind", string(src.Kind())).
		Str("origin", src.Origin()).
		Str("branch", branch).
		Int("changed", len(changed)).
		Msg("patch applied")

	return s.expandIncludes(src, target, branch)
}

// expandIncludes consumes the IncludeKey directive at target, if any,
// and patches each referenced source at its sub-branch. Sub-branches
// are processed in sorted order; missing sub-branch nodes are stubbed
// with empty mappings before recursing.
func (s *Store) expandIncludes(src Source, target Tree, branch string) error {
	raw, ok := target[IncludeKey]
	if !ok {
		return nil
	}
	directive, ok := raw.(Tree)
	if !ok {
		return fmt.Errorf("%w: %s at %q must be a mapping", ErrParse, IncludeKey, branch)
	}
	delete(target, IncludeKey)

	names := make([]string, 0, len(directive))
	for name := range directive {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		location, ok := directive[name].(string)
		if !ok {
			return fmt.Errorf("%w: %s entry %q at %q must be a source location string",
				ErrParse, IncludeKey, name, branch)
		}
		if _, exists := target[name]; !exists {
			target[name] = Tree{}
		}
		nested, err := src.Resolve(location)
		if err != nil {
			return err
		}
		if err := s.Patch(nested, joinPath(branch, name)); err != nil {
			return err
		}
	}
	return nil
}

// branchNode resolves the tree node addressed by branch. Every segment
// must exist and hold a mapping.
func (s *Store) branchNode(branch string) (Tree, error) {
	node := s.tree
	walked := ""
	for _, seg := range splitPath(branch) {
		walked = joinPath(walked, seg)
		next, ok := node[seg].(Tree)
		if !ok {
			return nil, fmt.Errorf("%w: %q (resolving %q)", ErrBranchNotFound, walked, branch)
		}
		node = next
	}
	return node, nil
}

// Section returns the mapping at a dot-separated path, or nil when the
// path is absent or does not address a mapping. The empty path returns
// the whole consolidated tree.
func (s *Store) Section(path string) Tree {
	node, ok := navigate(s.tree, path)
	if !ok {
		return nil
	}
	tree, ok := node.(Tree)
	if !ok {
		return nil
	}
	return tree
}

// RequireSection is Section for paths that must exist.
func (s *Store) RequireSection(path string) (Tree, error) {
	tree := s.Section(path)
	if tree == nil {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, path)
	}
	return tree, nil
}

// Value returns the value of key inside the section at path, or def
// when the section or the key is absent. It never fails.
func (s *Store) Value(path, key string, def any) any {
	sect := s.Section(path)
	if sect == nil {
		return def
	}
	value, ok := sect[key]
	if !ok {
		return def
	}
	return value
}

// SetValue sets key to value in the section at path, in both the
// consolidated tree and the content copy of the patch that owns the
// path, and marks that patch dirty. The returned boolean reports
// whether the edit is persistable through Save, i.e. whether the owning
// patch is file-backed. Mappings are rejected; replacing whole
// sections goes through Patch.
//
// The owning patch is the one whose longest recorded changed path
// covers the target; when no recorded path matches, the root patch is
// eligible as a fallback.
func (s *Store) SetValue(path, key string, value any) (prev any, persistable bool, err error) {
	if isMapping(value) {
		return nil, false, fmt.Errorf("%w: key %q at %q", ErrInvalidValue, key, path)
	}

	// The index records full leaf paths, so the lookup includes the key.
	pos, err := s.registry.locate(joinPath(path, key))
	if err != nil {
		return nil, false, err
	}
	p := s.registry.patches[pos]
	if !isPathPrefix(p.Branch, path) {
		return nil, false, fmt.Errorf("%w: patch %d branch %q, path %q", ErrPrefixMismatch, pos, p.Branch, path)
	}

	// Trace the path suffix inside the patch's own content copy.
	node := p.Content
	walked := p.Branch
	for _, seg := range splitPath(pathSuffix(p.Branch, path)) {
		walked = joinPath(walked, seg)
		next, ok := node[seg].(Tree)
		if !ok {
			return nil, false, fmt.Errorf("%w: %q missing in patch %d (%s)", ErrPathTrace, walked, pos, p.Origin)
		}
		node = next
	}

	sect, err := s.RequireSection(path)
	if err != nil {
		return nil, false, err
	}

	prev = sect[key]
	node[key] = deepCopyValue(value)
	sect[key] = deepCopyValue(value)
	p.Dirty = true

	s.log.Debug().
		Str("path", path).
		Str("key", key).
		Int("patch", pos).
		Msg("value set")

	return prev, p.Kind == KindFile, nil
}

// Patches returns the provenance records in load order. The slice is a
// copy; the patches themselves are live.
func (s *Store) Patches() []*Patch {
	out := make([]*Patch, len(s.registry.patches))
	copy(out, s.registry.patches)
	return out
}

// Tree returns the consolidated tree. The caller must not mutate it;
// use SetValue or Patch instead.
func (s *Store) Tree() Tree {
	return s.tree
}
