// File: treeline/config/source.go
package config

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Defaults used when a store is constructed without an explicit source.
const (
	DefaultResourceName    = "config.yaml"
	DefaultResourcePackage = "assets"
)

// Host carries the capabilities sources load through: a filesystem for
// file sources and a resource provider for embedded sources. The store
// owns one Host and hands it to every load.
type Host struct {
	FS        afero.Fs
	Resources ResourceProvider
}

// ResourceProvider resolves a named resource inside a package-like
// namespace. Implementations are injected at store construction; the
// core never assumes a concrete embedding mechanism.
type ResourceProvider interface {
	Open(pkg, name string) (io.ReadCloser, error)
}

// FSResources adapts an fs.FS (typically an embed.FS) into a
// ResourceProvider. Package identifiers map to directories with dots
// replaced by path separators, so package "app.assets" resolves
// resource "config.yaml" to "app/assets/config.yaml".
type FSResources struct {
	FS fs.FS
}

func (r FSResources) Open(pkg, name string) (io.ReadCloser, error) {
	return r.FS.Open(path.Join(strings.ReplaceAll(pkg, ".", "/"), name))
}

// Source describes one loadable configuration origin. Load produces the
// parsed tree; Resolve derives the source for a nested include location
// in the same addressing scheme as the parent.
type Source interface {
	Kind() PatchKind
	Origin() string
	Load(host Host) (Tree, error)
	Resolve(location string) (Source, error)
}

// File returns a source that reads a file from the host filesystem.
// The format is detected from the extension, falling back to content
// sniffing and finally to YAML.
func File(filePath string) Source {
	return fileSource{path: filePath}
}

type fileSource struct {
	path string
}

func (s fileSource) Kind() PatchKind { return KindFile }
func (s fileSource) Origin() string  { return s.path }

func (s fileSource) Load(host Host) (Tree, error) {
	data, err := afero.ReadFile(host.FS, s.path)
	if err != nil {
		// I/O failures propagate as-is; only parse problems are wrapped.
		return nil, err
	}
	format := detectFormat(s.path)
	if format == "" {
		format = detectFormatFromContent(data)
	}
	return decodeTree(data, format, s.path)
}

// Resolve locates include targets relative to the including file's
// directory, on the same filesystem.
func (s fileSource) Resolve(location string) (Source, error) {
	return fileSource{path: filepath.Join(filepath.Dir(s.path), location)}, nil
}

// Resource returns a source that reads a named resource from the
// store's ResourceProvider. An empty name or pkg falls back to the
// package defaults.
func Resource(name, pkg string) Source {
	if name == "" {
		name = DefaultResourceName
	}
	if pkg == "" {
		pkg = DefaultResourcePackage
	}
	return resourceSource{name: name, pkg: pkg}
}

type resourceSource struct {
	name string
	pkg  string
}

func (s resourceSource) Kind() PatchKind { return KindResource }
func (s resourceSource) Origin() string  { return s.pkg + ":" + s.name }

func (s resourceSource) Load(host Host) (Tree, error) {
	if host.Resources == nil {
		return nil, fmt.Errorf("no resource provider configured for %s", s.Origin())
	}
	r, err := host.Resources.Open(s.pkg, s.name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	format := detectFormat(s.name)
	if format == "" {
		format = detectFormatFromContent(data)
	}
	return decodeTree(data, format, s.Origin())
}

// Resolve keeps include targets in the same package.
func (s resourceSource) Resolve(location string) (Source, error) {
	return resourceSource{name: location, pkg: s.pkg}, nil
}

// FromTree returns a source backed by an in-memory tree. The tree is
// copied at patch time, so the caller keeps ownership of its argument.
func FromTree(tree Tree) Source {
	return treeSource{tree: tree, origin: "inline"}
}

type treeSource struct {
	tree   Tree
	origin string
}

func (s treeSource) Kind() PatchKind { return KindDict }
func (s treeSource) Origin() string  { return s.origin }

func (s treeSource) Load(Host) (Tree, error) {
	if s.tree == nil {
		return Tree{}, nil
	}
	return s.tree, nil
}

// Resolve fails: an in-memory tree has no addressing scheme to locate
// an include target in.
func (s treeSource) Resolve(location string) (Source, error) {
	return nil, fmt.Errorf("%w: include %q cannot be resolved from an in-memory source", ErrParse, location)
}
