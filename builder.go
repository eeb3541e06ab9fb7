// File: treeline/config/builder.go
package config

import (
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Builder provides a fluent interface for constructing a Store.
type Builder struct {
	src        Source
	fsys       afero.Fs
	discovery  *FileDiscoveryOptions
	opts       []Option
	validators []ValidatorFunc
	err        error
}

// NewBuilder creates a new store builder.
func NewBuilder() *Builder {
	return &Builder{fsys: afero.NewOsFs()}
}

// WithFile sets a file as the initial source.
func (b *Builder) WithFile(path string) *Builder {
	return b.withSource(File(path))
}

// WithResource sets an embedded resource as the initial source. Empty
// name or pkg fall back to the package defaults.
func (b *Builder) WithResource(name, pkg string) *Builder {
	return b.withSource(Resource(name, pkg))
}

// WithTree sets an in-memory tree as the initial source.
func (b *Builder) WithTree(tree Tree) *Builder {
	return b.withSource(FromTree(tree))
}

// WithFileDiscovery locates the initial file source through discovery
// at build time.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithFS sets the filesystem used for discovery, file sources and Save.
func (b *Builder) WithFS(fsys afero.Fs) *Builder {
	b.fsys = fsys
	b.opts = append(b.opts, WithFS(fsys))
	return b
}

// WithResources installs a resource provider backed by an fs.FS.
func (b *Builder) WithResources(fsys fs.FS) *Builder {
	b.opts = append(b.opts, WithResources(fsys))
	return b
}

// WithResourceProvider installs a custom resource provider.
func (b *Builder) WithResourceProvider(p ResourceProvider) *Builder {
	b.opts = append(b.opts, WithResourceProvider(p))
	return b
}

// WithValidator adds a validation function run after the initial load.
// Validators run in the order added; the first failure vetoes
// construction.
func (b *Builder) WithValidator(v ValidatorFunc) *Builder {
	b.validators = append(b.validators, v)
	return b
}

// WithLogger attaches a debug logger to the store.
func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	b.opts = append(b.opts, WithLogger(log))
	return b
}

// WithTagName sets the struct tag consulted by DecodeSection.
func (b *Builder) WithTagName(tag string) *Builder {
	b.opts = append(b.opts, WithTagName(tag))
	return b
}

func (b *Builder) withSource(src Source) *Builder {
	if b.src != nil && b.err == nil {
		b.err = fmt.Errorf("initial source already set to %s", b.src.Origin())
	}
	b.src = src
	return b
}

// Build constructs the store.
func (b *Builder) Build() (*Store, error) {
	if b.err != nil {
		return nil, b.err
	}

	src := b.src
	if src == nil && b.discovery != nil {
		path, found := FindFile(b.fsys, *b.discovery)
		if !found {
			return nil, fmt.Errorf("no configuration file found for %q", b.discovery.Name)
		}
		src = File(path)
	}

	opts := b.opts
	if len(b.validators) > 0 {
		validators := b.validators
		opts = append(opts, WithValidator(func(s *Store) error {
			for _, v := range validators {
				if err := v(s); err != nil {
					return err
				}
			}
			return nil
		}))
	}

	return New(src, opts...)
}

// MustBuild constructs the store and panics on failure.
func (b *Builder) MustBuild() *Store {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return s
}
