// File: treeline/config/errors.go
package config

import "errors"

// Sentinel errors returned by the package. All user-facing failures wrap
// one of these so callers can classify them with errors.Is while the
// wrapped message carries the offending path or source.
var (
	// ErrParse indicates that source text could not be parsed into a tree,
	// or that a directive inside a loaded tree is malformed.
	ErrParse = errors.New("source not parsable")

	// ErrNotAMapping indicates that a parsed source has a non-mapping root
	// (e.g. a top-level list or scalar).
	ErrNotAMapping = errors.New("source root is not a mapping")

	// ErrBranchNotFound indicates that a patch target branch does not exist
	// in the consolidated tree.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrSectionNotFound indicates that a required section is missing or is
	// not a mapping.
	ErrSectionNotFound = errors.New("section not found")

	// ErrInvalidValue indicates that SetValue was given a mapping; mapping
	// replacement must go through Patch.
	ErrInvalidValue = errors.New("value must not be a mapping")

	// ErrPatchNotFound indicates that no patch owns the given path.
	ErrPatchNotFound = errors.New("no patch found for path")

	// ErrPrefixMismatch indicates that the patch located for a path does not
	// actually cover it; the registry invariant is broken or the caller
	// referenced an untracked leaf.
	ErrPrefixMismatch = errors.New("patch branch is not a prefix of path")

	// ErrPathTrace indicates that a path could not be navigated inside the
	// owning patch's content copy.
	ErrPathTrace = errors.New("cannot trace path in patch content")
)
