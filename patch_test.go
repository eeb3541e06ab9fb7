// FILE: treeline/config/patch_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistryIndexOrder tests sorted insertion and equal-path ordering
func TestRegistryIndexOrder(t *testing.T) {
	var r registry
	r.add(&Patch{Kind: KindDict}, []string{"b", "a", "c"})
	r.add(&Patch{Kind: KindDict}, []string{"b"})

	paths := make([]string, 0, len(r.index))
	for _, e := range r.index {
		paths = append(paths, e.path)
	}
	assert.Equal(t, []string{"a", "b", "b", "c"}, paths)

	// The later patch's equal entry sits after the earlier one, so a
	// backward scan meets the most recent registration first.
	assert.Equal(t, 0, r.index[1].patch)
	assert.Equal(t, 1, r.index[2].patch)
}

// TestRegistryLocate tests longest-prefix resolution
func TestRegistryLocate(t *testing.T) {
	var r registry
	r.add(&Patch{Branch: ""}, []string{"steps", "debug"})
	r.add(&Patch{Branch: "steps.load"}, []string{"steps.load.parameters.x"})

	tests := []struct {
		name  string
		path  string
		patch int
	}{
		{"ExactLeafMatch", "steps.load.parameters.x", 1},
		{"DeeperThanLeaf", "steps.load.parameters.x.sub", 1},
		{"AncestorEntry", "steps.write.parameters.y", 0},
		{"TopLevel", "debug", 0},
		{"RootFallback", "unrelated.path", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := r.locate(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.patch, pos)
		})
	}
}

// TestRegistryLocateSegmentBoundary tests that prefix matching does not
// cross dotted-segment boundaries
func TestRegistryLocateSegmentBoundary(t *testing.T) {
	var r registry
	r.add(&Patch{Branch: ""}, []string{"top"})
	r.add(&Patch{Branch: "steps.load"}, []string{"steps.load"})

	// "steps.load" must not claim "steps.load2".
	pos, err := r.locate("steps.load2.x")
	require.NoError(t, err)
	assert.Equal(t, 0, pos, "expected root fallback, not the steps.load patch")
}

// TestRegistryLocateTieBreak tests that overlapping patches resolve to
// the most recent one
func TestRegistryLocateTieBreak(t *testing.T) {
	var r registry
	r.add(&Patch{Branch: ""}, []string{"server.port"})
	r.add(&Patch{Branch: ""}, []string{"server.port"})

	pos, err := r.locate("server.port")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

// TestRegistryLocateEmpty tests the no-patches error
func TestRegistryLocateEmpty(t *testing.T) {
	var r registry
	_, err := r.locate("anything")
	assert.ErrorIs(t, err, ErrPatchNotFound)
}

// TestRegistryRootFallbackWithEmptyIndex tests that a patch with no
// recorded changes is still reachable through the root fallback
func TestRegistryRootFallbackWithEmptyIndex(t *testing.T) {
	var r registry
	r.add(&Patch{Branch: ""}, nil)

	pos, err := r.locate("any.path")
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
}
