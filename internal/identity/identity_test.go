package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/parsetree/parsetreetest"
)

func buildSample() (*parsetreetest.Node, *parsetreetest.Node) {
	leaf1 := parsetreetest.New("identifier", 1, 1, "a")
	leaf2 := parsetreetest.New("identifier", 2, 2, "b")
	root := parsetreetest.New("block", 1, 2, "").Children(leaf1, leaf2)
	return root, leaf1
}

func TestBuild_AssignsStableIDs(t *testing.T) {
	root, leaf1 := buildSample()
	tree := parsetreetest.Build(root)

	table := identity.Build(tree)
	require.Equal(t, 3, table.Len(), "root + 2 leaves")

	id1, ok := table.IDFor(parsetreetest.Build(leaf1))
	require.True(t, ok)
	assert.Positive(t, int64(id1))
}

func TestBuild_Idempotent(t *testing.T) {
	root, _ := buildSample()
	tree := parsetreetest.Build(root)

	t1 := identity.Build(tree)
	t2 := identity.Build(tree)

	for _, e := range t1.All() {
		id2, ok := t2.IDFor(e.Node)
		require.True(t, ok)
		assert.Equal(t, e.ID, id2)
	}
}

func TestBuild_SkipsUnnamedNodes(t *testing.T) {
	punct := parsetreetest.New("{", 1, 1, "{").Unnamed()
	leaf := parsetreetest.New("identifier", 1, 1, "x")
	root := parsetreetest.New("block", 1, 1, "").Children(punct, leaf)
	tree := parsetreetest.Build(root)

	table := identity.Build(tree)
	assert.Equal(t, 2, table.Len(), "root + 1 named leaf, punctuation excluded")

	_, ok := table.IDFor(parsetreetest.Build(punct))
	assert.False(t, ok, "unnamed node must not receive an id")
}

func TestBuild_SameSpanSameID(t *testing.T) {
	// Two distinct Node objects with identical (start, end, kind) must
	// resolve to the same NodeID (identity is keyed by span, not pointer).
	a := parsetreetest.New("identifier", 5, 5, "x")
	b := parsetreetest.New("identifier", 5, 5, "x")
	root := parsetreetest.New("block", 5, 5, "").Children(a)
	tree := parsetreetest.Build(root)
	table := identity.Build(tree)

	idA, okA := table.IDFor(parsetreetest.Build(a))
	idB, okB := table.IDFor(parsetreetest.Build(b))
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, idA, idB)
}
