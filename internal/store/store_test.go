package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/schema"
	"github.com/dusk-indust/codegraph/internal/store"
)

func TestMemStore_PutAndStats(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemStore()
	require.NoError(t, m.InitSchema(ctx))

	nodes := []schema.Node{
		{ID: 1, Kind: "entry", Label: "entry"},
		{ID: 2, Kind: "call", Label: "f()"},
	}
	edges := []schema.Edge{{Source: 1, Target: 2, Kind: "seq"}}

	require.NoError(t, m.PutNodes(ctx, nodes))
	require.NoError(t, m.PutEdges(ctx, edges))

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.NodeCount)
	assert.Equal(t, 1, stats.EdgeCount)

	got, err := m.GetNode(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "call", got.Kind)

	from, err := m.EdgesFrom(ctx, 1)
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, identity.NodeID(2), from[0].Target)

	require.NoError(t, m.Close())
}

func TestAnnotateBlockIDs(t *testing.T) {
	nodes := []schema.Node{
		{ID: 1, Kind: "entry"},
		{ID: 2, Kind: "stmt", Extra: map[string]string{"existing": "x"}},
		{ID: 3, Kind: "exit"},
	}
	blocks := [][]identity.NodeID{{1, 2}, {3}}

	out := store.AnnotateBlockIDs(nodes, blocks)

	require.Len(t, out, 3)
	assert.Equal(t, "0", out[0].Extra["block_id"])
	assert.Equal(t, "0", out[1].Extra["block_id"])
	assert.Equal(t, "x", out[1].Extra["existing"], "existing extra entries must survive annotation")
	assert.Equal(t, "1", out[2].Extra["block_id"])

	// Input must not be mutated.
	_, mutated := nodes[1].Extra["block_id"]
	assert.False(t, mutated, "AnnotateBlockIDs must not mutate its input")
}
