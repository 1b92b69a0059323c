package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codegraph/internal/compose"
	"github.com/dusk-indust/codegraph/internal/schema"
)

func TestBuild_LabelPriorityCFGOverAST(t *testing.T) {
	viewNodes := []schema.ViewNode{
		{ID: 1, View: schema.AST, Kind: "identifier", Label: "x", Line: 1},
		{ID: 1, View: schema.CFG, Kind: "stmt", Label: "x = 1", Line: 1},
	}
	stream := compose.Build(viewNodes, nil, nil)

	require.Len(t, stream.Nodes, 1)
	n := stream.Nodes[0]
	assert.Equal(t, "stmt", n.Kind, "CFG must win the label/kind over AST")
	assert.True(t, n.ViewTags[schema.AST])
	assert.True(t, n.ViewTags[schema.CFG])
}

func TestBuild_EdgesPassThroughSortedBySourceThenTarget(t *testing.T) {
	edges := []schema.Edge{
		{Source: 3, Target: 1, Kind: "seq"},
		{Source: 1, Target: 2, Kind: "seq"},
		{Source: 1, Target: 1, Kind: "seq"},
	}
	stream := compose.Build(nil, edges, nil)

	require.Len(t, stream.Edges, 3)
	// first two edges share Source==1, ordered by Target ascending.
	assert.EqualValues(t, 1, stream.Edges[0].Source)
	assert.EqualValues(t, 1, stream.Edges[0].Target)
	assert.EqualValues(t, 1, stream.Edges[1].Source)
	assert.EqualValues(t, 2, stream.Edges[1].Target)
	assert.EqualValues(t, 3, stream.Edges[2].Source)
}

func TestBuild_DiagnosticsPassThroughUnchanged(t *testing.T) {
	diags := []schema.Diagnostic{{Kind: schema.DiagnosticCFGError, Message: "boom"}}
	stream := compose.Build(nil, nil, diags)
	assert.Equal(t, diags, stream.Diagnostics)
}
