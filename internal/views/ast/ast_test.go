package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codegraph/internal/catalog"
	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/parsetree/parsetreetest"
	"github.com/dusk-indust/codegraph/internal/views/ast"
)

// buildSmallTree builds: block { comment; x }
func buildSmallTree() (root, comment, x *parsetreetest.Node) {
	comment = parsetreetest.New("comment", 1, 1, "// hi")
	x = parsetreetest.New("identifier", 2, 2, "x")
	root = parsetreetest.New("block", 1, 2, "").Children(comment, x)
	return
}

func TestBuild_PreOrderNodesAndChildEdges(t *testing.T) {
	root, comment, x := buildSmallTree()
	tree := parsetreetest.Build(root)
	ids := identity.Build(tree)

	nodes, edges := ast.Build(tree, ids, ast.Options{})

	require.Len(t, nodes, 3)
	assert.Equal(t, "block", nodes[0].Kind)
	require.Len(t, edges, 2)

	commentID := ids.MustIDFor(parsetreetest.Build(comment))
	xID := ids.MustIDFor(parsetreetest.Build(x))
	rootID := ids.MustIDFor(tree)

	seen := map[identity.NodeID]identity.NodeID{}
	for _, e := range edges {
		seen[e.Target] = e.Source
	}
	assert.Equal(t, rootID, seen[commentID])
	assert.Equal(t, rootID, seen[xID])
}

func TestBuild_BlacklistMinimizeSplicesAroundRemovedNode(t *testing.T) {
	root, comment, x := buildSmallTree()
	tree := parsetreetest.Build(root)
	ids := identity.Build(tree)

	blacklist := catalog.NewSet("comment")
	nodes, edges := ast.Build(tree, ids, ast.Options{Blacklist: blacklist})

	for _, n := range nodes {
		assert.NotEqual(t, "comment", n.Kind)
	}

	rootID := ids.MustIDFor(tree)
	xID := ids.MustIDFor(parsetreetest.Build(x))
	commentID := ids.MustIDFor(parsetreetest.Build(comment))

	var foundDirectEdge bool
	for _, e := range edges {
		assert.NotEqual(t, commentID, e.Source)
		assert.NotEqual(t, commentID, e.Target)
		if e.Source == rootID && e.Target == xID {
			foundDirectEdge = true
		}
	}
	assert.True(t, foundDirectEdge, "removing comment must reconnect root directly to x")
}

func TestBuild_CollapseMergesIdenticalLeaves(t *testing.T) {
	x1 := parsetreetest.New("identifier", 1, 1, "x")
	x2 := parsetreetest.New("identifier", 2, 2, "x")
	root := parsetreetest.New("block", 1, 2, "").Children(x1, x2)
	tree := parsetreetest.Build(root)
	ids := identity.Build(tree)

	nodes, edges := ast.Build(tree, ids, ast.Options{Collapse: true})

	var leafCount int
	for _, n := range nodes {
		if n.Label == "x" {
			leafCount++
		}
	}
	assert.Equal(t, 1, leafCount, "collapse must merge both x leaves into one representative")
	assert.Len(t, edges, 1, "both parent->child edges should reroute to the single representative")
}
