package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codegraph/internal/catalog"
	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/parsetree"
	"github.com/dusk-indust/codegraph/internal/parsetree/parsetreetest"
	"github.com/dusk-indust/codegraph/internal/schema"
	"github.com/dusk-indust/codegraph/internal/symbols"
	"github.com/dusk-indust/codegraph/internal/views/cfg"
)

// buildTwoFuncTree builds:
//
//	func callee() { return }
//	func caller() { callee(); return }
//
// with caller's body calling callee by name, so its call site should resolve
// to callee's own CFG entry node (§4.6 direct intra-file call).
func buildTwoFuncTree() (root *parsetreetest.Node, callerBodyFirstStmt *parsetreetest.Node) {
	calleeName := parsetreetest.New("identifier", 1, 1, "callee")
	calleeReturn := parsetreetest.New("return_statement", 2, 2, "return")
	calleeBody := parsetreetest.New("block", 1, 2, "").AddChild(calleeReturn)
	calleeDef := parsetreetest.New("function_declaration", 1, 2, "func callee() { return }").
		Children(calleeName, calleeBody).
		SetField("name", calleeName).
		SetField("body", calleeBody)

	callerName := parsetreetest.New("identifier", 4, 4, "caller")
	callFuncName := parsetreetest.New("identifier", 5, 5, "callee")
	callExpr := parsetreetest.New("call_expression", 5, 5, "callee()").
		AddChild(callFuncName).
		SetField("function", callFuncName)
	callStmt := parsetreetest.New("expression_statement", 5, 5, "callee()").AddChild(callExpr)
	callerReturn := parsetreetest.New("return_statement", 6, 6, "return")
	callerBody := parsetreetest.New("block", 4, 6, "").Children(callStmt, callerReturn)
	callerDef := parsetreetest.New("function_declaration", 4, 6, "func caller() { callee(); return }").
		Children(callerName, callerBody).
		SetField("name", callerName).
		SetField("body", callerBody)

	root = parsetreetest.New("source_file", 1, 6, "").Children(calleeDef, callerDef)
	return root, callStmt
}

func TestBuild_DirectCallEdge(t *testing.T) {
	root, callStmt := buildTwoFuncTree()
	tree := parsetreetest.Build(root)
	ids := identity.Build(tree)
	cat, ok := catalog.For(parsetree.Go)
	require.True(t, ok)
	tables := symbols.Extract(tree, ids, cat)

	g := cfg.Build(tree, ids, cat, cfg.Go(), tables)

	callStmtID := ids.MustIDFor(parsetreetest.Build(callStmt))

	var found *schema.Edge
	for i := range g.Edges {
		if g.Edges[i].Source == callStmtID && g.Edges[i].Kind == string(cfg.Call) {
			found = &g.Edges[i]
			break
		}
	}
	require.NotNil(t, found, "expected a call edge from the call-site statement")

	var entryLabel string
	for _, n := range g.Nodes {
		if n.ID == found.Target {
			entryLabel = n.Kind
		}
	}
	assert.Equal(t, "entry", entryLabel, "direct in-file call should target the callee's own entry node, not a stub")
}

func TestBuild_ExternalCallEdgeIsStub(t *testing.T) {
	callFuncName := parsetreetest.New("identifier", 1, 1, "fmt.Println")
	callExpr := parsetreetest.New("call_expression", 1, 1, "fmt.Println()").
		AddChild(callFuncName).
		SetField("function", callFuncName)
	callStmt := parsetreetest.New("expression_statement", 1, 1, "fmt.Println()").AddChild(callExpr)
	body := parsetreetest.New("block", 1, 1, "").AddChild(callStmt)
	name := parsetreetest.New("identifier", 1, 1, "main")
	def := parsetreetest.New("function_declaration", 1, 1, "func main() { fmt.Println() }").
		Children(name, body).
		SetField("name", name).
		SetField("body", body)
	root := parsetreetest.New("source_file", 1, 1, "").AddChild(def)

	tree := parsetreetest.Build(root)
	ids := identity.Build(tree)
	cat, _ := catalog.For(parsetree.Go)
	tables := symbols.Extract(tree, ids, cat)

	g := cfg.Build(tree, ids, cat, cfg.Go(), tables)

	callStmtID := ids.MustIDFor(parsetreetest.Build(callStmt))

	var found *schema.Edge
	for i := range g.Edges {
		if g.Edges[i].Source == callStmtID && g.Edges[i].Kind == string(cfg.Call) {
			found = &g.Edges[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "external", found.Extra["resolution"])

	var stubKind string
	for _, n := range g.Nodes {
		if n.ID == found.Target {
			stubKind = n.Kind
		}
	}
	assert.Equal(t, "external_call", stubKind)
}

func TestBasicBlocks_PartitionsDisconnectedFunctions(t *testing.T) {
	root, _ := buildTwoFuncTree()
	tree := parsetreetest.Build(root)
	ids := identity.Build(tree)
	cat, _ := catalog.For(parsetree.Go)
	tables := symbols.Extract(tree, ids, cat)

	g := cfg.Build(tree, ids, cat, cfg.Go(), tables)
	blocks := cfg.BasicBlocks(g)

	require.NotEmpty(t, blocks)
	total := 0
	for _, b := range blocks {
		total += len(b)
	}
	assert.Equal(t, len(g.Nodes), total, "every node must belong to exactly one block")
}
