package symbols_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codegraph/internal/catalog"
	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/parsetree"
	"github.com/dusk-indust/codegraph/internal/parsetree/parsetreetest"
	"github.com/dusk-indust/codegraph/internal/symbols"
)

// buildShadowingTree constructs (roughly) S5's shape:
//
//	outer: var_spec x=1
//	block {
//	  var_spec x=2
//	  call_expression use(     // inner use, should resolve to inner decl
//	    x)
//	}
//	call_expression use(        // outer use, should resolve to outer decl
//	  x)
//
// Each call's argument sits on its own line: fake nodes carry rows only, so
// two identifiers on one line would share one span and one NodeID.
func buildShadowingTree() (root *parsetreetest.Node, xDeclOuter, xDeclInner, xUseInner, xUseOuter *parsetreetest.Node) {
	xDeclOuter = parsetreetest.New("identifier", 1, 1, "x")
	varOuter := parsetreetest.New("var_spec", 1, 1, "x = 1").AddChild(xDeclOuter)

	xDeclInner = parsetreetest.New("identifier", 3, 3, "x")
	varInner := parsetreetest.New("var_spec", 3, 3, "x = 2").AddChild(xDeclInner)

	funcInner := parsetreetest.New("identifier", 4, 4, "use")
	xUseInner = parsetreetest.New("identifier", 5, 5, "x")
	callInner := parsetreetest.New("call_expression", 4, 5, "use(x)").
		Children(funcInner, xUseInner).
		SetField("function", funcInner)

	block := parsetreetest.New("block", 2, 5, "").Children(varInner, callInner)

	funcOuter := parsetreetest.New("identifier", 6, 6, "use")
	xUseOuter = parsetreetest.New("identifier", 7, 7, "x")
	callOuter := parsetreetest.New("call_expression", 6, 7, "use(x)").
		Children(funcOuter, xUseOuter).
		SetField("function", funcOuter)

	root = parsetreetest.New("source_file", 1, 7, "").Children(varOuter, block, callOuter)
	return
}

func TestExtract_Shadowing(t *testing.T) {
	root, xDeclOuter, xDeclInner, xUseInner, xUseOuter := buildShadowingTree()
	tree := parsetreetest.Build(root)
	ids := identity.Build(tree)
	cat, ok := catalog.For(parsetree.Go)
	require.True(t, ok)

	tables := symbols.Extract(tree, ids, cat)

	declOuterID := ids.MustIDFor(parsetreetest.Build(xDeclOuter))
	declInnerID := ids.MustIDFor(parsetreetest.Build(xDeclInner))
	useInnerID := ids.MustIDFor(parsetreetest.Build(xUseInner))
	useOuterID := ids.MustIDFor(parsetreetest.Build(xUseOuter))

	assert.Equal(t, "x", tables.Declaration[declOuterID])
	assert.Equal(t, "x", tables.Declaration[declInnerID])

	require.Contains(t, tables.DeclarationMap, useInnerID)
	assert.Equal(t, declInnerID, tables.DeclarationMap[useInnerID], "inner use must resolve to inner decl")

	require.Contains(t, tables.DeclarationMap, useOuterID)
	assert.Equal(t, declOuterID, tables.DeclarationMap[useOuterID], "outer use must resolve to outer decl once inner scope has closed")
}

func TestExtract_ScopeMapIsPrefixInvariant(t *testing.T) {
	root, xDeclOuter, xDeclInner, xUseInner, _ := buildShadowingTree()
	tree := parsetreetest.Build(root)
	ids := identity.Build(tree)
	cat, _ := catalog.For(parsetree.Go)
	tables := symbols.Extract(tree, ids, cat)

	declInnerID := ids.MustIDFor(parsetreetest.Build(xDeclInner))
	useInnerID := ids.MustIDFor(parsetreetest.Build(xUseInner))
	declOuterID := ids.MustIDFor(parsetreetest.Build(xDeclOuter))

	declScope := tables.ScopeMap[declInnerID]
	useScope := tables.ScopeMap[useInnerID]
	require.LessOrEqual(t, len(declScope), len(useScope))
	for i, s := range declScope {
		assert.Equal(t, s, useScope[i])
	}

	// The outer declaration's scope must be strictly shorter (it lives in
	// the enclosing scope, not the block's).
	assert.Less(t, len(tables.ScopeMap[declOuterID]), len(declScope))
}

func TestExtract_MethodsAndCallsInvariant(t *testing.T) {
	root, _, _, xUseInner, _ := buildShadowingTree()
	tree := parsetreetest.Build(root)
	ids := identity.Build(tree)
	cat, _ := catalog.For(parsetree.Go)
	tables := symbols.Extract(tree, ids, cat)

	useInnerID := ids.MustIDFor(parsetreetest.Build(xUseInner))
	assert.NotContains(t, tables.Calls, useInnerID, "a plain argument identifier is not itself a call")

	for id := range tables.Calls {
		assert.True(t, tables.Methods[id], "I4: calls must be a subset of methods")
	}
}

func TestExtract_UnresolvedUseIsNotAnError(t *testing.T) {
	freeUse := parsetreetest.New("identifier", 1, 1, "undeclaredGlobal")
	stmt := parsetreetest.New("expression_statement", 1, 1, "undeclaredGlobal").AddChild(freeUse)
	root := parsetreetest.New("source_file", 1, 1, "").AddChild(stmt)
	tree := parsetreetest.Build(root)
	ids := identity.Build(tree)
	cat, _ := catalog.For(parsetree.Go)

	tables := symbols.Extract(tree, ids, cat)

	useID := ids.MustIDFor(parsetreetest.Build(freeUse))
	_, resolved := tables.DeclarationMap[useID]
	assert.False(t, resolved)
	assert.Equal(t, "undeclaredGlobal", tables.Label[useID])
}
