package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codegraph/internal/engine"
	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/parsetree"
	"github.com/dusk-indust/codegraph/internal/parsetree/parsetreetest"
	"github.com/dusk-indust/codegraph/internal/schema"
)

// fakeTree adapts a hand-built parsetreetest.Node to parsetree.Tree.
type fakeTree struct{ root parsetree.Node }

func (t fakeTree) RootNode() parsetree.Node { return t.root }
func (t fakeTree) Close()                   {}

// fakeParser ignores source/lang and always returns the same prebuilt tree,
// mirroring the teacher's StubParser-style test doubles (§2 Ambient Stack).
type fakeParser struct{ tree parsetree.Tree }

func (p fakeParser) Parse([]byte, parsetree.Language) (parsetree.Tree, error) { return p.tree, nil }

func buildCallGraphSource() *parsetreetest.Node {
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

	return parsetreetest.New("source_file", 1, 6, "").Children(calleeDef, callerDef)
}

func TestBuild_CFGViewCarriesCallEdges(t *testing.T) {
	root := parsetreetest.Build(buildCallGraphSource())
	parser := fakeParser{tree: fakeTree{root: root}}

	stream, err := engine.Build(context.Background(), parser, nil, parsetree.Go, engine.Options{
		Views: map[schema.View]bool{schema.CFG: true},
	})
	require.NoError(t, err)
	assert.Empty(t, stream.Diagnostics)

	var callEdges int
	for _, e := range stream.Edges {
		if e.Kind == "call" {
			callEdges++
		}
	}
	assert.Equal(t, 1, callEdges, "the single callee() call site should produce exactly one call edge")
}

func TestBuild_NoViewsStillParses(t *testing.T) {
	root := parsetreetest.Build(buildCallGraphSource())
	parser := fakeParser{tree: fakeTree{root: root}}

	stream, err := engine.Build(context.Background(), parser, nil, parsetree.Go, engine.Options{})
	require.NoError(t, err)
	assert.Empty(t, stream.Nodes)
	assert.Empty(t, stream.Edges)
}

func TestBasicBlocks_ReturnsOneBlockPerDisconnectedFunction(t *testing.T) {
	root := parsetreetest.Build(buildCallGraphSource())
	parser := fakeParser{tree: fakeTree{root: root}}

	blocks, err := engine.BasicBlocks(parser, nil, parsetree.Go)
	require.NoError(t, err)
	assert.Len(t, blocks, 2, "callee and caller CFGs are disjoint, so should land in separate blocks")
}

// buildReassignmentSource builds:
//
//	func f() int {
//	    a := 1
//	    if cond {
//	        a = 2
//	    } else {
//	        a = 3
//	    }
//	    return a
//	}
//
// the seed scenario where a declaration is killed on both arms of an
// if/else before the variable is read.
func buildReassignmentSource() (root *parsetreetest.Node, declStmt, assignA2, assignA3, returnStmt *parsetreetest.Node) {
	declLeft := parsetreetest.New("expression_list", 2, 2, "a").AddChild(parsetreetest.New("identifier", 2, 2, "a"))
	declRight := parsetreetest.New("expression_list", 2, 2, "1").AddChild(parsetreetest.New("int_literal", 2, 2, "1"))
	declStmt = parsetreetest.New("short_var_declaration", 2, 2, "a := 1").
		Children(declLeft, declRight).
		SetField("left", declLeft).
		SetField("right", declRight)

	cond := parsetreetest.New("identifier", 3, 3, "cond")

	a2Left := parsetreetest.New("expression_list", 4, 4, "a").AddChild(parsetreetest.New("identifier", 4, 4, "a"))
	a2Right := parsetreetest.New("expression_list", 4, 4, "2").AddChild(parsetreetest.New("int_literal", 4, 4, "2"))
	assignA2 = parsetreetest.New("assignment_statement", 4, 4, "a = 2").
		Children(a2Left, a2Right).
		SetField("left", a2Left).
		SetField("right", a2Right)
	thenBlock := parsetreetest.New("block", 4, 4, "").AddChild(assignA2)

	a3Left := parsetreetest.New("expression_list", 6, 6, "a").AddChild(parsetreetest.New("identifier", 6, 6, "a"))
	a3Right := parsetreetest.New("expression_list", 6, 6, "3").AddChild(parsetreetest.New("int_literal", 6, 6, "3"))
	assignA3 = parsetreetest.New("assignment_statement", 6, 6, "a = 3").
		Children(a3Left, a3Right).
		SetField("left", a3Left).
		SetField("right", a3Right)
	elseBlock := parsetreetest.New("block", 6, 6, "").AddChild(assignA3)

	ifStmt := parsetreetest.New("if_statement", 3, 7, "if cond { a = 2 } else { a = 3 }").
		Children(cond, thenBlock, elseBlock).
		SetField("condition", cond).
		SetField("consequence", thenBlock).
		SetField("alternative", elseBlock)

	returnStmt = parsetreetest.New("return_statement", 8, 8, "return a").
		AddChild(parsetreetest.New("identifier", 8, 8, "a"))

	funcName := parsetreetest.New("identifier", 1, 1, "f")
	body := parsetreetest.New("block", 1, 9, "").Children(declStmt, ifStmt, returnStmt)
	funcDef := parsetreetest.New("function_declaration", 1, 9, "func f() int { ... }").
		Children(funcName, body).
		SetField("name", funcName).
		SetField("body", body)

	root = parsetreetest.New("source_file", 1, 9, "").AddChild(funcDef)
	return
}

func reachesEdgesInto(stream schema.Stream, target identity.NodeID) []identity.NodeID {
	var sources []identity.NodeID
	for _, e := range stream.Edges {
		if e.View == schema.DFG && e.Kind == "reaches" && e.Target == target {
			sources = append(sources, e.Source)
		}
	}
	return sources
}

func TestBuild_DFGReassignmentAcrossIfElseKillsOriginalDeclaration(t *testing.T) {
	rootNode, declStmt, assignA2, assignA3, returnStmt := buildReassignmentSource()
	root := parsetreetest.Build(rootNode)
	ids := identity.Build(root)
	parser := fakeParser{tree: fakeTree{root: root}}

	stream, err := engine.Build(context.Background(), parser, nil, parsetree.Go, engine.Options{
		Views: map[schema.View]bool{schema.DFG: true},
	})
	require.NoError(t, err)

	declID := ids.MustIDFor(parsetreetest.Build(declStmt))
	assignA2ID := ids.MustIDFor(parsetreetest.Build(assignA2))
	assignA3ID := ids.MustIDFor(parsetreetest.Build(assignA3))
	returnID := ids.MustIDFor(parsetreetest.Build(returnStmt))

	sources := reachesEdgesInto(stream, returnID)
	assert.ElementsMatch(t, []identity.NodeID{assignA2ID, assignA3ID}, sources,
		"return a must be reached by both reassignments, and only by them")
	assert.NotContains(t, sources, declID, "the original a := 1 must be killed on both arms")
}

// buildLoopReassignmentSource builds:
//
//	func g() {
//	    i := 0
//	    s := 0
//	    for i {
//	        s = s +
//	            i
//	        i = i + 1
//	    }
//	    return s
//	}
//
// (the right-hand i sits on its own line because fake nodes carry rows
// only, and the target s and the read i must not share one span), the seed
// scenario where a loop body reassigns its own loop variable (so
// the reassignment, not the initializer, must reach the header on the
// back edge) and reassigns another variable that must still reach a read
// after the loop exits.
func buildLoopReassignmentSource() (root *parsetreetest.Node, declI, declS, header, assignS, assignI, returnStmt *parsetreetest.Node) {
	iLeft := parsetreetest.New("expression_list", 2, 2, "i").AddChild(parsetreetest.New("identifier", 2, 2, "i"))
	iRight := parsetreetest.New("expression_list", 2, 2, "0").AddChild(parsetreetest.New("int_literal", 2, 2, "0"))
	declI = parsetreetest.New("short_var_declaration", 2, 2, "i := 0").
		Children(iLeft, iRight).
		SetField("left", iLeft).
		SetField("right", iRight)

	sLeft := parsetreetest.New("expression_list", 3, 3, "s").AddChild(parsetreetest.New("identifier", 3, 3, "s"))
	sRight := parsetreetest.New("expression_list", 3, 3, "0").AddChild(parsetreetest.New("int_literal", 3, 3, "0"))
	declS = parsetreetest.New("short_var_declaration", 3, 3, "s := 0").
		Children(sLeft, sRight).
		SetField("left", sLeft).
		SetField("right", sRight)

	cond := parsetreetest.New("identifier", 4, 4, "i")

	assignSLeft := parsetreetest.New("expression_list", 5, 5, "s").AddChild(parsetreetest.New("identifier", 5, 5, "s"))
	assignSRight := parsetreetest.New("expression_list", 5, 6, "s+i").AddChild(parsetreetest.New("identifier", 6, 6, "i"))
	assignS = parsetreetest.New("assignment_statement", 5, 6, "s = s + i").
		Children(assignSLeft, assignSRight).
		SetField("left", assignSLeft).
		SetField("right", assignSRight)

	assignILeft := parsetreetest.New("expression_list", 7, 7, "i").AddChild(parsetreetest.New("identifier", 7, 7, "i"))
	assignIRight := parsetreetest.New("expression_list", 7, 7, "i+1").AddChild(parsetreetest.New("int_literal", 7, 7, "1"))
	assignI = parsetreetest.New("assignment_statement", 7, 7, "i = i + 1").
		Children(assignILeft, assignIRight).
		SetField("left", assignILeft).
		SetField("right", assignIRight)

	loopBody := parsetreetest.New("block", 5, 7, "").Children(assignS, assignI)
	header = parsetreetest.New("for_statement", 4, 8, "for i { ... }").
		Children(cond, loopBody).
		SetField("condition", cond).
		SetField("body", loopBody)

	returnStmt = parsetreetest.New("return_statement", 9, 9, "return s").
		AddChild(parsetreetest.New("identifier", 9, 9, "s"))

	funcName := parsetreetest.New("identifier", 1, 1, "g")
	body := parsetreetest.New("block", 1, 10, "").Children(declI, declS, header, returnStmt)
	funcDef := parsetreetest.New("function_declaration", 1, 10, "func g() { ... }").
		Children(funcName, body).
		SetField("name", funcName).
		SetField("body", body)

	root = parsetreetest.New("source_file", 1, 10, "").AddChild(funcDef)
	return
}

func TestBuild_DFGLoopReassignmentReachesHeaderAndPostLoopRead(t *testing.T) {
	rootNode, _, _, header, assignS, assignI, returnStmt := buildLoopReassignmentSource()
	root := parsetreetest.Build(rootNode)
	ids := identity.Build(root)
	parser := fakeParser{tree: fakeTree{root: root}}

	stream, err := engine.Build(context.Background(), parser, nil, parsetree.Go, engine.Options{
		Views: map[schema.View]bool{schema.DFG: true},
	})
	require.NoError(t, err)

	headerID := ids.MustIDFor(parsetreetest.Build(header))
	assignSID := ids.MustIDFor(parsetreetest.Build(assignS))
	assignIID := ids.MustIDFor(parsetreetest.Build(assignI))
	returnID := ids.MustIDFor(parsetreetest.Build(returnStmt))

	assert.Contains(t, reachesEdgesInto(stream, headerID), assignIID,
		"i = i + 1 must redefine i and reach the header on the loop-back edge")
	assert.Contains(t, reachesEdgesInto(stream, returnID), assignSID,
		"s = s + i must redefine s and reach the post-loop read")
}
