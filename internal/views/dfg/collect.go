package dfg

import (
	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/parsetree"
	"github.com/dusk-indust/codegraph/internal/symbols"
)

// CollectDefsUses attributes every declaration and resolved use the Symbol
// Extractor recorded to the nearest enclosing CFG node (statement-level
// granularity, §4.7 "A definition is a (variable-name, defining-CFG-node)
// pair"). cfgNodeIDs is the set of NodeIDs cfg.Build emitted nodes for;
// undef reports, per CFG node, which of its definitions came from a
// declarator with no initializer (Open Question Q1).
func CollectDefsUses(root parsetree.Node, ids *identity.Table, cfgNodeIDs map[identity.NodeID]bool, tables *symbols.Tables) (defsOf, usesOf map[identity.NodeID][]string, undef map[identity.NodeID]map[string]bool) {
	defsOf = map[identity.NodeID][]string{}
	usesOf = map[identity.NodeID][]string{}
	undef = map[identity.NodeID]map[string]bool{}

	var walk func(n parsetree.Node, ctx identity.NodeID, have bool)
	walk = func(n parsetree.Node, ctx identity.NodeID, have bool) {
		if n == nil || !n.Named() {
			return
		}
		id, ok := ids.IDFor(n)
		if !ok {
			return
		}
		if cfgNodeIDs[id] {
			ctx, have = id, true
		}
		if have {
			if name, isDecl := tables.Declaration[id]; isDecl {
				defsOf[ctx] = append(defsOf[ctx], name)
				if tables.Uninitialized[id] {
					if undef[ctx] == nil {
						undef[ctx] = map[string]bool{}
					}
					undef[ctx][name] = true
				}
			} else if _, isUse := tables.DeclarationMap[id]; isUse {
				usesOf[ctx] = append(usesOf[ctx], tables.Label[id])
			}
		}
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i), ctx, have)
		}
	}
	walk(root, 0, false)
	return
}
