package cfg

import "github.com/dusk-indust/codegraph/internal/parsetree"

// rustAdapter is the Rust LanguageAdapter. Rust has no goto/labeled
// statements in the sense of C-family gotos (loop labels are a distinct,
// unimplemented extension - see DESIGN.md) and no try/catch statement (the
// `?` operator isn't a syntactic control-flow statement at this grain).
type rustAdapter struct{}

// Rust returns the Rust LanguageAdapter.
func Rust() LanguageAdapter { return rustAdapter{} }

func (rustAdapter) IsIf(kind string) bool      { return kind == "if_expression" }
func (rustAdapter) IsSwitch(kind string) bool  { return kind == "match_expression" }
func (rustAdapter) IsTry(kind string) bool     { return false }
func (rustAdapter) IsGoto(kind string) bool    { return false }
func (rustAdapter) IsLabeled(kind string) bool { return false }

func (rustAdapter) Condition(n parsetree.Node) parsetree.Node {
	return n.ChildByFieldName("condition")
}

func (rustAdapter) Then(n parsetree.Node) parsetree.Node {
	return n.ChildByFieldName("consequence")
}

func (rustAdapter) Else(n parsetree.Node) parsetree.Node {
	return n.ChildByFieldName("alternative")
}

func (rustAdapter) IsDoWhile(parsetree.Node) bool { return false }

func (rustAdapter) ForParts(n parsetree.Node) (init, cond, update, body parsetree.Node) {
	body = n.ChildByFieldName("body")
	switch n.Kind() {
	case "for_expression":
		init = n.ChildByFieldName("pattern")
	case "loop_expression":
		cond = nil // unconditional; body-only infinite loop
	}
	return
}

func (rustAdapter) SwitchCases(n parsetree.Node) []CaseClause {
	block := n.ChildByFieldName("body")
	if block == nil {
		return nil
	}
	var out []CaseClause
	for i := 0; i < block.NamedChildCount(); i++ {
		arm := block.NamedChild(i)
		if arm == nil || arm.Kind() != "match_arm" {
			continue
		}
		pattern := arm.ChildByFieldName("pattern")
		isDefault := pattern != nil && string(pattern.Text()) == "_"
		out = append(out, CaseClause{IsDefault: isDefault, Value: caseValueText(arm), Body: arm})
	}
	return out
}

func (rustAdapter) GotoLabel(parsetree.Node) string { return "" }

func (rustAdapter) LabelOf(n parsetree.Node) (string, parsetree.Node) { return "", nil }

func (rustAdapter) TryParts(parsetree.Node) (parsetree.Node, []CatchClause, parsetree.Node) {
	return nil, nil, nil
}

func (rustAdapter) FuncName(def parsetree.Node) parsetree.Node {
	if def.Kind() == "closure_expression" {
		return nil
	}
	return def.ChildByFieldName("name")
}
