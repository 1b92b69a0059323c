package cfg

import "github.com/dusk-indust/codegraph/internal/parsetree"

// tsAdapter is the TypeScript LanguageAdapter.
type tsAdapter struct{}

// TypeScript returns the TypeScript LanguageAdapter.
func TypeScript() LanguageAdapter { return tsAdapter{} }

func (tsAdapter) IsIf(kind string) bool     { return kind == "if_statement" }
func (tsAdapter) IsSwitch(kind string) bool { return kind == "switch_statement" }
func (tsAdapter) IsTry(kind string) bool    { return kind == "try_statement" }
func (tsAdapter) IsGoto(kind string) bool   { return false }
func (tsAdapter) IsLabeled(kind string) bool {
	return kind == "labeled_statement"
}

func (tsAdapter) Condition(n parsetree.Node) parsetree.Node {
	return n.ChildByFieldName("condition")
}

func (tsAdapter) Then(n parsetree.Node) parsetree.Node {
	return n.ChildByFieldName("consequence")
}

func (tsAdapter) Else(n parsetree.Node) parsetree.Node {
	return n.ChildByFieldName("alternative")
}

func (tsAdapter) IsDoWhile(n parsetree.Node) bool { return n.Kind() == "do_statement" }

func (tsAdapter) ForParts(n parsetree.Node) (init, cond, update, body parsetree.Node) {
	if n.Kind() == "for_in_statement" {
		init = n.ChildByFieldName("left")
		body = n.ChildByFieldName("body")
		return
	}
	init = n.ChildByFieldName("initializer")
	cond = n.ChildByFieldName("condition")
	update = n.ChildByFieldName("increment")
	body = n.ChildByFieldName("body")
	return
}

func (tsAdapter) SwitchCases(n parsetree.Node) []CaseClause {
	body := n.ChildByFieldName("body")
	if body == nil {
		body = n
	}
	var out []CaseClause
	for i := 0; i < body.NamedChildCount(); i++ {
		c := body.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "switch_case":
			out = append(out, CaseClause{Value: caseValueText(c), Body: c})
		case "switch_default":
			out = append(out, CaseClause{IsDefault: true, Body: c})
		}
	}
	return out
}

func (tsAdapter) GotoLabel(parsetree.Node) string { return "" }

func (tsAdapter) LabelOf(n parsetree.Node) (string, parsetree.Node) {
	name := ""
	if l := n.ChildByFieldName("label"); l != nil {
		name = string(l.Text())
	}
	return name, n.ChildByFieldName("body")
}

func (tsAdapter) TryParts(n parsetree.Node) (parsetree.Node, []CatchClause, parsetree.Node) {
	body := n.ChildByFieldName("body")
	finally := n.ChildByFieldName("finalizer")

	var catches []CatchClause
	if h := n.ChildByFieldName("handler"); h != nil {
		param := ""
		if p := h.ChildByFieldName("parameter"); p != nil {
			param = string(p.Text())
		}
		catches = append(catches, CatchClause{Param: param, Body: h.ChildByFieldName("body")})
	}
	return body, catches, finally
}

func (tsAdapter) FuncName(def parsetree.Node) parsetree.Node {
	return def.ChildByFieldName("name")
}
