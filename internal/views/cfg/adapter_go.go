package cfg

import "github.com/dusk-indust/codegraph/internal/parsetree"

// goAdapter is the Go LanguageAdapter (§4.6 "per-language front-end").
// Go has no try/catch (panic/recover aren't syntactic constructs) and no
// do-while, so IsTry and IsDoWhile always report false and TryParts is
// never reached by the dispatch in cfg.go.
type goAdapter struct{}

// Go returns the Go LanguageAdapter.
func Go() LanguageAdapter { return goAdapter{} }

func (goAdapter) IsIf(kind string) bool     { return kind == "if_statement" }
func (goAdapter) IsSwitch(kind string) bool { return kind == "switch_statement" || kind == "type_switch_statement" }
func (goAdapter) IsTry(kind string) bool    { return false }
func (goAdapter) IsGoto(kind string) bool   { return kind == "goto_statement" }
func (goAdapter) IsLabeled(kind string) bool {
	return kind == "labeled_statement"
}

func (goAdapter) Condition(n parsetree.Node) parsetree.Node {
	return n.ChildByFieldName("condition")
}

func (goAdapter) Then(n parsetree.Node) parsetree.Node {
	return n.ChildByFieldName("consequence")
}

func (goAdapter) Else(n parsetree.Node) parsetree.Node {
	return n.ChildByFieldName("alternative")
}

func (goAdapter) IsDoWhile(parsetree.Node) bool { return false }

func (goAdapter) ForParts(n parsetree.Node) (init, cond, update, body parsetree.Node) {
	body = n.ChildByFieldName("body")
	for i := 0; i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c == nil {
			continue
		}
		if c.Kind() == "for_clause" {
			init = c.ChildByFieldName("initializer")
			cond = c.ChildByFieldName("condition")
			update = c.ChildByFieldName("update")
			return
		}
		if c.Kind() == "range_clause" {
			init = c
			return
		}
	}
	if cond = n.ChildByFieldName("condition"); cond != nil {
		return
	}
	return
}

func (goAdapter) SwitchCases(n parsetree.Node) []CaseClause {
	var out []CaseClause
	for i := 0; i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "expression_case", "type_case", "communication_case":
			out = append(out, CaseClause{Value: caseValueText(c), Body: c})
		case "default_case":
			out = append(out, CaseClause{IsDefault: true, Body: c})
		}
	}
	return out
}

func (goAdapter) GotoLabel(n parsetree.Node) string {
	return labelText(n)
}

func (goAdapter) LabelOf(n parsetree.Node) (string, parsetree.Node) {
	var name string
	var target parsetree.Node
	if n.NamedChildCount() > 0 {
		name = string(n.NamedChild(0).Text())
	}
	if n.NamedChildCount() > 1 {
		target = n.NamedChild(1)
	}
	return name, target
}

func (goAdapter) TryParts(parsetree.Node) (parsetree.Node, []CatchClause, parsetree.Node) {
	return nil, nil, nil
}

func (goAdapter) FuncName(def parsetree.Node) parsetree.Node {
	return def.ChildByFieldName("name")
}

// caseValueText returns a switch clause's case expression text, falling
// back to the first non-statement named child (the value list) when no
// "value" field is exposed by the grammar.
func caseValueText(clause parsetree.Node) string {
	if v := clause.ChildByFieldName("value"); v != nil {
		return string(v.Text())
	}
	if clause.NamedChildCount() > 0 {
		return string(clause.NamedChild(0).Text())
	}
	return ""
}

// labelText returns a goto statement's target label name, preferring the
// "label" field and falling back to the first named child.
func labelText(n parsetree.Node) string {
	if l := n.ChildByFieldName("label"); l != nil {
		return string(l.Text())
	}
	if n.NamedChildCount() > 0 {
		return string(n.NamedChild(0).Text())
	}
	return ""
}
