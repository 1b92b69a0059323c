package cfg

import "github.com/dusk-indust/codegraph/internal/parsetree"

// pyAdapter is the Python LanguageAdapter. Python has no switch/goto, so
// IsSwitch/IsGoto always report false to the dispatch, and try/except/finally maps
// onto the generic try machinery.
type pyAdapter struct{}

// Python returns the Python LanguageAdapter.
func Python() LanguageAdapter { return pyAdapter{} }

func (pyAdapter) IsIf(kind string) bool      { return kind == "if_statement" }
func (pyAdapter) IsSwitch(kind string) bool  { return false }
func (pyAdapter) IsTry(kind string) bool     { return kind == "try_statement" }
func (pyAdapter) IsGoto(kind string) bool    { return false }
func (pyAdapter) IsLabeled(kind string) bool { return false }

func (pyAdapter) Condition(n parsetree.Node) parsetree.Node {
	return n.ChildByFieldName("condition")
}

func (pyAdapter) Then(n parsetree.Node) parsetree.Node {
	return n.ChildByFieldName("consequence")
}

func (pyAdapter) Else(n parsetree.Node) parsetree.Node {
	if e := n.ChildByFieldName("alternative"); e != nil {
		return e
	}
	// elif chains are nested if_statement children; find a trailing
	// elif_clause / else_clause among named children.
	for i := 0; i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c == nil {
			continue
		}
		if c.Kind() == "elif_clause" || c.Kind() == "else_clause" {
			return c
		}
	}
	return nil
}

func (pyAdapter) IsDoWhile(parsetree.Node) bool { return false }

func (pyAdapter) ForParts(n parsetree.Node) (init, cond, update, body parsetree.Node) {
	if n.Kind() == "for_statement" {
		init = n.ChildByFieldName("left")
		body = n.ChildByFieldName("body")
		return
	}
	cond = n.ChildByFieldName("condition")
	body = n.ChildByFieldName("body")
	return
}

func (pyAdapter) SwitchCases(parsetree.Node) []CaseClause { return nil }

func (pyAdapter) GotoLabel(parsetree.Node) string { return "" }

func (pyAdapter) LabelOf(n parsetree.Node) (string, parsetree.Node) { return "", nil }

func (pyAdapter) TryParts(n parsetree.Node) (parsetree.Node, []CatchClause, parsetree.Node) {
	var body, finally parsetree.Node
	var catches []CatchClause
	for i := 0; i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "block":
			if body == nil {
				body = c
			}
		case "except_clause":
			param := ""
			if p := c.ChildByFieldName("value"); p != nil {
				param = string(p.Text())
			}
			catches = append(catches, CatchClause{Param: param, Body: exceptBody(c)})
		case "finally_clause":
			finally = exceptBody(c)
		}
	}
	return body, catches, finally
}

// exceptBody returns an except/finally clause's trailing block, its last
// named child.
func exceptBody(clause parsetree.Node) parsetree.Node {
	n := clause.NamedChildCount()
	if n == 0 {
		return nil
	}
	return clause.NamedChild(n - 1)
}

func (pyAdapter) FuncName(def parsetree.Node) parsetree.Node {
	if def.Kind() == "lambda" {
		return nil
	}
	return def.ChildByFieldName("name")
}
