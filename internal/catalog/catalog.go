// Package catalog implements the Language Node Catalog (C3): a per-language,
// purely-data classification of parse-tree node kinds into the statement/
// control/loop/block/definition/scope families the rest of the core
// dispatches on. Adding a language is a matter of adding a Table here plus
// a cfg.LanguageAdapter (§9 "classification lives in the catalog as data,
// not behavior").
package catalog

import "github.com/dusk-indust/codegraph/internal/parsetree"

// Set is a membership table over grammar kind strings.
type Set map[string]bool

// NewSet builds a Set from a list of kind strings.
func NewSet(kinds ...string) Set {
	s := make(Set, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

// Has reports whether kind is a member, nil-safe.
func (s Set) Has(kind string) bool {
	if s == nil {
		return false
	}
	return s[kind]
}

// Table is the static per-language classification described in §4.3.
type Table struct {
	// StatementKinds is every kind that counts as a statement.
	StatementKinds Set
	// NonControlStmt covers plain assignments, declarations, expression
	// statements.
	NonControlStmt Set
	// ControlStmt covers if/switch/loops/jumps/returns/try-throw/lock.
	ControlStmt Set
	// LoopStmt covers while/do-while/for/range-for.
	LoopStmt Set
	// JumpStmt covers break/continue/return/goto.
	JumpStmt Set
	// BlockHolders are kinds whose children form a statement block.
	BlockHolders Set
	// DefinitionKinds covers method/function/class/constructor/field decls.
	DefinitionKinds Set
	// ScopeIntroducing is a superset of BlockHolders plus control heads
	// that bind loop/catch variables.
	ScopeIntroducing Set
	// DeclaratorKinds are parent kinds that make a leaf identifier child a
	// *declaration* rather than a use (§4.4 "Declaration detection").
	DeclaratorKinds Set
	// AssignmentKinds maps an assignment-like node kind (plain or
	// augmented assignment, short-var declaration) to the field name
	// holding its left-hand-side target(s). Unlike DeclaratorKinds, the
	// target isn't necessarily a fresh binding — but it still introduces
	// a definition distinct from an ordinary use (§4.7 "each assignment
	// ... introduces one [definition]").
	AssignmentKinds map[string]string
	// AssignmentListKinds are wrapper kinds that group one or more
	// AssignmentKinds targets into a list node in place of a bare
	// identifier child, for grammars that always wrap the left-hand side
	// even for a single target (Go's expression_list in `x := f()`).
	AssignmentListKinds Set
	// TypeChildKinds are kinds of a sibling/child node that, when present
	// on a declarator, supplies data_type (§4.4).
	TypeChildKinds Set
	// CallExpressionKinds are kinds whose "function" field names the
	// callee of a call site (§4.4 method identification).
	CallExpressionKinds Set
	// MethodDeclarationParents are parent kinds that mark their "name"
	// child identifier as belonging to `methods` (§4.4).
	MethodDeclarationParents Set
	// FunctionLikeKinds are the kinds that carry an executable body and
	// therefore root one CFG/DFG (§4.6 "For each
	// function/method declaration the builder creates a synthetic entry
	// and exit node"). It also names anonymous function kinds (closures,
	// lambdas, function literals) that are not in DefinitionKinds.
	// Class/struct/interface/trait containers are in
	// DefinitionKinds but not here: the CFG builder recurses into them
	// looking for nested FunctionLikeKinds rather than building a CFG for
	// the container itself.
	FunctionLikeKinds Set
}

var registry = map[parsetree.Language]*Table{}

func register(lang parsetree.Language, t *Table) {
	registry[lang] = t
}

// For returns the catalog Table for lang, and whether the language is
// supported.
func For(lang parsetree.Language) (*Table, bool) {
	t, ok := registry[lang]
	return t, ok
}
