package catalog

import "github.com/dusk-indust/codegraph/internal/parsetree"

func init() {
	register(parsetree.Python, &Table{
		StatementKinds: NewSet(
			"expression_statement", "assignment", "augmented_assignment", "import_statement", "import_from_statement",
			"if_statement", "while_statement", "for_statement", "try_statement", "with_statement",
			"break_statement", "continue_statement", "return_statement", "raise_statement", "pass_statement",
			"function_definition", "class_definition", "global_statement", "nonlocal_statement", "delete_statement",
		),
		NonControlStmt: NewSet(
			"expression_statement", "assignment", "augmented_assignment", "import_statement", "import_from_statement",
			"pass_statement", "global_statement", "nonlocal_statement", "delete_statement",
		),
		ControlStmt: NewSet(
			"if_statement", "while_statement", "for_statement", "try_statement", "with_statement",
			"break_statement", "continue_statement", "return_statement", "raise_statement",
		),
		LoopStmt: NewSet("while_statement", "for_statement"),
		JumpStmt: NewSet("break_statement", "continue_statement", "return_statement"),
		BlockHolders: NewSet(
			"block", "module",
		),
		DefinitionKinds: NewSet(
			"function_definition", "class_definition",
		),
		ScopeIntroducing: NewSet(
			"module", "block", "function_definition", "class_definition",
			"lambda", "for_statement", "with_statement", "except_clause",
		),
		DeclaratorKinds: NewSet(
			"parameters", "lambda_parameters", "default_parameter", "typed_parameter", "typed_default_parameter",
		),
		// assignment (`x = 1`) and augmented_assignment (`x += 1`) both
		// name their target(s) via a "left" field; a multi-target
		// assignment (`a, b = 1, 2`) wraps that field in pattern_list.
		AssignmentKinds: map[string]string{
			"assignment":           "left",
			"augmented_assignment": "left",
		},
		AssignmentListKinds: NewSet("pattern_list"),
		TypeChildKinds:      NewSet("type"),
		CallExpressionKinds: NewSet("call"),
		MethodDeclarationParents: NewSet(
			"function_definition",
		),
		FunctionLikeKinds: NewSet(
			"function_definition", "lambda",
		),
	})
}
