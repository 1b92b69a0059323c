package catalog

import "github.com/dusk-indust/codegraph/internal/parsetree"

func init() {
	register(parsetree.Rust, &Table{
		StatementKinds: NewSet(
			"expression_statement", "let_declaration",
			"if_expression", "while_expression", "loop_expression", "for_expression", "match_expression",
			"break_expression", "continue_expression", "return_expression",
			"function_item", "struct_item", "enum_item", "impl_item", "trait_item",
		),
		NonControlStmt: NewSet(
			"expression_statement", "let_declaration",
		),
		ControlStmt: NewSet(
			"if_expression", "while_expression", "loop_expression", "for_expression", "match_expression",
			"break_expression", "continue_expression", "return_expression",
		),
		LoopStmt: NewSet("while_expression", "loop_expression", "for_expression"),
		JumpStmt: NewSet("break_expression", "continue_expression", "return_expression"),
		BlockHolders: NewSet(
			"block", "source_file", "declaration_list",
		),
		DefinitionKinds: NewSet(
			"function_item", "struct_item", "enum_item", "trait_item", "impl_item",
		),
		ScopeIntroducing: NewSet(
			"source_file", "block", "declaration_list",
			"function_item", "closure_expression",
			"for_expression", "match_arm",
		),
		DeclaratorKinds: NewSet(
			"let_declaration", "parameter", "self_parameter",
		),
		// assignment_expression (`x = 1`) and compound_assignment_expr
		// (`x += 1`) both name their target via a "left" field directly.
		AssignmentKinds: map[string]string{
			"assignment_expression":    "left",
			"compound_assignment_expr": "left",
		},
		TypeChildKinds: NewSet("type_identifier", "primitive_type", "reference_type", "generic_type"),
		CallExpressionKinds: NewSet("call_expression"),
		MethodDeclarationParents: NewSet(
			"function_item",
		),
		FunctionLikeKinds: NewSet(
			"function_item", "closure_expression",
		),
	})
}
