package catalog

import "github.com/dusk-indust/codegraph/internal/parsetree"

func init() {
	register(parsetree.Go, &Table{
		StatementKinds: NewSet(
			"short_var_declaration", "assignment_statement", "expression_statement",
			"var_declaration", "const_declaration", "send_statement", "inc_statement", "dec_statement",
			"if_statement", "for_statement", "switch_statement", "type_switch_statement", "select_statement",
			"break_statement", "continue_statement", "return_statement", "goto_statement", "labeled_statement",
			"defer_statement", "go_statement",
		),
		NonControlStmt: NewSet(
			"short_var_declaration", "assignment_statement", "expression_statement",
			"var_declaration", "const_declaration", "send_statement", "inc_statement", "dec_statement",
			"defer_statement", "go_statement",
		),
		ControlStmt: NewSet(
			"if_statement", "for_statement", "switch_statement", "type_switch_statement", "select_statement",
			"break_statement", "continue_statement", "return_statement", "goto_statement", "labeled_statement",
		),
		LoopStmt: NewSet("for_statement"),
		JumpStmt: NewSet("break_statement", "continue_statement", "return_statement", "goto_statement"),
		BlockHolders: NewSet(
			"block", "source_file", "func_literal",
		),
		DefinitionKinds: NewSet(
			"function_declaration", "method_declaration", "type_declaration", "type_spec",
		),
		ScopeIntroducing: NewSet(
			"block", "source_file", "func_literal",
			"function_declaration", "method_declaration",
			"if_statement", "for_statement", "switch_statement", "type_switch_statement",
		),
		DeclaratorKinds: NewSet(
			"var_spec", "const_spec", "parameter_declaration", "variadic_parameter_declaration",
		),
		// short_var_declaration (`x := f()`) and assignment_statement
		// (`x = 1`, `x += 1`) both put their target(s) in an "left" field;
		// inc/dec_statement (`x++`) name theirs "operand" directly, with
		// no wrapping list. assignment_statement covers "=" and "+="
		// alike (they differ only in the "operator" field's text).
		AssignmentKinds: map[string]string{
			"short_var_declaration": "left",
			"assignment_statement":  "left",
			"inc_statement":         "operand",
			"dec_statement":         "operand",
		},
		AssignmentListKinds: NewSet("expression_list"),
		TypeChildKinds: NewSet(
			"type_identifier", "pointer_type", "qualified_type", "generic_type",
			"slice_type", "map_type", "channel_type", "array_type", "struct_type", "interface_type",
		),
		CallExpressionKinds: NewSet("call_expression"),
		MethodDeclarationParents: NewSet(
			"function_declaration", "method_declaration",
		),
		FunctionLikeKinds: NewSet(
			"function_declaration", "method_declaration", "func_literal",
		),
	})
}
