package catalog

import "github.com/dusk-indust/codegraph/internal/parsetree"

func init() {
	register(parsetree.TypeScript, &Table{
		StatementKinds: NewSet(
			"expression_statement", "lexical_declaration", "variable_declaration",
			"if_statement", "while_statement", "do_statement", "for_statement", "for_in_statement",
			"switch_statement", "try_statement", "throw_statement",
			"break_statement", "continue_statement", "return_statement", "labeled_statement",
			"function_declaration", "class_declaration", "method_definition", "interface_declaration",
		),
		NonControlStmt: NewSet(
			"expression_statement", "lexical_declaration", "variable_declaration",
		),
		ControlStmt: NewSet(
			"if_statement", "while_statement", "do_statement", "for_statement", "for_in_statement",
			"switch_statement", "try_statement", "throw_statement",
			"break_statement", "continue_statement", "return_statement", "labeled_statement",
		),
		LoopStmt: NewSet("while_statement", "do_statement", "for_statement", "for_in_statement"),
		JumpStmt: NewSet("break_statement", "continue_statement", "return_statement"),
		BlockHolders: NewSet(
			"statement_block", "program", "class_body",
		),
		DefinitionKinds: NewSet(
			"function_declaration", "class_declaration", "method_definition",
			"interface_declaration", "type_alias_declaration", "enum_declaration",
		),
		ScopeIntroducing: NewSet(
			"program", "statement_block", "class_body",
			"function_declaration", "method_definition", "arrow_function", "function_expression",
			"for_statement", "for_in_statement", "catch_clause",
		),
		DeclaratorKinds: NewSet(
			"variable_declarator", "required_parameter", "optional_parameter", "catch_clause",
		),
		// assignment_expression (`x = 1`) and augmented_assignment_expression
		// (`x += 1`) are distinct grammar kinds, both naming their target
		// via a "left" field directly (no list wrapping).
		AssignmentKinds: map[string]string{
			"assignment_expression":           "left",
			"augmented_assignment_expression": "left",
		},
		TypeChildKinds: NewSet("type_annotation", "predefined_type", "type_identifier", "generic_type", "union_type"),
		CallExpressionKinds: NewSet("call_expression"),
		MethodDeclarationParents: NewSet(
			"function_declaration", "method_definition",
		),
		FunctionLikeKinds: NewSet(
			"function_declaration", "method_definition", "arrow_function", "function_expression",
		),
	})
}
