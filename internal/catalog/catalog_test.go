package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codegraph/internal/catalog"
	"github.com/dusk-indust/codegraph/internal/parsetree"
)

func TestFor_AllTier1LanguagesRegistered(t *testing.T) {
	for _, lang := range []parsetree.Language{parsetree.Go, parsetree.Python, parsetree.TypeScript, parsetree.Rust} {
		table, ok := catalog.For(lang)
		require.True(t, ok, "language %s must be registered", lang)
		assert.NotEmpty(t, table.StatementKinds)
		assert.NotEmpty(t, table.ControlStmt)
		assert.NotEmpty(t, table.LoopStmt)
		assert.NotEmpty(t, table.BlockHolders)
		assert.NotEmpty(t, table.ScopeIntroducing)
	}
}

func TestFor_UnsupportedLanguage(t *testing.T) {
	_, ok := catalog.For("cobol")
	assert.False(t, ok)
}

func TestGoTable_NonControlIsSubsetOfStatementKinds(t *testing.T) {
	table, ok := catalog.For(parsetree.Go)
	require.True(t, ok)
	for k := range table.NonControlStmt {
		assert.True(t, table.StatementKinds.Has(k), "%s should be a statement kind", k)
	}
	for k := range table.ControlStmt {
		assert.True(t, table.StatementKinds.Has(k), "%s should be a statement kind", k)
	}
}
