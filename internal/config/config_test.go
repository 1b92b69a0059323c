package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/codegraph/internal/config"
)

func TestLoad_NoFilePresentReturnsZeroValue(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &config.ProjectConfig{}, cfg)
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	content := "views: [AST, CFG]\nastCollapse: true\nstrictParse: true\nmcpAddr: \":9090\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "codegraph.yml"), []byte(content), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"AST", "CFG"}, cfg.Views)
	assert.True(t, cfg.ASTCollapse)
	assert.True(t, cfg.StrictParse)
	assert.Equal(t, ":9090", cfg.MCPAddr)
}

func TestLoad_InvalidYAMLIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "codegraph.yml"), []byte("views: [unterminated"), 0o644))

	_, err := config.Load(dir)
	assert.Error(t, err)
}
