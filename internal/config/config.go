// Package config loads the CLI demo's optional codegraph.yml, exactly the
// outer convenience onedusk-pd/internal/config/config.go provides — the
// core (internal/engine) never touches the filesystem for configuration;
// only cmd/codegraph reads this.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds the settings cmd/codegraph reads from codegraph.yml.
type ProjectConfig struct {
	Views        []string `yaml:"views,omitempty"`
	ASTBlacklist []string `yaml:"astBlacklist,omitempty"`
	ASTCollapse  bool     `yaml:"astCollapse,omitempty"`
	DFGLastDef   bool     `yaml:"dfgLastDef,omitempty"`
	DFGLastUse   bool     `yaml:"dfgLastUse,omitempty"`
	StrictParse  bool     `yaml:"strictParse,omitempty"`
	MCPAddr      string   `yaml:"mcpAddr,omitempty"`
}

// Load attempts to read codegraph.yml or codegraph.yaml from dir. Returns a
// zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"codegraph.yml", "codegraph.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
