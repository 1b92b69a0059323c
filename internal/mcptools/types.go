package mcptools

// These mirror onedusk-pd/internal/mcptools/codeintel.go's input/output
// struct convention: plain JSON-tagged structs the MCP SDK turns into tool
// schemas via jsonschema-go, one pair per tool.

// BuildViewsInput is the input for the build_views MCP tool.
type BuildViewsInput struct {
	Path string `json:"path" jsonschema:"absolute path to the source file to analyze"`
	// Language overrides extension-based detection. Values: go, python,
	// typescript, rust.
	Language string `json:"language,omitempty" jsonschema:"language override: go, python, typescript, rust (default: inferred from extension)"`
	// Views selects which of {ast, cfg, dfg} to build (default: all three).
	Views []string `json:"views,omitempty" jsonschema:"views to build: ast, cfg, dfg (default: all three)"`
	// ASTBlacklist names parse-tree kinds to prune from the AST view.
	ASTBlacklist []string `json:"astBlacklist,omitempty" jsonschema:"AST node kinds to prune from the ast view"`
	ASTCollapse  bool     `json:"astCollapse,omitempty" jsonschema:"collapse repeated same-name AST leaves"`
	DFGLastDef   bool     `json:"dfgLastDef,omitempty" jsonschema:"annotate DFG edges with the defining statement's line"`
	DFGLastUse   bool     `json:"dfgLastUse,omitempty" jsonschema:"annotate DFG edges with the most recent prior use's line"`
}

// ViewNode is the JSON-friendly projection of schema.Node returned to MCP
// clients; ViewTags is serialized as a sorted string slice rather than a map,
// since JSON has no native set type.
type ViewNode struct {
	ID       int64    `json:"id"`
	ViewTags []string `json:"viewTags"`
	Kind     string   `json:"kind"`
	Label    string   `json:"label"`
	Line     int      `json:"line"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// ViewEdge is the JSON-friendly projection of schema.Edge.
type ViewEdge struct {
	Source int64             `json:"source"`
	Target int64             `json:"target"`
	View   string            `json:"view"`
	Kind   string            `json:"kind"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// Diagnostic is the JSON-friendly projection of schema.Diagnostic.
type Diagnostic struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	NodeID  int64  `json:"nodeId,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// BuildViewsOutput is the result of the build_views MCP tool.
type BuildViewsOutput struct {
	// RequestID correlates this call across logs/metrics (§3 domain stack:
	// google/uuid-minted, attached to every response).
	RequestID   string       `json:"requestId"`
	Nodes       []ViewNode   `json:"nodes"`
	Edges       []ViewEdge   `json:"edges"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// QuerySymbolsInput is the input for the query_symbols MCP tool.
type QuerySymbolsInput struct {
	Path     string `json:"path" jsonschema:"absolute path to the source file to search"`
	Language string `json:"language,omitempty" jsonschema:"language override (default: inferred from extension)"`
	Query    string `json:"query" jsonschema:"substring to match against declared symbol names"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// SymbolSummary is one declared symbol surfaced by query_symbols.
type SymbolSummary struct {
	NodeID int64  `json:"nodeId"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Line   int    `json:"line"`
	Type   string `json:"type,omitempty"`
}

// QuerySymbolsOutput is the result of the query_symbols MCP tool.
type QuerySymbolsOutput struct {
	RequestID string          `json:"requestId"`
	Symbols   []SymbolSummary `json:"symbols"`
	Total     int             `json:"total"`
}
