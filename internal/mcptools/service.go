// Package mcptools exposes internal/engine's pipeline as MCP tools,
// grounded on onedusk-pd/internal/mcptools's CodeIntelService /
// handlers.go / server.go shape: a service struct holding the shared
// collaborators, one method per tool with the SDK's
// (ctx, *mcp.CallToolRequest, Input) -> (*mcp.CallToolResult, Output, error)
// signature, and a NewServer that registers each method via mcp.AddTool.
package mcptools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/codegraph/internal/catalog"
	"github.com/dusk-indust/codegraph/internal/engine"
	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/metrics"
	"github.com/dusk-indust/codegraph/internal/parsetree"
	"github.com/dusk-indust/codegraph/internal/schema"
	"github.com/dusk-indust/codegraph/internal/symbols"
)

// Reader abstracts the filesystem read BuildViews/QuerySymbols need, so
// tests can stub it without touching disk.
type Reader interface {
	ReadFile(path string) ([]byte, error)
}

// OSReader is the production Reader, backed directly by os.ReadFile.
type OSReader struct{}

func (OSReader) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// CodeIntelService holds the collaborators MCP tool handlers share: a
// parser (C1) and a file reader.
type CodeIntelService struct {
	parser parsetree.Parser
	reader Reader
}

// NewCodeIntelService creates a CodeIntelService over the given parser and
// reader.
func NewCodeIntelService(parser parsetree.Parser, reader Reader) *CodeIntelService {
	return &CodeIntelService{parser: parser, reader: reader}
}

// extToLanguage maps file extensions to parsetree.Language, mirroring
// onedusk-pd/internal/mcptools/handlers.go's extToLanguage table.
var extToLanguage = map[string]parsetree.Language{
	".go":  parsetree.Go,
	".py":  parsetree.Python,
	".ts":  parsetree.TypeScript,
	".tsx": parsetree.TypeScript,
	".rs":  parsetree.Rust,
}

func resolveLanguage(path, override string) (parsetree.Language, error) {
	if override != "" {
		switch parsetree.Language(strings.ToLower(override)) {
		case parsetree.Go, parsetree.Python, parsetree.TypeScript, parsetree.Rust:
			return parsetree.Language(strings.ToLower(override)), nil
		default:
			return "", fmt.Errorf("mcptools: unsupported language override %q", override)
		}
	}
	lang, ok := extToLanguage[filepath.Ext(path)]
	if !ok {
		return "", fmt.Errorf("mcptools: cannot infer language for %s", path)
	}
	return lang, nil
}

var allViews = []schema.View{schema.AST, schema.CFG, schema.DFG}

func parseViewSet(names []string) (map[schema.View]bool, error) {
	if len(names) == 0 {
		set := map[schema.View]bool{}
		for _, v := range allViews {
			set[v] = true
		}
		return set, nil
	}
	set := map[schema.View]bool{}
	for _, n := range names {
		switch schema.View(strings.ToUpper(n)) {
		case schema.AST:
			set[schema.AST] = true
		case schema.CFG:
			set[schema.CFG] = true
		case schema.DFG:
			set[schema.DFG] = true
		default:
			return nil, fmt.Errorf("mcptools: unknown view %q", n)
		}
	}
	return set, nil
}

// BuildViews runs the C1-C9 pipeline over one source file and returns the
// composed record stream as a JSON-friendly projection.
func (s *CodeIntelService) BuildViews(ctx context.Context, _ *mcp.CallToolRequest, input BuildViewsInput) (*mcp.CallToolResult, BuildViewsOutput, error) {
	requestID := uuid.NewString()

	if input.Path == "" {
		return nil, BuildViewsOutput{RequestID: requestID}, fmt.Errorf("path is required")
	}
	lang, err := resolveLanguage(input.Path, input.Language)
	if err != nil {
		return nil, BuildViewsOutput{RequestID: requestID}, err
	}
	source, err := s.reader.ReadFile(input.Path)
	if err != nil {
		return nil, BuildViewsOutput{RequestID: requestID}, fmt.Errorf("read %s: %w", input.Path, err)
	}
	views, err := parseViewSet(input.Views)
	if err != nil {
		return nil, BuildViewsOutput{RequestID: requestID}, err
	}

	blacklist := catalog.NewSet(input.ASTBlacklist...)

	opts := engine.Options{
		Views:        views,
		ASTBlacklist: blacklist,
		ASTCollapse:  input.ASTCollapse,
		DFGLastDef:   input.DFGLastDef,
		DFGLastUse:   input.DFGLastUse,
	}

	start := time.Now()
	stream, err := engine.Build(ctx, s.parser, source, lang, opts)
	metrics.RecordBuild(string(lang), time.Since(start), stream, err != nil)
	if err != nil {
		return nil, BuildViewsOutput{RequestID: requestID}, fmt.Errorf("build views for %s: %w", input.Path, err)
	}

	return nil, BuildViewsOutput{
		RequestID:   requestID,
		Nodes:       toViewNodes(stream.Nodes),
		Edges:       toViewEdges(stream.Edges),
		Diagnostics: toDiagnostics(stream.Diagnostics),
	}, nil
}

// QuerySymbols parses one source file and returns the declared symbols
// whose name contains the given query substring.
func (s *CodeIntelService) QuerySymbols(ctx context.Context, _ *mcp.CallToolRequest, input QuerySymbolsInput) (*mcp.CallToolResult, QuerySymbolsOutput, error) {
	requestID := uuid.NewString()

	if input.Path == "" {
		return nil, QuerySymbolsOutput{RequestID: requestID}, fmt.Errorf("path is required")
	}
	lang, err := resolveLanguage(input.Path, input.Language)
	if err != nil {
		return nil, QuerySymbolsOutput{RequestID: requestID}, err
	}
	cat, ok := catalog.For(lang)
	if !ok {
		return nil, QuerySymbolsOutput{RequestID: requestID}, fmt.Errorf("mcptools: no catalog for language %s", lang)
	}
	source, err := s.reader.ReadFile(input.Path)
	if err != nil {
		return nil, QuerySymbolsOutput{RequestID: requestID}, fmt.Errorf("read %s: %w", input.Path, err)
	}

	tree, err := s.parser.Parse(source, lang)
	if err != nil {
		return nil, QuerySymbolsOutput{RequestID: requestID}, fmt.Errorf("parse %s: %w", input.Path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	ids := identity.Build(root)
	tables := symbols.Extract(root, ids, cat)

	kindByID := map[identity.NodeID]string{}
	for _, e := range ids.All() {
		kindByID[e.ID] = e.Node.Kind()
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	var matches []SymbolSummary
	// Declaration is a map, so iterate NodeIDs in ascending order for
	// deterministic output rather than relying on map iteration order.
	declIDs := make([]identity.NodeID, 0, len(tables.Declaration))
	for id := range tables.Declaration {
		declIDs = append(declIDs, id)
	}
	sort.Slice(declIDs, func(i, j int) bool { return declIDs[i] < declIDs[j] })

	for _, id := range declIDs {
		name := tables.Declaration[id]
		if input.Query != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(input.Query)) {
			continue
		}
		matches = append(matches, SymbolSummary{
			NodeID: int64(id),
			Name:   name,
			Kind:   kindByID[id],
			Line:   tables.StartLine[id],
			Type:   tables.DataType[id],
		})
		if len(matches) >= limit {
			break
		}
	}

	return nil, QuerySymbolsOutput{RequestID: requestID, Symbols: matches, Total: len(matches)}, nil
}

func toViewNodes(nodes []schema.Node) []ViewNode {
	out := make([]ViewNode, 0, len(nodes))
	for _, n := range nodes {
		var tags []string
		for v := range n.ViewTags {
			tags = append(tags, string(v))
		}
		sort.Strings(tags)
		out = append(out, ViewNode{ID: int64(n.ID), ViewTags: tags, Kind: n.Kind, Label: n.Label, Line: n.Line, Extra: n.Extra})
	}
	return out
}

func toViewEdges(edges []schema.Edge) []ViewEdge {
	out := make([]ViewEdge, 0, len(edges))
	for _, e := range edges {
		out = append(out, ViewEdge{Source: int64(e.Source), Target: int64(e.Target), View: string(e.View), Kind: e.Kind, Extra: e.Extra})
	}
	return out
}

func toDiagnostics(diags []schema.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, Diagnostic{Kind: string(d.Kind), Message: d.Message, NodeID: int64(d.NodeID), Line: d.Line})
	}
	return out
}
