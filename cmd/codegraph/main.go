package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dusk-indust/codegraph/internal/catalog"
	"github.com/dusk-indust/codegraph/internal/config"
	"github.com/dusk-indust/codegraph/internal/engine"
	"github.com/dusk-indust/codegraph/internal/mcptools"
	"github.com/dusk-indust/codegraph/internal/metrics"
	"github.com/dusk-indust/codegraph/internal/parsetree"
	"github.com/dusk-indust/codegraph/internal/schema"
	"github.com/dusk-indust/codegraph/internal/store"
)

// cliFlags mirrors cmd/decompose's flag-struct convention.
type cliFlags struct {
	Path        string
	Views       string
	ASTCollapse bool
	DFGLastDef  bool
	DFGLastUse  bool
	StrictParse bool
	Persist     bool
	ServeMCP    bool
	MCPAddr     string
	Version     bool
}

// version is set by the linker at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("codegraph", flag.ContinueOnError)
	fs.StringVar(&flags.Path, "path", "", "path to the source file to analyze")
	fs.StringVar(&flags.Views, "views", "ast,cfg,dfg", "comma-separated views to build")
	fs.BoolVar(&flags.ASTCollapse, "ast-collapse", false, "collapse repeated same-name AST leaves")
	fs.BoolVar(&flags.DFGLastDef, "dfg-last-def", false, "annotate DFG edges with the defining statement's line")
	fs.BoolVar(&flags.DFGLastUse, "dfg-last-use", false, "annotate DFG edges with the most recent prior use's line")
	fs.BoolVar(&flags.StrictParse, "strict-parse", false, "abort on parse error instead of emitting a partial graph")
	fs.BoolVar(&flags.Persist, "persist", false, "load the composed graph into an in-memory store and print its stats, tagged with basic-block ids")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as an MCP server exposing build_views and query_symbols")
	fs.StringVar(&flags.MCPAddr, "mcp-addr", ":8084", "listen address when -serve-mcp is set")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyConfigDefaults(&flags, cfg)

	parser := parsetree.NewTreeSitterParser()

	if flags.ServeMCP {
		svc := mcptools.NewCodeIntelService(parser, mcptools.OSReader{})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		fmt.Fprintf(os.Stderr, "codegraph MCP server listening on %s\n", flags.MCPAddr)
		return mcptools.RunHTTP(ctx, svc, flags.MCPAddr)
	}

	if flags.Path == "" {
		return fmt.Errorf("-path is required (or -serve-mcp)")
	}

	lang, ok := languageForExt(filepath.Ext(flags.Path))
	if !ok {
		return fmt.Errorf("cannot infer language for %s", flags.Path)
	}

	source, err := os.ReadFile(flags.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", flags.Path, err)
	}

	views, err := parseViews(flags.Views)
	if err != nil {
		return err
	}

	opts := engine.Options{
		Views:        views,
		ASTBlacklist: catalog.NewSet(cfg.ASTBlacklist...),
		ASTCollapse:  flags.ASTCollapse,
		DFGLastDef:   flags.DFGLastDef,
		DFGLastUse:   flags.DFGLastUse,
		StrictParse:  flags.StrictParse,
	}

	start := time.Now()
	stream, buildErr := engine.Build(context.Background(), parser, source, lang, opts)
	metrics.RecordBuild(string(lang), time.Since(start), stream, buildErr != nil)
	if buildErr != nil {
		return fmt.Errorf("build views for %s: %w", flags.Path, buildErr)
	}

	if flags.Persist {
		if err := persist(context.Background(), parser, source, lang, stream); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stream)
}

// persist loads the composed stream into an in-memory store, tags its
// nodes with basic-block ids, and prints the resulting stats. KuzuStore
// (the cgo-backed production store.Store) is wired behind the same
// interface for environments built with cgo; this demo path sticks to
// MemStore so the CLI works without it.
func persist(ctx context.Context, parser parsetree.Parser, source []byte, lang parsetree.Language, stream schema.Stream) error {
	blocks, err := engine.BasicBlocks(parser, source, lang)
	if err != nil {
		return fmt.Errorf("compute basic blocks: %w", err)
	}
	nodes := store.AnnotateBlockIDs(stream.Nodes, blocks)

	s := store.NewMemStore()
	defer s.Close()
	if err := s.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	if err := s.PutNodes(ctx, nodes); err != nil {
		return fmt.Errorf("put nodes: %w", err)
	}
	if err := s.PutEdges(ctx, stream.Edges); err != nil {
		return fmt.Errorf("put edges: %w", err)
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	fmt.Fprintf(os.Stderr, "persisted %d nodes across %d basic blocks, %d edges\n", stats.NodeCount, len(blocks), stats.EdgeCount)
	return nil
}

func applyConfigDefaults(flags *cliFlags, cfg *config.ProjectConfig) {
	if len(cfg.Views) > 0 && !isFlagViewsOverridden(flags.Views) {
		flags.Views = strings.Join(cfg.Views, ",")
	}
	if cfg.MCPAddr != "" && flags.MCPAddr == ":8084" {
		flags.MCPAddr = cfg.MCPAddr
	}
	flags.ASTCollapse = flags.ASTCollapse || cfg.ASTCollapse
	flags.DFGLastDef = flags.DFGLastDef || cfg.DFGLastDef
	flags.DFGLastUse = flags.DFGLastUse || cfg.DFGLastUse
	flags.StrictParse = flags.StrictParse || cfg.StrictParse
}

// isFlagViewsOverridden reports whether -views differs from its flag
// default, so an explicit CLI flag always wins over the config file.
func isFlagViewsOverridden(views string) bool { return views != "ast,cfg,dfg" }

func languageForExt(ext string) (parsetree.Language, bool) {
	switch ext {
	case ".go":
		return parsetree.Go, true
	case ".py":
		return parsetree.Python, true
	case ".ts", ".tsx":
		return parsetree.TypeScript, true
	case ".rs":
		return parsetree.Rust, true
	default:
		return "", false
	}
}

func parseViews(csv string) (map[schema.View]bool, error) {
	set := map[schema.View]bool{}
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		switch schema.View(strings.ToUpper(name)) {
		case schema.AST:
			set[schema.AST] = true
		case schema.CFG:
			set[schema.CFG] = true
		case schema.DFG:
			set[schema.DFG] = true
		default:
			return nil, fmt.Errorf("unknown view %q", name)
		}
	}
	return set, nil
}
