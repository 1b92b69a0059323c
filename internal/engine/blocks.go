package engine

import (
	"errors"
	"fmt"

	"github.com/dusk-indust/codegraph/internal/catalog"
	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/parsetree"
	"github.com/dusk-indust/codegraph/internal/symbols"
	"github.com/dusk-indust/codegraph/internal/views/cfg"
)

// BasicBlocks parses source and partitions its CFG into weakly-connected
// components (§4 supplemented feature: comex's get_basic_blocks), for
// callers that want to annotate a persisted graph with block ids via
// store.AnnotateBlockIDs without needing the full Options/Views machinery
// of Build.
func BasicBlocks(parser parsetree.Parser, source []byte, lang parsetree.Language) ([][]identity.NodeID, error) {
	cat, ok := catalog.For(lang)
	if !ok {
		return nil, &ScopeError{Msg: fmt.Sprintf("no catalog registered for language %s", lang)}
	}
	adapter, err := adapterFor(lang)
	if err != nil {
		return nil, &ScopeError{Msg: err.Error()}
	}

	tree, perr := parser.Parse(source, lang)
	if perr != nil {
		var parseErr *parsetree.ParseError
		if !errors.As(perr, &parseErr) {
			parseErr = &parsetree.ParseError{Err: perr}
		}
		return nil, parseErr
	}
	defer tree.Close()

	root := tree.RootNode()
	ids := identity.Build(root)
	tables := symbols.Extract(root, ids, cat)
	g := cfg.Build(root, ids, cat, adapter, tables)
	return cfg.BasicBlocks(g), nil
}
