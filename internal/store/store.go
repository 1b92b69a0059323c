// Package store is an optional persistence layer for the composed
// multigraph C8 produces. It is a pure downstream sink for schema.Node and
// schema.Edge records — it never feeds back into the core, which never
// imports this package (§3 "Lifecycle: ... no process-wide mutable state
// is required"; persistence is entirely a collaborator concern).
package store

import (
	"context"
	"io"
	"strconv"

	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/schema"
)

// Store is the persistence backend for one file's composed record stream.
// Implementations: KuzuStore (production, requires cgo), MemStore (testing
// and cgo-less environments).
type Store interface {
	io.Closer

	// InitSchema creates the backing node/edge tables; called once before
	// any Put call.
	InitSchema(ctx context.Context) error

	PutNodes(ctx context.Context, nodes []schema.Node) error
	PutEdges(ctx context.Context, edges []schema.Edge) error

	// Stats reports the current node/edge counts.
	Stats(ctx context.Context) (*Stats, error)
}

// Stats summarizes one store's contents.
type Stats struct {
	NodeCount int
	EdgeCount int
}

// AnnotateBlockIDs tags each node in nodes with the index of the basic
// block (weakly-connected CFG component, see views/cfg.BasicBlocks) it
// belongs to, as an "block_id" extra attribute (§4.9 "extra: map is
// explicitly open" for exactly this kind of derived, non-required field).
// Nodes with no corresponding block are left unannotated. Returns a new
// slice; the input is not mutated.
func AnnotateBlockIDs(nodes []schema.Node, blocks [][]identity.NodeID) []schema.Node {
	blockOf := map[identity.NodeID]int{}
	for i, block := range blocks {
		for _, id := range block {
			blockOf[id] = i
		}
	}

	out := make([]schema.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		idx, ok := blockOf[n.ID]
		if !ok {
			continue
		}
		extra := make(map[string]string, len(n.Extra)+1)
		for k, v := range n.Extra {
			extra[k] = v
		}
		extra["block_id"] = strconv.Itoa(idx)
		out[i].Extra = extra
	}
	return out
}
