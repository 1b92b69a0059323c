package store

import (
	"context"
	"sync"

	"github.com/dusk-indust/codegraph/internal/identity"
	"github.com/dusk-indust/codegraph/internal/schema"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu    sync.RWMutex
	nodes map[identity.NodeID]schema.Node
	edges []schema.Edge
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{nodes: make(map[identity.NodeID]schema.Node)}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error { return nil }

// PutNodes upserts nodes by NodeID.
func (m *MemStore) PutNodes(_ context.Context, nodes []schema.Node) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range nodes {
		m.nodes[n.ID] = n
	}
	return nil
}

// PutEdges appends edges to the internal slice.
func (m *MemStore) PutEdges(_ context.Context, edges []schema.Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, edges...)
	return nil
}

// GetNode returns the node for id, or nil if not found.
func (m *MemStore) GetNode(_ context.Context, id identity.NodeID) (*schema.Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.nodes[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

// EdgesFrom returns every stored edge whose Source is id.
func (m *MemStore) EdgesFrom(_ context.Context, id identity.NodeID) ([]schema.Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schema.Edge
	for _, e := range m.edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out, nil
}

// Stats returns current node/edge counts.
func (m *MemStore) Stats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &Stats{NodeCount: len(m.nodes), EdgeCount: len(m.edges)}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error { return nil }
