//go:build cgo

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/dusk-indust/codegraph/internal/schema"
)

// KuzuStore implements Store using KuzuDB as the graph backend. It requires
// CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(":memory:", cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path, so a run's composed graph can be inspected after
// the process exits.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open file database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ddlStatements defines the Cypher DDL executed by InitSchema. Order
// matters: the node table must precede the relationship table.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Node(
		id INT64,
		kind STRING,
		label STRING,
		line INT64,
		views STRING,
		extra STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS Edge(
		FROM Node TO Node,
		view STRING,
		kind STRING,
		extra STRING
	)`,
}

// InitSchema creates the Node table and the multi-edge Edge relationship
// table if they do not already exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// PutNodes upserts one Node row per schema.Node.
func (s *KuzuStore) PutNodes(_ context.Context, nodes []schema.Node) error {
	for _, n := range nodes {
		if err := s.exec(
			`MERGE (n:Node {id: $id})
			 SET n.kind = $kind, n.label = $label, n.line = $line, n.views = $views, n.extra = $extra`,
			map[string]any{
				"id":    int64(n.ID),
				"kind":  n.Kind,
				"label": n.Label,
				"line":  int64(n.Line),
				"views": encodeViews(n.ViewTags),
				"extra": encodeExtra(n.Extra),
			},
		); err != nil {
			return err
		}
	}
	return nil
}

// PutEdges inserts one Edge row per schema.Edge. Multi-edges between the
// same pair are permitted (§3 "labeled directed multigraph").
func (s *KuzuStore) PutEdges(_ context.Context, edges []schema.Edge) error {
	for _, e := range edges {
		if err := s.exec(
			`MATCH (a:Node {id: $src}), (b:Node {id: $dst})
			 CREATE (a)-[:Edge {view: $view, kind: $kind, extra: $extra}]->(b)`,
			map[string]any{
				"src":   int64(e.Source),
				"dst":   int64(e.Target),
				"view":  string(e.View),
				"kind":  e.Kind,
				"extra": encodeExtra(e.Extra),
			},
		); err != nil {
			return err
		}
	}
	return nil
}

// Stats counts rows across the Node table and the Edge relationship table.
func (s *KuzuStore) Stats(_ context.Context) (*Stats, error) {
	nodeCount, err := s.countTable("Node")
	if err != nil {
		return nil, err
	}
	edgeRows, err := s.query("MATCH ()-[r:Edge]->() RETURN count(r)", nil)
	if err != nil {
		return nil, err
	}
	edgeCount := 0
	if len(edgeRows) > 0 && len(edgeRows[0]) > 0 {
		edgeCount = toInt(edgeRows[0][0])
	}
	return &Stats{NodeCount: nodeCount, EdgeCount: edgeCount}, nil
}

// exec runs a parameterized Cypher statement that returns no rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()
	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: exec: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error
	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func (s *KuzuStore) countTable(table string) (int, error) {
	cypher := fmt.Sprintf("MATCH (n:%s) RETURN count(n)", table)
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// encodeViews serializes a ViewTags set to a deterministic, sorted
// comma-joined string ("AST,CFG").
func encodeViews(tags map[schema.View]bool) string {
	var views []string
	for v := range tags {
		views = append(views, string(v))
	}
	sort.Strings(views)
	return strings.Join(views, ",")
}

// encodeExtra serializes an extra attribute map to a deterministic,
// sorted "k=v;k=v" string — Kuzu's community edition has no native map
// column type, and this keeps the store dependency-free beyond go-kuzu
// itself.
func encodeExtra(extra map[string]string) string {
	if len(extra) == 0 {
		return ""
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+extra[k])
	}
	return strings.Join(parts, ";")
}
