package parsetree

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// TreeSitterParser implements Parser using tree-sitter grammars. A new
// tree-sitter parser is created per Parse call, so this type is safe for
// sequential reuse but individual Parse calls are not thread-safe (same
// contract as the teacher's graph.TreeSitterParser).
type TreeSitterParser struct {
	languages map[Language]*tree_sitter.Language
}

// NewTreeSitterParser creates a TreeSitterParser with the Tier-1 grammars
// (Go, TypeScript, Python, Rust) registered.
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{
		languages: map[Language]*tree_sitter.Language{
			Go:         tree_sitter.NewLanguage(tree_sitter_go.Language()),
			TypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			Python:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
			Rust:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
		},
	}
}

// Parse parses source with the grammar for lang. It returns a ParseError
// only when tree-sitter produces no tree at all; source with syntax errors
// still yields a tree (with ERROR nodes in it) and a nil error.
func (p *TreeSitterParser) Parse(source []byte, lang Language) (Tree, error) {
	tsLang, ok := p.languages[lang]
	if !ok {
		return nil, fmt.Errorf("parsetree: unsupported language: %s", lang)
	}

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(tsLang); err != nil {
		parser.Close()
		return nil, fmt.Errorf("parsetree: set language %s: %w", lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		parser.Close()
		return nil, &ParseError{Err: fmt.Errorf("tree-sitter returned nil tree")}
	}

	return &tsTree{parser: parser, tree: tree, source: source}, nil
}

// tsTree wraps a tree-sitter Tree plus the parser and source bytes it needs
// kept alive for node text extraction.
type tsTree struct {
	parser *tree_sitter.Parser
	tree   *tree_sitter.Tree
	source []byte
}

func (t *tsTree) RootNode() Node {
	root := t.tree.RootNode()
	if root == nil {
		return nil
	}
	return &tsNode{node: root, source: t.source}
}

func (t *tsTree) Close() {
	t.tree.Close()
	t.parser.Close()
}

// tsNode adapts *tree_sitter.Node to the Node interface.
type tsNode struct {
	node   *tree_sitter.Node
	source []byte
}

func wrap(n *tree_sitter.Node, source []byte) Node {
	if n == nil {
		return nil
	}
	return &tsNode{node: n, source: source}
}

func (n *tsNode) Kind() string { return n.node.Kind() }
func (n *tsNode) Named() bool  { return n.node.IsNamed() }

func (n *tsNode) StartPosition() Point {
	p := n.node.StartPosition()
	return Point{Row: uint32(p.Row), Column: uint32(p.Column)}
}

func (n *tsNode) EndPosition() Point {
	p := n.node.EndPosition()
	return Point{Row: uint32(p.Row), Column: uint32(p.Column)}
}

func (n *tsNode) Text() []byte { return []byte(n.node.Utf8Text(n.source)) }

func (n *tsNode) ChildCount() int { return int(n.node.ChildCount()) }

func (n *tsNode) Child(i int) Node {
	return wrap(n.node.Child(uint(i)), n.source)
}

func (n *tsNode) NamedChildCount() int { return int(n.node.NamedChildCount()) }

func (n *tsNode) NamedChild(i int) Node {
	return wrap(n.node.NamedChild(uint(i)), n.source)
}

func (n *tsNode) ChildByFieldName(name string) Node {
	return wrap(n.node.ChildByFieldName(name), n.source)
}

func (n *tsNode) Parent() Node {
	return wrap(n.node.Parent(), n.source)
}
