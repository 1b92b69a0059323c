// Package parsetree defines the narrow interface the core uses to consume
// an external incremental parser's concrete syntax tree (C1). The core
// never depends on a particular grammar or parser library at the type
// level; a concrete adapter (see treesitter.go) wires a real parser behind
// this interface.
package parsetree

import "fmt"

// Point is a (line, column) source position, zero-indexed to match the
// convention of the wrapped parser.
type Point struct {
	Row    uint32
	Column uint32
}

// Language identifies a source language understood by a Parser.
type Language string

const (
	Go         Language = "go"
	Python     Language = "python"
	TypeScript Language = "typescript"
	Rust       Language = "rust"
)

// Node is an opaque handle onto one node of a parsed concrete syntax tree.
// Implementations are only valid for the lifetime of the Tree that produced
// them (§3 "Lifetime: for the duration of one file's processing").
type Node interface {
	// Kind is the grammar's node-type string, e.g. "if_statement".
	Kind() string

	// Named reports whether this is a named node (as opposed to an
	// anonymous syntax token such as punctuation).
	Named() bool

	StartPosition() Point
	EndPosition() Point

	// Text returns the verbatim source bytes spanned by this node.
	Text() []byte

	ChildCount() int
	Child(i int) Node

	NamedChildCount() int
	NamedChild(i int) Node

	// ChildByFieldName looks up a named grammar field (e.g. "condition",
	// "body") used by C6 to locate syntactic sub-parts. Returns nil if the
	// node has no such field.
	ChildByFieldName(name string) Node

	// Parent is a non-owning back-reference, valid only for the owning
	// Tree's lifetime (§9 design note).
	Parent() Node
}

// Tree is a parsed syntax tree. Callers must Close it once processing of
// the file is complete.
type Tree interface {
	RootNode() Node
	Close()
}

// Parser is the sole external contract the core depends on (§6 "To the
// parser (inbound)"). It does not retry or repair syntactically invalid
// input; callers that pass strict_parse=true should treat a returned
// *ParseError as fatal.
type Parser interface {
	Parse(source []byte, lang Language) (Tree, error)
}

// ParseError is returned by a Parser when source is not syntactically
// acceptable to the underlying grammar (§7).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsetree: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
