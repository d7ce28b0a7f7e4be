// Package dartscan recovers a lightweight structural AST from Dart source:
// class, function, and method declarations with line spans, control-flow
// blocks, and declared-versus-referenced identifier sets.
//
// The parser is lexical and structural only. It strips comments and string
// literals, then reads brace structure and declaration headers. That is
// deliberately as deep as it goes: no type resolution, no semantics.
package dartscan

// Kind identifies a structural node.
type Kind string

const (
	KindClass     Kind = "class"
	KindMixin     Kind = "mixin"
	KindEnum      Kind = "enum"
	KindExtension Kind = "extension"
	KindFunction  Kind = "function"
	KindMethod    Kind = "method"
	KindIf        Kind = "if"
	KindElse      Kind = "else"
	KindFor       Kind = "for"
	KindWhile     Kind = "while"
	KindDo        Kind = "do"
	KindSwitch    Kind = "switch"
	KindTry       Kind = "try"
	KindCatch     Kind = "catch"
	KindFinally   Kind = "finally"
	KindBlock     Kind = "block"
)

// Node is one brace-delimited construct.
type Node struct {
	Kind      Kind
	Name      string // declarations only; empty for control flow
	StartLine int    // 1-based line of the opening header
	EndLine   int    // 1-based line of the closing brace
	BodyEmpty bool   // nothing but whitespace between the braces
	Children  []*Node
}

// Span is the node's estimated size in lines, inclusive.
func (n *Node) Span() int {
	return n.EndLine - n.StartLine + 1
}

// Symbol is a declared name with its declaration site.
type Symbol struct {
	Name string
	Kind Kind
	Line int
}

// IsPrivate reports whether the symbol is library-private in Dart terms.
func (s Symbol) IsPrivate() bool {
	return len(s.Name) > 0 && s.Name[0] == '_'
}

// File is the parse result for one source file.
type File struct {
	Path       string
	Roots      []*Node
	Declared   []Symbol
	Referenced map[string]int // identifier -> occurrences outside its declaration
}

// Walk performs a depth-first traversal over every node, parents before
// children. The visitor carries its own accumulation; Walk itself holds
// no state between calls.
func (f *File) Walk(visit func(*Node)) {
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			visit(n)
			walk(n.Children)
		}
	}
	walk(f.Roots)
}
