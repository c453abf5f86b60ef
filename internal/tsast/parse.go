package tsast

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/fulldiveVR/codex/internal/errors"
)

// Node is a tree-sitter syntax node.
type Node = sitter.Node

// Dialect selects the grammar used for parsing.
type Dialect int

const (
	// DialectTS parses plain TypeScript.
	DialectTS Dialect = iota
	// DialectTSX parses TypeScript with JSX.
	DialectTSX
)

// DialectFor picks the grammar from a nominal file name.
func DialectFor(fileName string) Dialect {
	if strings.EqualFold(filepath.Ext(fileName), ".tsx") {
		return DialectTSX
	}
	return DialectTS
}

func (d Dialect) language() *sitter.Language {
	if d == DialectTSX {
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}

// Tree is a parsed source file. It owns the underlying tree-sitter tree and
// must be closed when no longer needed.
type Tree struct {
	src  []byte
	tree *sitter.Tree
	root *Node
}

// Parse parses src as plain TypeScript. A syntactically broken source
// still returns a tree; check HasError.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	return ParseDialect(ctx, src, DialectTS)
}

// ParseDialect parses src with the given grammar.
func ParseDialect(ctx context.Context, src []byte, dialect Dialect) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(dialect.language())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "parsing source")
	}
	if tree == nil {
		return nil, errors.New("parser returned no tree")
	}
	return &Tree{src: src, tree: tree, root: tree.RootNode()}, nil
}

// Close releases the native tree.
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
	}
}

// Root returns the program node.
func (t *Tree) Root() *Node {
	return t.root
}

// Source returns the parsed bytes.
func (t *Tree) Source() []byte {
	return t.src
}

// Text returns the source text covered by n.
func (t *Tree) Text(n *Node) string {
	if n == nil {
		return ""
	}
	return n.Content(t.src)
}

// HasError reports whether the tree contains ERROR or MISSING nodes.
func (t *Tree) HasError() bool {
	return t.root == nil || t.root.HasError()
}

// SyntaxError is a recovered parse failure inside the tree.
type SyntaxError struct {
	Node *Node
	// Missing is true when the parser inserted a zero-width token.
	Missing bool
	// Token is the expected token for missing nodes, or a snippet of the
	// unexpected text for ERROR nodes.
	Token string
}

// maxSnippet bounds the text quoted from an ERROR node.
const maxSnippet = 40

// Errors lists error and missing nodes in document order. Nested
// ERROR nodes inside an ERROR node are not reported separately.
func (t *Tree) Errors() []SyntaxError {
	if !t.HasError() {
		return nil
	}

	var out []SyntaxError
	stack := []*Node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.IsMissing() {
			out = append(out, SyntaxError{Node: n, Missing: true, Token: n.Type()})
			continue
		}
		if n.Type() == "ERROR" {
			out = append(out, SyntaxError{Node: n, Token: snippet(t.Text(n))})
			continue
		}
		if !n.HasError() {
			continue
		}
		// Push in reverse so children pop in document order.
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			if c := n.Child(i); c != nil {
				stack = append(stack, c)
			}
		}
	}
	return out
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxSnippet {
		return s[:maxSnippet-3] + "..."
	}
	return s
}
