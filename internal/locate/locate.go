// Package locate turns syntax nodes and byte offsets into 1-based source
// positions and names the descriptor component enclosing a node.
package locate

import (
	"sort"
	"unicode/utf8"

	"github.com/fulldiveVR/codex/internal/tsast"
	"github.com/fulldiveVR/codex/internal/validator"
)

// OffsetToLineCol converts a byte offset to a 1-based line and column.
// Columns count runes, so multi-byte characters occupy one column.
func OffsetToLineCol(data []byte, offset int) (line, col int) {
	if offset > len(data) {
		offset = len(data)
	}
	if offset < 0 {
		offset = 0
	}

	line = 1
	lineStart := 0
	for i := range offset {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, utf8.RuneCount(data[lineStart:offset]) + 1
}

// componentKeys maps descriptor property names to the component their
// values belong to. Field lists share one component.
var componentKeys = map[string]validator.ComponentKind{
	"actions":       validator.ComponentActions,
	"auth":          validator.ComponentAuth,
	"triggers":      validator.ComponentTriggers,
	"dynamicFields": validator.ComponentDynamicFields,
	"dynamicData":   validator.ComponentDynamicData,
	"fields":        validator.ComponentFields,
	"arguments":     validator.ComponentFields,
}

// Locator resolves positions within one parsed file.
type Locator struct {
	tree       *tsast.Tree
	file       string
	lineStarts []int
}

// New indexes the tree's source for position lookups. file is recorded on
// every location it produces.
func New(tree *tsast.Tree, file string) *Locator {
	src := tree.Source()
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Locator{tree: tree, file: file, lineStarts: starts}
}

// Offset converts a byte offset to a location.
func (l *Locator) Offset(offset int) *validator.Location {
	src := l.tree.Source()
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	// Index of the last line start <= offset.
	idx := sort.Search(len(l.lineStarts), func(i int) bool { return l.lineStarts[i] > offset }) - 1
	start := l.lineStarts[idx]
	return &validator.Location{
		Line:     idx + 1,
		Column:   utf8.RuneCount(src[start:offset]) + 1,
		FilePath: l.file,
	}
}

// At returns the location of the first byte of n. A nil node maps to the
// start of the file.
func (l *Locator) At(n *tsast.Node) *validator.Location {
	if n == nil {
		return l.Offset(0)
	}
	return l.Offset(int(n.StartByte()))
}

// Component names the innermost descriptor component containing n, or
// Descriptor when n sits directly in the config object.
func (l *Locator) Component(n *tsast.Node) validator.ComponentKind {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Type() != "pair" {
			continue
		}
		key, ok := l.tree.MemberKey(cur)
		if !ok {
			continue
		}
		// Only count pairs we are inside the value of.
		if kn := cur.ChildByFieldName("key"); kn != nil && n.StartByte() < kn.EndByte() && n.StartByte() >= kn.StartByte() {
			continue
		}
		if kind, ok := componentKeys[key]; ok {
			return kind
		}
	}
	return validator.ComponentDescriptor
}
