// Package extract walks a Tree-sitter syntax tree and yields the
// definitions and references described in the per-language rules, one file
// per language plus the traversal helpers shared by all of them.
package extract

import (
	"sort"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/kantord/cruxlines/pkg/types"
)

// WalkTree walks a Tree-sitter tree depth-first, calling fn for every node
// including the root.
func WalkTree(node *tree_sitter.Node, fn func(*tree_sitter.Node)) {
	if node == nil {
		return
	}
	fn(node)
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			WalkTree(child, fn)
		}
	}
}

// NodeText extracts the exact source text spanned by a node.
func NodeText(node *tree_sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

// lineIndex precomputes the byte offset of the start of every line in a
// file, so Location can be computed in O(log n) per node instead of
// rescanning from the start of the file for every identifier.
type lineIndex struct {
	starts []uint // byte offset of the start of each line; starts[0] == 0
}

func newLineIndex(content []byte) *lineIndex {
	idx := &lineIndex{starts: []uint{0}}
	for i, b := range content {
		if b == '\n' {
			idx.starts = append(idx.starts, uint(i+1))
		}
	}
	return idx
}

// locate converts a byte offset into a 1-based line and a 1-based,
// UTF-8-code-point column relative to the start of that line.
func (idx *lineIndex) locate(offset uint, content []byte) (line, col int) {
	line = sort.Search(len(idx.starts), func(i int) bool { return idx.starts[i] > offset })
	lineStart := idx.starts[line-1]
	col = utf8.RuneCount(content[lineStart:offset]) + 1
	return line, col
}

// Extractor is implemented by every language's definition/reference walker.
type Extractor interface {
	Extract(tree *tree_sitter.Tree, content []byte, relPath string) ([]types.Definition, []types.Reference)
}

// locationOf is a small helper every language file uses to build a
// types.Location for a node.
func locationOf(idx *lineIndex, node *tree_sitter.Node, content []byte, relPath string) types.Location {
	line, col := idx.locate(node.StartByte(), content)
	return types.Location{Path: relPath, Line: line, Col: col}
}
