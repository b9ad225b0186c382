package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/kantord/cruxlines/pkg/types"
)

// TypeScript extracts definitions and references from a TypeScript or TSX
// parse tree. Adds interface/type/enum/namespace export kinds on top of the
// JavaScript export rules.
type TypeScript struct{}

func (TypeScript) Extract(tree *tree_sitter.Tree, content []byte, relPath string) ([]types.Definition, []types.Reference) {
	return extractJSFamily(tree, content, relPath, types.LangTypeScript, true)
}
