package extract

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/kantord/cruxlines/pkg/types"
)

// For dispatches tree.RootNode() traversal to the Extractor implementation
// for lang.
func For(lang types.Lang) (Extractor, error) {
	switch lang {
	case types.LangPython:
		return Python{}, nil
	case types.LangJavaScript:
		return JavaScript{}, nil
	case types.LangTypeScript:
		return TypeScript{}, nil
	case types.LangRust:
		return Rust{}, nil
	default:
		return nil, fmt.Errorf("no extractor for language %q", lang)
	}
}

// Extract is a convenience wrapper around For that extracts directly from a
// parsed tree.
func Extract(lang types.Lang, tree *tree_sitter.Tree, content []byte, relPath string) ([]types.Definition, []types.Reference, error) {
	ex, err := For(lang)
	if err != nil {
		return nil, nil, err
	}
	defs, refs := ex.Extract(tree, content, relPath)
	return defs, refs, nil
}
