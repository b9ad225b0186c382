package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/kantord/cruxlines/pkg/types"
)

// topLevelRustKinds lists the item kinds that introduce a name at module
// (source_file) scope. impl_item is deliberately excluded: it names an
// existing type rather than introducing a new one.
var topLevelRustKinds = map[string]bool{
	"function_item":     true,
	"struct_item":       true,
	"enum_item":         true,
	"trait_item":        true,
	"type_item":         true,
	"const_item":        true,
	"static_item":       true,
	"mod_item":          true,
	"union_item":        true,
}

// Rust extracts definitions and references from a Rust parse tree. Only
// items sitting directly under source_file count as definitions; items
// nested inside a mod block, function body, or impl block are not emitted.
type Rust struct{}

func (Rust) Extract(tree *tree_sitter.Tree, content []byte, relPath string) ([]types.Definition, []types.Reference) {
	idx := newLineIndex(content)
	root := tree.RootNode()

	var defs []types.Definition
	defNodeIDs := make(map[uintptr]bool)

	addDef := func(name *tree_sitter.Node) {
		if name == nil {
			return
		}
		defNodeIDs[uintptr(name.Id())] = true
		defs = append(defs, types.Definition{
			Name:     NodeText(name, content),
			File:     relPath,
			Location: locationOf(idx, name, content, relPath),
			Lang:     types.LangRust,
		})
	}

	WalkTree(root, func(node *tree_sitter.Node) {
		if !topLevelRustKinds[node.Kind()] {
			return
		}
		if !isDirectChildOf(node, "source_file") {
			return
		}
		addDef(node.ChildByFieldName("name"))
	})

	var refs []types.Reference
	WalkTree(root, func(node *tree_sitter.Node) {
		kind := node.Kind()
		if kind != "identifier" && kind != "type_identifier" {
			return
		}
		if defNodeIDs[uintptr(node.Id())] {
			return
		}
		if withinImport(node, "use_declaration") {
			return
		}
		parent := node.Parent()
		if parent != nil && parent.Kind() == "field_expression" {
			if field := parent.ChildByFieldName("field"); field != nil && field.Id() == node.Id() {
				return
			}
		}
		refs = append(refs, types.Reference{
			Name:     NodeText(node, content),
			File:     relPath,
			Location: locationOf(idx, node, content, relPath),
		})
	})

	return defs, refs
}
