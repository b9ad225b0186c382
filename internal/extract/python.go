package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/kantord/cruxlines/pkg/types"
)

// Python extracts definitions and references from a Python parse tree per
// the rules in the definitions table: top-level def/class and top-level
// bare-identifier assignment targets (including annotated assignment and
// tuple unpacking); nested defs/classes and methods are not emitted.
type Python struct{}

func (Python) Extract(tree *tree_sitter.Tree, content []byte, relPath string) ([]types.Definition, []types.Reference) {
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
			Lang:     types.LangPython,
		})
	}

	WalkTree(root, func(node *tree_sitter.Node) {
		switch node.Kind() {
		case "function_definition", "class_definition":
			// A decorated top-level def/class sits under a
			// decorated_definition wrapper, which itself sits at module scope.
			parent := node.Parent()
			if parent != nil && parent.Kind() == "decorated_definition" {
				parent = parent.Parent()
			}
			if parent != nil && parent.Kind() == "module" {
				addDef(node.ChildByFieldName("name"))
			}
		case "assignment":
			if isTopLevelPyStatement(node) {
				collectAssignmentTargets(node.ChildByFieldName("left"), addDef)
			}
		}
	})

	var refs []types.Reference
	WalkTree(root, func(node *tree_sitter.Node) {
		if node.Kind() != "identifier" {
			return
		}
		if defNodeIDs[uintptr(node.Id())] {
			return
		}
		if withinImport(node, "import_statement", "import_from_statement") {
			return
		}
		parent := node.Parent()
		if parent != nil && parent.Kind() == "attribute" {
			if attr := parent.ChildByFieldName("attribute"); attr != nil && attr.Id() == node.Id() {
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

// collectAssignmentTargets walks an assignment's left-hand side, emitting a
// definition for every bare identifier it finds. Handles plain targets,
// annotated targets (the "left" field is still the bare identifier; the
// annotation lives in a separate "type" field), and tuple/list unpacking.
func collectAssignmentTargets(left *tree_sitter.Node, addDef func(*tree_sitter.Node)) {
	if left == nil {
		return
	}
	switch left.Kind() {
	case "identifier":
		addDef(left)
	case "pattern_list", "tuple_pattern", "list_pattern":
		for i := uint(0); i < left.ChildCount(); i++ {
			child := left.Child(i)
			if child != nil && child.Kind() == "identifier" {
				addDef(child)
			}
		}
	}
}

// isDirectChildOf reports whether node's immediate parent has the given
// kind.
func isDirectChildOf(node *tree_sitter.Node, kind string) bool {
	parent := node.Parent()
	return parent != nil && parent.Kind() == kind
}

// isTopLevelPyStatement reports whether an assignment node sits directly at
// module scope, once its expression_statement wrapper is accounted for.
func isTopLevelPyStatement(node *tree_sitter.Node) bool {
	parent := node.Parent()
	if parent == nil || parent.Kind() != "expression_statement" {
		return false
	}
	grandparent := parent.Parent()
	return grandparent != nil && grandparent.Kind() == "module"
}

// withinImport reports whether node has an ancestor whose kind matches one
// of the given import-statement kinds.
func withinImport(node *tree_sitter.Node, kinds ...string) bool {
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		k := cur.Kind()
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
	}
	return false
}
