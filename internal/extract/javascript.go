package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/kantord/cruxlines/pkg/types"
)

// JavaScript extracts definitions and references from a JavaScript/JSX
// parse tree. Only export declarations are definitions, per the
// definitions table.
type JavaScript struct{}

func (JavaScript) Extract(tree *tree_sitter.Tree, content []byte, relPath string) ([]types.Definition, []types.Reference) {
	return extractJSFamily(tree, content, relPath, types.LangJavaScript, false)
}

// extractJSFamily is shared by JavaScript and TypeScript; tsExtras enables
// the TypeScript-only export kinds (interface/type/enum/namespace).
func extractJSFamily(tree *tree_sitter.Tree, content []byte, relPath string, lang types.Lang, tsExtras bool) ([]types.Definition, []types.Reference) {
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
			Lang:     lang,
		})
	}
	addDefNamed := func(node *tree_sitter.Node, name string) {
		if node == nil {
			return
		}
		defNodeIDs[uintptr(node.Id())] = true
		defs = append(defs, types.Definition{
			Name:     name,
			File:     relPath,
			Location: locationOf(idx, node, content, relPath),
			Lang:     lang,
		})
	}

	WalkTree(root, func(node *tree_sitter.Node) {
		if node.Kind() != "export_statement" {
			return
		}
		handleExportClause(node, addDef)
		decl := node.ChildByFieldName("declaration")
		isDefault := hasDefaultKeyword(node, content)

		switch {
		case decl != nil:
			handleExportedDeclaration(decl, tsExtras, addDef, addDefNamed, isDefault)
		case isDefault:
			handleDefaultExportExpression(node, content, addDef, addDefNamed)
		}
	})

	var refs []types.Reference
	WalkTree(root, func(node *tree_sitter.Node) {
		kind := node.Kind()
		if kind != "identifier" && !(tsExtras && kind == "type_identifier") {
			return
		}
		if defNodeIDs[uintptr(node.Id())] {
			return
		}
		if withinImport(node, "import_statement") {
			return
		}
		parent := node.Parent()
		if parent != nil {
			switch parent.Kind() {
			case "member_expression":
				if prop := parent.ChildByFieldName("property"); prop != nil && prop.Id() == node.Id() {
					return
				}
			case "export_specifier":
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

// handleExportClause handles `export { A, B as C }`: emits A and C (the
// re-export name).
func handleExportClause(node *tree_sitter.Node, addDef func(*tree_sitter.Node)) {
	var clause *tree_sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == "export_clause" {
			clause = child
			break
		}
	}
	if clause == nil {
		return
	}
	for i := uint(0); i < clause.ChildCount(); i++ {
		spec := clause.Child(i)
		if spec == nil || spec.Kind() != "export_specifier" {
			continue
		}
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			addDef(alias)
		} else if name := spec.ChildByFieldName("name"); name != nil {
			addDef(name)
		}
	}
}

// handleExportedDeclaration handles `export function|class|const|let|var ...`
// and, when tsExtras is set, `export interface|type|enum|namespace NAME`.
func handleExportedDeclaration(decl *tree_sitter.Node, tsExtras bool, addDef func(*tree_sitter.Node), addDefNamed func(*tree_sitter.Node, string), isDefault bool) {
	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration", "class_declaration":
		name := decl.ChildByFieldName("name")
		if name != nil {
			addDef(name)
		} else if isDefault {
			addDefNamed(decl, "default")
		}
	case "lexical_declaration", "variable_declaration":
		for i := uint(0); i < decl.ChildCount(); i++ {
			child := decl.Child(i)
			if child == nil || child.Kind() != "variable_declarator" {
				continue
			}
			if name := child.ChildByFieldName("name"); name != nil {
				addDef(name)
			}
		}
	case "interface_declaration", "type_alias_declaration", "enum_declaration", "internal_module":
		if tsExtras {
			if name := decl.ChildByFieldName("name"); name != nil {
				addDef(name)
			}
		}
	}
}

// handleDefaultExportExpression handles `export default <expr>` where expr
// is not wrapped in a "declaration" field (e.g. `export default 42` or
// `export default someIdentifier`). Uses the literal name "default" unless
// the expression is itself an inferable named function/class.
func handleDefaultExportExpression(node *tree_sitter.Node, content []byte, addDef func(*tree_sitter.Node), addDefNamed func(*tree_sitter.Node, string)) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "function_declaration", "generator_function_declaration", "function", "class_declaration", "class":
			if name := child.ChildByFieldName("name"); name != nil {
				addDef(name)
				return
			}
			addDefNamed(child, "default")
			return
		case "export", "default":
			continue
		}
	}
	addDefNamed(node, "default")
}

// hasDefaultKeyword reports whether an export_statement's literal text
// contains the "default" keyword directly after "export" (rather than
// relying on a named field, since the grammar exposes it as a bare token).
func hasDefaultKeyword(node *tree_sitter.Node, content []byte) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && NodeText(child, content) == "default" {
			return true
		}
	}
	return false
}
