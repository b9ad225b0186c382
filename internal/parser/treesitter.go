// Package parser provides pooled Tree-sitter parsers for the four languages
// cruxlines supports: Python, JavaScript, TypeScript (and TSX), and Rust.
//
// Tree-sitter parsers require CGO_ENABLED=1. Every Tree returned from
// ParseFile must be explicitly closed by the caller to avoid leaking the
// underlying C memory.
package parser

import (
	"fmt"
	"sync"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/kantord/cruxlines/pkg/types"
)

// Pool holds one Tree-sitter parser per language. Tree-sitter parsers are
// not thread-safe, so all parse operations on a given Pool are serialized
// via a mutex; per the concurrency model, each worker goroutine should hold
// its own Pool rather than share one.
type Pool struct {
	mu         sync.Mutex
	python     *tree_sitter.Parser
	javascript *tree_sitter.Parser
	typescript *tree_sitter.Parser
	tsx        *tree_sitter.Parser
	rust       *tree_sitter.Parser
}

// NewPool constructs parsers for every supported language. Returns an error
// if any language grammar fails to initialize.
func NewPool() (*Pool, error) {
	p := &Pool{}

	var err error
	if p.python, err = newLangParser(tree_sitter_python.Language()); err != nil {
		p.Close()
		return nil, fmt.Errorf("set python language: %w", err)
	}
	if p.javascript, err = newLangParser(tree_sitter_javascript.Language()); err != nil {
		p.Close()
		return nil, fmt.Errorf("set javascript language: %w", err)
	}
	if p.typescript, err = newLangParser(tree_sitter_typescript.LanguageTypescript()); err != nil {
		p.Close()
		return nil, fmt.Errorf("set typescript language: %w", err)
	}
	if p.tsx, err = newLangParser(tree_sitter_typescript.LanguageTSX()); err != nil {
		p.Close()
		return nil, fmt.Errorf("set tsx language: %w", err)
	}
	if p.rust, err = newLangParser(tree_sitter_rust.Language()); err != nil {
		p.Close()
		return nil, fmt.Errorf("set rust language: %w", err)
	}

	return p, nil
}

func newLangParser(raw unsafe.Pointer) (*tree_sitter.Parser, error) {
	parser := tree_sitter.NewParser()
	lang := tree_sitter.NewLanguage(raw)
	if err := parser.SetLanguage(lang); err != nil {
		parser.Close()
		return nil, err
	}
	return parser, nil
}

// Close releases every pooled parser. Safe to call multiple times.
func (p *Pool) Close() {
	for _, parser := range []*tree_sitter.Parser{p.python, p.javascript, p.typescript, p.tsx, p.rust} {
		if parser != nil {
			parser.Close()
		}
	}
	p.python, p.javascript, p.typescript, p.tsx, p.rust = nil, nil, nil, nil, nil
}

// ParseFile parses source content for the given language and file
// extension. For TypeScript, ext selects the TSX grammar for .tsx and the
// plain TypeScript grammar otherwise; JavaScript (.js and .jsx) always uses
// the one JavaScript grammar, which parses JSX. The caller must Close() the
// returned tree.
func (p *Pool) ParseFile(lang types.Lang, ext string, content []byte) (*tree_sitter.Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var parser *tree_sitter.Parser
	switch lang {
	case types.LangPython:
		parser = p.python
	case types.LangJavaScript:
		parser = p.javascript
	case types.LangTypeScript:
		if ext == ".tsx" {
			parser = p.tsx
		} else {
			parser = p.typescript
		}
	case types.LangRust:
		parser = p.rust
	default:
		return nil, fmt.Errorf("unsupported language for Tree-sitter: %s", lang)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter parse returned nil")
	}
	return tree, nil
}
