package extract

import (
	"testing"

	"github.com/kantord/cruxlines/internal/parser"
	"github.com/kantord/cruxlines/pkg/types"
)

func TestForReturnsExtractorPerLanguage(t *testing.T) {
	for _, lang := range []types.Lang{types.LangPython, types.LangJavaScript, types.LangTypeScript, types.LangRust} {
		if _, err := For(lang); err != nil {
			t.Errorf("For(%s) error: %v", lang, err)
		}
	}
}

func TestForUnknownLanguage(t *testing.T) {
	if _, err := For(types.Lang("go")); err == nil {
		t.Error("expected error for unknown language, got nil")
	}
}

func TestExtractEndToEnd(t *testing.T) {
	pool, err := parser.NewPool()
	if err != nil {
		t.Fatalf("NewPool() error: %v", err)
	}
	defer pool.Close()

	src := "def f():\n    pass\n"
	tree, err := pool.ParseFile(types.LangPython, ".py", []byte(src))
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	defer tree.Close()

	defs, _, err := Extract(types.LangPython, tree, []byte(src), "m.py")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(defs) != 1 || defs[0].Name != "f" {
		t.Errorf("defs = %v, want a single definition named f", defs)
	}
}
