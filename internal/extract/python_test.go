package extract

import (
	"testing"

	"github.com/kantord/cruxlines/internal/parser"
	"github.com/kantord/cruxlines/pkg/types"
)

func defNames(defs []types.Definition) []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

func refNames(refs []types.Reference) []string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return names
}

func containsAll(got []string, want ...string) bool {
	set := make(map[string]bool, len(got))
	for _, g := range got {
		set[g] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}

func TestPythonTopLevelDefs(t *testing.T) {
	src := `import os

def top():
    def nested():
        pass
    return nested

class Foo:
    def method(self):
        pass

x = 1
y, z = 2, 3
`
	pool, err := parser.NewPool()
	if err != nil {
		t.Fatalf("NewPool() error: %v", err)
	}
	defer pool.Close()

	tree, err := pool.ParseFile(types.LangPython, ".py", []byte(src))
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	defer tree.Close()

	defs, _ := (Python{}).Extract(tree, []byte(src), "m.py")
	names := defNames(defs)

	if !containsAll(names, "top", "Foo", "x", "y", "z") {
		t.Errorf("defs = %v, want top, Foo, x, y, z", names)
	}
	for _, n := range names {
		if n == "nested" || n == "method" {
			t.Errorf("nested definition %q leaked into top-level defs: %v", n, names)
		}
	}
}

func TestPythonReferencesExcludeImportsAndAttributes(t *testing.T) {
	src := `import os

def top():
    return os.path.join("a", "b")
`
	pool, err := parser.NewPool()
	if err != nil {
		t.Fatalf("NewPool() error: %v", err)
	}
	defer pool.Close()

	tree, err := pool.ParseFile(types.LangPython, ".py", []byte(src))
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	defer tree.Close()

	_, refs := (Python{}).Extract(tree, []byte(src), "m.py")
	names := refNames(refs)

	foundOS := false
	for _, r := range refs {
		switch r.Name {
		case "os":
			if r.Location.Line == 1 {
				t.Errorf("the imported name %q should not be a reference: %v", "os", names)
			}
			foundOS = true
		case "path", "join":
			t.Errorf("attribute %q should not be a reference: %v", r.Name, names)
		}
	}
	if !foundOS {
		t.Errorf("expected a reference to %q, got %v", "os", names)
	}
}
