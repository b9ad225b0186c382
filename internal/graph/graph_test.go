package graph

import (
	"testing"

	"github.com/kantord/cruxlines/internal/index"
	"github.com/kantord/cruxlines/pkg/types"
)

func TestNewGraphBasicEdge(t *testing.T) {
	resolved := []index.Resolved{
		{
			Ref:  types.Reference{Name: "add", File: "main.js"},
			Defs: []types.Definition{{Name: "add", File: "utils.js"}},
		},
	}
	g := New([]string{"main.js", "utils.js"}, resolved)

	if w := g.Weight("main.js", "utils.js"); w != 1 {
		t.Errorf("Weight(main, utils) = %v, want 1", w)
	}
	if w := g.Weight("utils.js", "main.js"); w != 0 {
		t.Errorf("Weight(utils, main) = %v, want 0", w)
	}
}

func TestNewGraphSelfReferenceNoEdge(t *testing.T) {
	resolved := []index.Resolved{
		{
			Ref:  types.Reference{Name: "f", File: "a.py"},
			Defs: []types.Definition{{Name: "f", File: "a.py"}},
		},
	}
	g := New([]string{"a.py"}, resolved)

	if w := g.Weight("a.py", "a.py"); w != 0 {
		t.Errorf("Weight(a.py, a.py) = %v, want 0 (self-reference)", w)
	}
}

func TestNewGraphFractionalCollisionWeight(t *testing.T) {
	resolved := []index.Resolved{
		{
			Ref: types.Reference{Name: "Status", File: "main.ts"},
			Defs: []types.Definition{
				{Name: "Status", File: "x.ts"},
				{Name: "Status", File: "y.ts"},
			},
		},
	}
	g := New([]string{"main.ts", "x.ts", "y.ts"}, resolved)

	if w := g.Weight("main.ts", "x.ts"); w != 0.5 {
		t.Errorf("Weight(main, x) = %v, want 0.5", w)
	}
	if w := g.Weight("main.ts", "y.ts"); w != 0.5 {
		t.Errorf("Weight(main, y) = %v, want 0.5", w)
	}
}

func TestNewGraphRetainsZeroEdgeNodes(t *testing.T) {
	g := New([]string{"isolated.py"}, nil)
	nodes := g.Nodes()
	if len(nodes) != 1 || nodes[0] != "isolated.py" {
		t.Errorf("Nodes() = %v, want [isolated.py]", nodes)
	}
}
