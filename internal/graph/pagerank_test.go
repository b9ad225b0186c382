package graph

import (
	"math"
	"testing"

	"github.com/kantord/cruxlines/internal/index"
	"github.com/kantord/cruxlines/pkg/types"
)

func sumRank(r map[string]float64) float64 {
	var sum float64
	for _, v := range r {
		sum += v
	}
	return sum
}

func TestRankSumsToOne(t *testing.T) {
	resolved := []index.Resolved{
		{
			Ref:  types.Reference{Name: "add", File: "main.js"},
			Defs: []types.Definition{{Name: "add", File: "utils.js"}},
		},
	}
	g := New([]string{"main.js", "utils.js"}, resolved)
	rank := Rank(g)

	if got := sumRank(rank); math.Abs(got-1) > 1e-6 {
		t.Errorf("sum(rank) = %v, want ~1", got)
	}
}

func TestRankUniformWithNoEdges(t *testing.T) {
	g := New([]string{"a.py", "b.py", "c.py"}, nil)
	rank := Rank(g)

	for f, v := range rank {
		if math.Abs(v-1.0/3.0) > 1e-6 {
			t.Errorf("rank[%s] = %v, want ~1/3", f, v)
		}
	}
}

func TestRankReferencedFileRanksHigher(t *testing.T) {
	resolved := []index.Resolved{
		{
			Ref:  types.Reference{Name: "add", File: "main.js"},
			Defs: []types.Definition{{Name: "add", File: "utils.js"}},
		},
		{
			Ref:  types.Reference{Name: "sub", File: "other.js"},
			Defs: []types.Definition{{Name: "sub", File: "utils.js"}},
		},
	}
	g := New([]string{"main.js", "other.js", "utils.js"}, resolved)
	rank := Rank(g)

	if rank["utils.js"] <= rank["main.js"] {
		t.Errorf("rank[utils.js] = %v, rank[main.js] = %v, want utils.js higher", rank["utils.js"], rank["main.js"])
	}
}

func TestMaxNormalize(t *testing.T) {
	in := map[string]float64{"a": 0.5, "b": 0.25, "c": 1.0}
	out := MaxNormalize(in)

	if out["c"] != 1.0 {
		t.Errorf("out[c] = %v, want 1.0", out["c"])
	}
	if out["a"] != 0.5 {
		t.Errorf("out[a] = %v, want 0.5", out["a"])
	}
}

func TestMaxNormalizeEmptyMap(t *testing.T) {
	out := MaxNormalize(map[string]float64{})
	if len(out) != 0 {
		t.Errorf("out = %v, want empty", out)
	}
}
