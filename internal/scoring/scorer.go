// Package scoring turns resolved references and a file-rank vector into the
// final per-definition ordering key.
package scoring

import (
	"github.com/kantord/cruxlines/internal/index"
	"github.com/kantord/cruxlines/pkg/types"
)

// Score computes local_score and score for every definition in defs, given
// every resolved reference and the file-rank vector. The 1/m collision
// factor uses idx.CollisionCount(name), so defs sharing a name share the
// same divisor regardless of which file they live in.
func Score(defs []types.Definition, resolved []index.Resolved, idx *index.Index, fileRank map[string]float64) []types.ScoredDefinition {
	refsByName := make(map[string][]index.Resolved)
	for _, r := range resolved {
		refsByName[r.Ref.Name] = append(refsByName[r.Ref.Name], r)
	}

	out := make([]types.ScoredDefinition, 0, len(defs))
	for _, d := range defs {
		m := idx.CollisionCount(d.Name)
		if m == 0 {
			m = 1
		}

		var local float64
		var locs []types.Location
		for _, r := range refsByName[d.Name] {
			local += fileRank[r.Ref.File]
			locs = append(locs, r.Ref.Location)
		}
		local /= float64(m)

		rank := fileRank[d.File]
		out = append(out, types.ScoredDefinition{
			Def:        d,
			LocalScore: local,
			FileRank:   rank,
			Score:      local * rank,
			Refs:       dedupLocations(locs),
		})
	}
	return out
}

func dedupLocations(locs []types.Location) []types.Location {
	seen := make(map[types.Location]bool, len(locs))
	out := make([]types.Location, 0, len(locs))
	for _, l := range locs {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
