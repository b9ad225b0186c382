// Package emit sorts scored definitions and writes them as tab-separated
// rows.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kantord/cruxlines/pkg/types"
)

// Sort stable-sorts defs by score desc, local_score desc, file_rank desc,
// (path, line, col) asc, name asc -- the tie-break chain in the emitter
// contract.
func Sort(defs []types.ScoredDefinition) {
	sort.SliceStable(defs, func(i, j int) bool {
		a, b := defs[i], defs[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.LocalScore != b.LocalScore {
			return a.LocalScore > b.LocalScore
		}
		if a.FileRank != b.FileRank {
			return a.FileRank > b.FileRank
		}
		if a.Def.Location.Path != b.Def.Location.Path {
			return a.Def.Location.Path < b.Def.Location.Path
		}
		if a.Def.Location.Line != b.Def.Location.Line {
			return a.Def.Location.Line < b.Def.Location.Line
		}
		if a.Def.Location.Col != b.Def.Location.Col {
			return a.Def.Location.Col < b.Def.Location.Col
		}
		return a.Def.Name < b.Def.Name
	})
}

// Write emits the sorted rows to w. When withRefs is set, each row's
// deduplicated, lexicographically sorted reference locations are appended
// as trailing tab-separated fields.
func Write(w io.Writer, defs []types.ScoredDefinition, withRefs bool) error {
	bw := bufio.NewWriter(w)
	for _, d := range defs {
		fields := []string{
			formatNumber(d.Score),
			formatNumber(d.LocalScore),
			formatNumber(d.FileRank),
			d.Def.Name,
			d.Def.Location.String(),
		}
		if withRefs {
			refs := sortedRefLocations(d.Refs)
			for _, r := range refs {
				fields = append(fields, r.String())
			}
		}
		if _, err := fmt.Fprintln(bw, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func sortedRefLocations(locs []types.Location) []types.Location {
	out := make([]types.Location, len(locs))
	copy(out, locs)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
	deduped := make([]types.Location, 0, len(out))
	for _, l := range out {
		if len(deduped) > 0 && deduped[len(deduped)-1] == l {
			continue
		}
		deduped = append(deduped, l)
	}
	return deduped
}

// formatNumber renders v with six significant digits: fixed notation for
// values in [1e-4, 1e+6), scientific notation otherwise. Zero is always
// rendered as "0".
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e-4 && abs < 1e6 {
		return strconv.FormatFloat(v, 'g', 6, 64)
	}
	return strconv.FormatFloat(v, 'e', 5, 64)
}
