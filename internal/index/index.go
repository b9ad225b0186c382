// Package index builds the flat name-to-definitions multimap and resolves
// references against it. Resolution is name-based only -- no scope
// analysis -- per the design notes on collision smoothing.
package index

import "github.com/kantord/cruxlines/pkg/types"

// Index maps a definition name to every Definition sharing that name across
// the whole analyzed file set.
type Index struct {
	defs map[string][]types.Definition
}

// New builds an Index from every definition extracted across all files.
func New(defs []types.Definition) *Index {
	idx := &Index{defs: make(map[string][]types.Definition)}
	for _, d := range defs {
		idx.defs[d.Name] = append(idx.defs[d.Name], d)
	}
	return idx
}

// Lookup returns every Definition sharing name n, and whether the name is
// resolvable (the bucket is non-empty).
func (idx *Index) Lookup(n string) ([]types.Definition, bool) {
	bucket, ok := idx.defs[n]
	return bucket, ok && len(bucket) > 0
}

// CollisionCount returns the number of definitions sharing name n.
func (idx *Index) CollisionCount(n string) int {
	return len(idx.defs[n])
}

// Names returns every distinct definition name held by the index, each
// paired with its full definition bucket.
func (idx *Index) Names() map[string][]types.Definition {
	return idx.defs
}

// Resolved pairs a reference with the set of definitions its name resolves
// to. Only present when the name is resolvable.
type Resolved struct {
	Ref  types.Reference
	Defs []types.Definition
}

// Resolve walks every reference and drops the ones whose name has no known
// definition, per the build step in the resolver contract.
func Resolve(idx *Index, refs []types.Reference) []Resolved {
	var out []Resolved
	for _, r := range refs {
		defs, ok := idx.Lookup(r.Name)
		if !ok {
			continue
		}
		out = append(out, Resolved{Ref: r, Defs: defs})
	}
	return out
}
