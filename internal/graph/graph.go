// Package graph builds the directed, weighted file-reference graph and
// computes the stationary file-importance distribution over it.
package graph

import (
	"sort"

	"github.com/kantord/cruxlines/internal/index"
)

// edgeKey identifies a directed edge u -> v by file path pair.
type edgeKey [2]string

// Graph is a directed weighted multigraph over file paths, approximated as
// a sparse edge-weight map plus the full node set (every known file, even
// those with no edges, so teleport mass has somewhere to land).
type Graph struct {
	nodes map[string]bool
	edges map[edgeKey]float64
}

// New builds a Graph over every file in files and adds/increments edges for
// each resolved reference pointing at a definition set in another file.
// Self-references (u == v) do not contribute an edge, per the data model.
func New(files []string, resolved []index.Resolved) *Graph {
	g := &Graph{
		nodes: make(map[string]bool, len(files)),
		edges: make(map[edgeKey]float64),
	}
	for _, f := range files {
		g.nodes[f] = true
	}

	for _, r := range resolved {
		u := r.Ref.File
		g.nodes[u] = true

		targets := make(map[string]int)
		for _, d := range r.Defs {
			g.nodes[d.File] = true
			targets[d.File]++
		}

		n := len(r.Defs)
		if n == 0 {
			continue
		}
		weight := 1.0 / float64(n)

		for v, count := range targets {
			if v == u {
				continue
			}
			key := edgeKey{u, v}
			g.edges[key] += weight * float64(count)
		}
	}

	return g
}

// Nodes returns every file known to the graph, sorted lexicographically for
// determinism.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// OutEdges returns the weighted out-edges of u, keyed by destination file.
func (g *Graph) OutEdges(u string) map[string]float64 {
	out := make(map[string]float64)
	for k, w := range g.edges {
		if k[0] == u {
			out[k[1]] = w
		}
	}
	return out
}

// Weight returns the edge weight u -> v, or 0 if no such edge exists.
func (g *Graph) Weight(u, v string) float64 {
	return g.edges[edgeKey{u, v}]
}
