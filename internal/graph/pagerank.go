package graph

const (
	damping       = 0.85
	maxIterations = 100
	convergenceL1 = 1e-6
)

// Rank computes the stationary file-importance distribution over g via
// power iteration: damping factor 0.85, uniform teleport over every known
// node (including zero-edge files), dangling nodes redistributing their
// mass uniformly, stopping when the L1 change between iterations drops
// below 1e-6 or after 100 iterations.
func Rank(g *Graph) map[string]float64 {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return map[string]float64{}
	}

	index := make(map[string]int, n)
	for i, node := range nodes {
		index[node] = i
	}

	outWeight := make([]float64, n)
	type edge struct {
		from, to int
		weight   float64
	}
	var edges []edge
	for key, w := range g.edges {
		u, uok := index[key[0]]
		v, vok := index[key[1]]
		if !uok || !vok {
			continue
		}
		edges = append(edges, edge{from: u, to: v, weight: w})
		outWeight[u] += w
	}

	rank := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}
	teleport := (1 - damping) / float64(n)

	for iter := 0; iter < maxIterations; iter++ {
		next := make([]float64, n)
		for i := range next {
			next[i] = teleport
		}

		var danglingMass float64
		for i, r := range rank {
			if outWeight[i] == 0 {
				danglingMass += r
			}
		}
		if danglingMass > 0 {
			share := damping * danglingMass / float64(n)
			for i := range next {
				next[i] += share
			}
		}

		for _, e := range edges {
			next[e.to] += damping * rank[e.from] * (e.weight / outWeight[e.from])
		}

		var delta float64
		for i := range next {
			d := next[i] - rank[i]
			if d < 0 {
				d = -d
			}
			delta += d
		}

		rank = next
		if delta < convergenceL1 {
			break
		}
	}

	out := make(map[string]float64, n)
	for i, node := range nodes {
		out[node] = rank[i]
	}
	return out
}

// MaxNormalize rescales m so its maximum value is 1.0. An all-zero map is
// returned unchanged (avoids division by zero when the graph has no nodes
// or every rank collapsed to zero, which cannot happen with teleport mass
// present but is guarded defensively).
func MaxNormalize(m map[string]float64) map[string]float64 {
	var max float64
	for _, v := range m {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return m
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v / max
	}
	return out
}
