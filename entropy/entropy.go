// Package entropy computes the structural-heterogeneity terms of the Rs
// metric: a degree-class Shannon entropy over radius-limited neighborhood
// weights, and the per-edge structural penalty weights used by the
// flow-entropy variant.
//
// The entropy is purely topological: it looks at structural degree, never
// at conductance. Each node receives an integer weight — the total degree
// mass within the configured hop radius — nodes are binned by exact weight,
// and H = −Σ p_k·ln(p_k) over the bin frequencies. A perfectly uniform
// structure (all nodes in one bin), a single node, and the empty graph all
// score 0; heterogeneity raises H. H is always ≥ 0 and the computation
// never fails on disconnected or empty input.
//
// Determinism: nodes are visited in the view's ID-sorted order and bins are
// accumulated in ascending weight order, so identical snapshots produce
// bit-identical entropy.
package entropy

import (
	"errors"
	"math"
	"sort"

	"github.com/vasculab/angio/core"
)

// ErrNilView indicates a nil core.GraphView was supplied.
var ErrNilView = errors.New("entropy: view is nil")

// DefaultRadius is the neighborhood hop radius for structural weights.
// Radius 0 degenerates to the node's own degree.
const DefaultRadius = 1

const panicRadiusInvalid = "entropy: WithRadius: radius must be >= 0"

// Option configures the entropy computation.
type Option func(*options)

type options struct {
	radius int
}

// WithRadius sets the neighborhood hop radius. Panics on negative values
// (programmer error).
func WithRadius(r int) Option {
	if r < 0 {
		panic(panicRadiusInvalid)
	}

	return func(o *options) { o.radius = r }
}

func gatherOptions(opts ...Option) options {
	o := options{radius: DefaultRadius}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Weights returns the per-node structural weight: the sum of structural
// degrees over all nodes within hop-distance ≤ radius (the node included).
//
// Errors: ErrNilView.
// Complexity: O(V·(V+E)) worst case for radius ≥ 1; O(V+E) for radius 0.
func Weights(src core.GraphView, opts ...Option) (map[string]int, error) {
	if src == nil {
		return nil, ErrNilView
	}
	o := gatherOptions(opts...)

	nodes := src.Nodes()
	deg := make(map[string]int, len(nodes))
	adj := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		deg[n.ID] = 0
	}
	for _, e := range src.Edges() {
		deg[e.U]++
		deg[e.V]++
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}

	out := make(map[string]int, len(nodes))
	for _, n := range nodes {
		out[n.ID] = ballDegreeSum(n.ID, o.radius, deg, adj)
	}

	return out, nil
}

// ballDegreeSum sums deg over the closed radius-ball around start.
func ballDegreeSum(start string, radius int, deg map[string]int, adj map[string][]string) int {
	if radius == 0 {
		return deg[start]
	}

	sum := deg[start]
	seen := map[string]bool{start: true}
	frontier := []string{start}
	for hop := 0; hop < radius && len(frontier) > 0; hop++ {
		var next []string
		for _, cur := range frontier {
			for _, nb := range adj[cur] {
				if !seen[nb] {
					seen[nb] = true
					sum += deg[nb]
					next = append(next, nb)
				}
			}
		}
		frontier = next
	}

	return sum
}

// Entropy returns the Shannon entropy (natural log) of the structural
// weight distribution of the view. Empty views and single-bin (uniform)
// structures score 0; the value is always ≥ 0 and at most ln(V).
//
// Errors: ErrNilView.
func Entropy(src core.GraphView, opts ...Option) (float64, error) {
	weights, err := Weights(src, opts...)
	if err != nil {
		return 0, err
	}
	n := len(weights)
	if n == 0 {
		return 0, nil
	}

	bins := make(map[int]int)
	for _, w := range weights {
		bins[w]++
	}
	// Ascending-weight accumulation keeps the float sum bit-stable.
	keys := make([]int, 0, len(bins))
	for k := range bins {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	h := 0.0
	total := float64(n)
	for _, k := range keys {
		p := float64(bins[k]) / total
		h -= p * math.Log(p)
	}
	if h < 0 {
		h = 0 // guard against -0 drift on single-bin inputs
	}

	return h, nil
}

// Penalties returns the per-edge structural penalty weight
//
//	w_uv = 1 − (|d_u − d̄| + |d_v − d̄|) / (2·N·d̄)
//
// where d̄ is the mean structural degree of the view. Edges between
// average-degree junctions weigh 1; attachment to structural outliers
// shrinks the weight. An empty view yields an empty map; a view whose mean
// degree is 0 cannot have edges, so every returned weight is well-defined.
//
// Errors: ErrNilView.
// Complexity: O(V + E).
func Penalties(src core.GraphView) (map[string]float64, error) {
	if src == nil {
		return nil, ErrNilView
	}

	n := src.NodeCount()
	edges := src.Edges()
	if n == 0 || len(edges) == 0 {
		return map[string]float64{}, nil
	}

	deg := make(map[string]int, n)
	for _, e := range edges {
		deg[e.U]++
		deg[e.V]++
	}
	totalDeg := 0
	for _, d := range deg {
		totalDeg += d
	}
	mean := float64(totalDeg) / float64(n)

	out := make(map[string]float64, len(edges))
	denom := 2 * float64(n) * mean
	for _, e := range edges {
		num := math.Abs(float64(deg[e.U])-mean) + math.Abs(float64(deg[e.V])-mean)
		out[e.ID] = 1 - num/denom
	}

	return out, nil
}
