// File: operator.go
// Role: Operator construction (node index, components, per-component
//       pseudoinverse) and read queries (Resistance, Aggregate,
//       EdgeResistances).
// Determinism:
//   - Node index follows the view's ID-sorted order; edge ingestion follows
//     Seq order; all pair loops are fixed a→b order.

package spectral

import (
	"fmt"
	"math"
	"sort"

	"github.com/vasculab/angio/core"
	"github.com/vasculab/angio/matrix"
)

// component is one connected component of the view under usable edges.
// pinv is nil for singleton components (no pairs to resist).
type component struct {
	members []int       // global node indices, asc
	local   map[int]int // global index → local index
	pinv    *matrix.Dense
}

// Operator is a spectral-resistance view of one graph snapshot. It is
// immutable between Removed/Rebuild calls and safe for concurrent reads.
type Operator struct {
	src core.GraphView
	rev uint64

	ids []string       // view nodes, ID asc
	idx map[string]int // node ID → global index

	comp  []int // global index → component ordinal
	comps []*component

	usable  map[string]core.Edge // edges carried into the Laplacian
	clamped map[string]struct{}  // edges dropped by the epsilon policy
	adj     []map[int]string     // global index → neighbor index → edge ID

	eps  float64
	mode AggregateMode
}

// NewOperator builds an Operator from the view's current state.
//
// Errors: ErrNilView; ErrSingularInput when the view has no usable edges or
// a component's shifted Laplacian cannot be inverted (the component ordinal
// is included in the wrapped error).
// Complexity: O(Σ nᵢ³) over components — the dominant cost of the pipeline.
func NewOperator(src core.GraphView, opts ...Option) (*Operator, error) {
	if src == nil {
		return nil, ErrNilView
	}
	o := gatherOptions(opts...)
	op := &Operator{src: src, eps: o.eps, mode: o.mode}
	if err := op.build(); err != nil {
		return nil, err
	}

	return op, nil
}

// build (re)derives the full operator state from the backing view.
func (o *Operator) build() error {
	rev := o.src.Revision()
	nodes := o.src.Nodes()
	edges := o.src.Edges()

	o.ids = make([]string, len(nodes))
	o.idx = make(map[string]int, len(nodes))
	for i, n := range nodes {
		o.ids[i] = n.ID
		o.idx[n.ID] = i
	}

	o.usable = make(map[string]core.Edge, len(edges))
	o.clamped = make(map[string]struct{})
	o.adj = make([]map[int]string, len(nodes))
	for i := range o.adj {
		o.adj[i] = make(map[int]string)
	}
	for _, e := range edges {
		if e.Conductance < o.eps {
			// Near-zero conductance would ill-condition the inversion;
			// drop it and surface the count via Clamped().
			o.clamped[e.ID] = struct{}{}
			continue
		}
		i, j := o.idx[e.U], o.idx[e.V]
		o.usable[e.ID] = e
		o.adj[i][j] = e.ID
		o.adj[j][i] = e.ID
	}
	if len(o.usable) == 0 {
		return fmt.Errorf("NewOperator: view has no usable edges: %w", ErrSingularInput)
	}

	if err := o.buildComponents(); err != nil {
		return err
	}
	o.rev = rev

	return nil
}

// buildComponents splits the node index into connected components and
// computes one pseudoinverse per non-singleton component.
func (o *Operator) buildComponents() error {
	n := len(o.ids)
	o.comp = make([]int, n)
	for i := range o.comp {
		o.comp[i] = -1
	}
	o.comps = o.comps[:0]

	for start := 0; start < n; start++ {
		if o.comp[start] >= 0 {
			continue
		}
		ord := len(o.comps)
		c := &component{local: make(map[int]int)}
		queue := []int{start}
		o.comp[start] = ord
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			c.local[cur] = len(c.members)
			c.members = append(c.members, cur)
			// Deterministic expansion: neighbors in ascending index order.
			for nb := 0; nb < n; nb++ {
				if _, ok := o.adj[cur][nb]; ok && o.comp[nb] < 0 {
					o.comp[nb] = ord
					queue = append(queue, nb)
				}
			}
		}
		o.comps = append(o.comps, c)
	}

	for ord, c := range o.comps {
		if len(c.members) < 2 {
			continue
		}
		pinv, err := o.pseudoinverse(c, "")
		if err != nil {
			return fmt.Errorf("component %d: %w", ord, err)
		}
		c.pinv = pinv
	}

	return nil
}

// pseudoinverse computes L⁺ for a component, optionally excluding one edge
// (skipID — the preview fallback's hypothetical topology).
//
// L⁺ = (L + J/m)⁻¹ − J/m with m = |component|; L + J/m is SPD on a
// connected component, so the deterministic no-pivot inverse is safe. A
// zero pivot therefore means genuinely degenerate input and is wrapped as
// ErrSingularInput by the caller.
func (o *Operator) pseudoinverse(c *component, skipID string) (*matrix.Dense, error) {
	m := len(c.members)
	lap, err := matrix.NewDense(m, m)
	if err != nil {
		return nil, err
	}
	shift := 1.0 / float64(m)

	// Seq-ordered ingestion keeps the float accumulation bit-stable; map
	// iteration order must never reach the numerics.
	edges := make([]core.Edge, 0, len(o.usable))
	for id, e := range o.usable {
		if id == skipID {
			continue
		}
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Seq < edges[j].Seq })

	for _, e := range edges {
		gi, okU := c.local[o.idx[e.U]]
		gj, okV := c.local[o.idx[e.V]]
		if !okU || !okV {
			continue // edge belongs to another component
		}
		addLaplacianEdge(lap, gi, gj, e.Conductance)
	}
	addConstant(lap, shift)

	inv, err := matrix.Inverse(lap)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrSingularInput)
	}
	addConstant(inv, -shift)

	return inv, nil
}

// addLaplacianEdge accumulates one weighted edge into a local Laplacian.
func addLaplacianEdge(lap *matrix.Dense, i, j int, c float64) {
	ri, rj := lap.Row(i), lap.Row(j)
	ri[i] += c
	rj[j] += c
	ri[j] -= c
	rj[i] -= c
}

// addConstant adds v to every entry of m.
func addConstant(m *matrix.Dense, v float64) {
	for i := 0; i < m.Rows(); i++ {
		row := m.Row(i)
		for j := range row {
			row[j] += v
		}
	}
}

// stale reports whether the backing view has mutated past the snapshot.
func (o *Operator) stale() error {
	if o.src.Revision() != o.rev {
		return ErrStaleOperator
	}

	return nil
}

// Revision returns the view revision this operator describes.
func (o *Operator) Revision() uint64 { return o.rev }

// Clamped returns the number of edges dropped by the epsilon policy — the
// "near-singular input" warning surface (reported, never fatal).
func (o *Operator) Clamped() int { return len(o.clamped) }

// Resistance returns the effective resistance between two view nodes.
// Disconnected pairs report +Inf; R(u,u) = 0. Tiny negative values from
// floating-point drift are clamped to 0.
//
// Errors: ErrStaleOperator, ErrUnknownNode.
// Complexity: O(1).
func (o *Operator) Resistance(u, v string) (float64, error) {
	if err := o.stale(); err != nil {
		return 0, err
	}
	gi, ok := o.idx[u]
	if !ok {
		return 0, fmt.Errorf("Resistance(%q,%q): %w", u, v, ErrUnknownNode)
	}
	gj, ok := o.idx[v]
	if !ok {
		return 0, fmt.Errorf("Resistance(%q,%q): %w", u, v, ErrUnknownNode)
	}

	return o.resistanceByIndex(gi, gj), nil
}

// resistanceByIndex is the lock-free hot path shared by the aggregate and
// per-edge queries. Indices must be valid.
func (o *Operator) resistanceByIndex(gi, gj int) float64 {
	if gi == gj {
		return 0
	}
	if o.comp[gi] != o.comp[gj] {
		return math.Inf(1)
	}
	c := o.comps[o.comp[gi]]
	li, lj := c.local[gi], c.local[gj]
	ri, rj := c.pinv.Row(li), c.pinv.Row(lj)
	r := ri[li] + rj[lj] - 2*ri[lj]
	if r < 0 {
		r = 0
	}

	return r
}

// Aggregate reduces the pairwise resistance of the whole view to a single
// number (mean or sum per configuration). A disconnected view with ≥ 2
// nodes aggregates to +Inf; fewer than 2 nodes aggregate to 0.
//
// Errors: ErrStaleOperator.
// Complexity: O(n²).
func (o *Operator) Aggregate() (float64, error) {
	if err := o.stale(); err != nil {
		return 0, err
	}

	return o.aggregateLocked(), nil
}

func (o *Operator) aggregateLocked() float64 {
	n := len(o.ids)
	if n < 2 {
		return 0
	}
	if len(o.comps) > 1 {
		return math.Inf(1)
	}

	sum := 0.0
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			sum += o.resistanceByIndex(a, b)
		}
	}
	if o.mode == AggregateMean {
		return sum / float64(n*(n-1)/2)
	}

	return sum
}

// EdgeResistances returns Ω_uv for every usable edge of the view, keyed by
// edge ID. Both endpoints of a usable edge always share a component.
//
// Errors: ErrStaleOperator.
// Complexity: O(E).
func (o *Operator) EdgeResistances() (map[string]float64, error) {
	if err := o.stale(); err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(o.usable))
	for id, e := range o.usable {
		out[id] = o.resistanceByIndex(o.idx[e.U], o.idx[e.V])
	}

	return out, nil
}

// Synced advances the operator's snapshot revision after a graph mutation
// that provably did not touch this operator's view (the caller asserts
// this — e.g. the optimizer removing an edge that belongs only to the other
// region's view, which advances the shared revision counter without
// changing this view's edge set).
//
// Errors: ErrStaleOperator when newRev is not the view's current revision.
func (o *Operator) Synced(newRev uint64) error {
	if o.src.Revision() != newRev {
		return fmt.Errorf("Synced(%d): view at %d: %w", newRev, o.src.Revision(), ErrStaleOperator)
	}
	o.rev = newRev

	return nil
}

// Rebuild rederives the operator from the view's current state. This is the
// documented full-recompute fallback after a disconnecting removal or any
// mutation outside the rank-one path.
func (o *Operator) Rebuild() error {
	return o.build()
}
