// File: update.go
// Role: incremental edge-removal path: connectivity probe, non-mutating
//       PreviewRemoval (rank-one, O(n²)), and the in-place Removed downdate
//       with the full-rebuild fallback on disconnection.

package spectral

import (
	"fmt"
	"math"

	"github.com/vasculab/angio/core"
	"github.com/vasculab/angio/matrix"
)

// Preview describes the spectral effect of removing one edge without
// committing anything.
type Preview struct {
	// EdgeID is the candidate edge.
	EdgeID string

	// Disconnects reports whether the removal would split the edge's
	// component (making the incremental downdate inapplicable).
	Disconnects bool

	// Aggregate is the post-removal aggregate resistance of the view.
	Aggregate float64
}

// PreviewRemoval evaluates the aggregate resistance the view would have
// after removing the given edge. The operator and the graph are not
// mutated; any number of previews may run concurrently.
//
// Non-bridge removals use the rank-one resistance identity
// R'(a,b) = R(a,b) + f·(w_a − w_b)², w = L⁺(e_u − e_v), f = c/(1 − c·R(u,v)),
// costing O(n²) instead of a fresh O(n³) pseudoinverse. Bridge removals
// yield +Inf (the view disconnects). Edges dropped by the epsilon policy
// preview to the unchanged aggregate.
//
// Errors: ErrStaleOperator, ErrUnknownEdge.
func (o *Operator) PreviewRemoval(edgeID string) (Preview, error) {
	if err := o.stale(); err != nil {
		return Preview{}, err
	}
	if _, dropped := o.clamped[edgeID]; dropped {
		return Preview{EdgeID: edgeID, Aggregate: o.aggregateLocked()}, nil
	}
	e, ok := o.usable[edgeID]
	if !ok {
		return Preview{}, fmt.Errorf("PreviewRemoval(%q): %w", edgeID, ErrUnknownEdge)
	}

	gi, gj := o.idx[e.U], o.idx[e.V]
	if !o.connectedWithout(gi, gj, edgeID) {
		// Removal splits the component: with ≥ 2 view nodes some pair loses
		// every path, so the aggregate saturates at +Inf.
		return Preview{EdgeID: edgeID, Disconnects: true, Aggregate: math.Inf(1)}, nil
	}
	if len(o.comps) > 1 {
		// Already disconnected: removal cannot reconnect anything.
		return Preview{EdgeID: edgeID, Aggregate: math.Inf(1)}, nil
	}

	c := o.comps[o.comp[gi]]
	li, lj := c.local[gi], c.local[gj]
	ruv := o.resistanceByIndex(gi, gj)
	denom := 1 - e.Conductance*ruv
	if math.Abs(denom) <= o.eps {
		// Numerically a bridge even though the probe found a path; fall
		// back to a scratch pseudoinverse of the trimmed component.
		return o.previewFull(e, c)
	}
	factor := e.Conductance / denom

	w := columnDiff(c.pinv, li, lj)
	n := len(o.ids)
	sum := 0.0
	var r float64
	for a := 0; a < n; a++ {
		la := c.local[a]
		ra := c.pinv.Row(la)
		for b := a + 1; b < n; b++ {
			lb := c.local[b]
			r = ra[la] + c.pinv.Row(lb)[lb] - 2*ra[lb]
			r += factor * (w[la] - w[lb]) * (w[la] - w[lb])
			if r < 0 {
				r = 0
			}
			sum += r
		}
	}
	if o.mode == AggregateMean {
		sum /= float64(n * (n - 1) / 2)
	}

	return Preview{EdgeID: edgeID, Aggregate: sum}, nil
}

// previewFull recomputes the component pseudoinverse from scratch with the
// edge excluded — the rare ill-conditioned path.
func (o *Operator) previewFull(e core.Edge, c *component) (Preview, error) {
	pinv, err := o.pseudoinverse(c, e.ID)
	if err != nil {
		return Preview{}, err
	}

	n := len(o.ids)
	sum := 0.0
	var r float64
	for a := 0; a < n; a++ {
		la := c.local[a]
		ra := pinv.Row(la)
		for b := a + 1; b < n; b++ {
			lb := c.local[b]
			r = ra[la] + pinv.Row(lb)[lb] - 2*ra[lb]
			if r < 0 {
				r = 0
			}
			sum += r
		}
	}
	if o.mode == AggregateMean {
		sum /= float64(n * (n - 1) / 2)
	}

	return Preview{EdgeID: e.ID, Aggregate: sum}, nil
}

// Removed resynchronizes the operator after the caller removed the edge
// from the backing graph. newRev must be the graph revision produced by
// that removal — the revision contract makes cache validity explicit.
//
// Non-bridge removals apply the rank-one downdate in place (O(n²)); bridge
// removals and ill-conditioned denominators trigger a full rebuild from the
// view's current state (O(n³) fallback, documented in the package docs).
//
// Errors: ErrStaleOperator (revision mismatch), ErrUnknownEdge,
// ErrSingularInput (rebuild found no usable edges left).
func (o *Operator) Removed(e core.Edge, newRev uint64) error {
	if o.src.Revision() != newRev {
		return fmt.Errorf("Removed(%q): revision %d != view %d: %w",
			e.ID, newRev, o.src.Revision(), ErrStaleOperator)
	}
	if _, dropped := o.clamped[e.ID]; dropped {
		// Epsilon-dropped edges never entered the Laplacian.
		delete(o.clamped, e.ID)
		o.rev = newRev

		return nil
	}
	old, ok := o.usable[e.ID]
	if !ok {
		return fmt.Errorf("Removed(%q): %w", e.ID, ErrUnknownEdge)
	}

	gi, gj := o.idx[old.U], o.idx[old.V]
	if !o.connectedWithout(gi, gj, e.ID) {
		return o.build()
	}

	c := o.comps[o.comp[gi]]
	li, lj := c.local[gi], c.local[gj]
	ruv := o.resistanceByIndex(gi, gj)
	denom := 1 - old.Conductance*ruv
	if math.Abs(denom) <= o.eps {
		return o.build()
	}

	w := columnDiff(c.pinv, li, lj)
	if err := matrix.RankOneUpdate(c.pinv, w, old.Conductance/denom); err != nil {
		return err
	}
	delete(o.usable, e.ID)
	delete(o.adj[gi], gj)
	delete(o.adj[gj], gi)
	o.rev = newRev

	return nil
}

// connectedWithout reports whether gi still reaches gj when the given edge
// is ignored.
// Complexity: O(V + E).
func (o *Operator) connectedWithout(gi, gj int, skipEdgeID string) bool {
	if gi == gj {
		return true
	}
	seen := make([]bool, len(o.ids))
	seen[gi] = true
	queue := []int{gi}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for nb, eid := range o.adj[cur] {
			if eid == skipEdgeID || seen[nb] {
				continue
			}
			if nb == gj {
				return true
			}
			seen[nb] = true
			queue = append(queue, nb)
		}
	}

	return false
}

// columnDiff returns w with w_k = p[k][i] − p[k][j].
func columnDiff(p *matrix.Dense, i, j int) []float64 {
	n := p.Rows()
	w := make([]float64, n)
	for k := 0; k < n; k++ {
		row := p.Row(k)
		w[k] = row[i] - row[j]
	}

	return w
}
