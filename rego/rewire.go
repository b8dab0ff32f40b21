// File: rewire.go
// Role: the classic REGO procedure — seeded degree-preserving double edge
//       swaps on a clone, accepting only connectivity-safe Rs improvements.

package rego

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/vasculab/angio/core"
	"github.com/vasculab/angio/rs"
	"github.com/vasculab/angio/spectral"
)

// swapAttempts bounds the random pair sampling per iteration.
const swapAttempts = 100

// Rewire runs the rewiring variant of REGO on a clone of the whole graph:
// it repeatedly samples two non-adjacent removable segments (a,b) and
// (c,d), rewires them to (a,d) and (c,b) — preserving every junction's
// degree — and keeps the swap only when the graph stays connected and the
// whole-graph flow-entropy Rs improves.
//
// The input graph is never mutated. The returned history starts with the
// initial Rs and appends one entry per accepted swap; the swap sequence is
// reproducible for a fixed seed (WithSeed) and iteration bound
// (WithMaxIter). Context cancellation between iterations returns the
// current clone and history with a nil error.
//
// Errors: ErrNilGraph; rs.ErrDisconnected when the input graph is not
// connected (the flow-entropy precondition); wrapped spectral errors on
// degenerate input.
func Rewire(ctx context.Context, g *core.Graph, opts ...Option) (*core.Graph, []float64, error) {
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if ctx == nil {
		ctx = context.Background()
	}
	o := gatherOptions(opts...)

	clone := g.Clone()
	cur, err := flowRs(clone, o)
	if err != nil {
		return nil, nil, fmt.Errorf("rego: rewire: %w", err)
	}
	history := []float64{cur}

	rng := rand.New(rand.NewSource(o.seed))
	for iter := 0; iter < o.maxIter; iter++ {
		if ctx.Err() != nil {
			break
		}

		e1, e2, ok := sampleSwapPair(clone, rng)
		if !ok {
			continue
		}

		id1, id2, err := applySwap(clone, e1, e2)
		if err != nil {
			return nil, nil, fmt.Errorf("rego: rewire: %w", err)
		}

		if !clone.IsConnected() {
			if err := revertSwap(clone, e1, e2, id1, id2); err != nil {
				return nil, nil, fmt.Errorf("rego: rewire: %w", err)
			}
			continue
		}

		next, err := flowRs(clone, o)
		if err != nil {
			return nil, nil, fmt.Errorf("rego: rewire: %w", err)
		}
		if next <= cur {
			if err := revertSwap(clone, e1, e2, id1, id2); err != nil {
				return nil, nil, fmt.Errorf("rego: rewire: %w", err)
			}
			continue
		}

		cur = next
		history = append(history, cur)
		if o.logger != nil {
			o.logger.Info("swap accepted",
				"iteration", iter,
				"rewired", []string{e1.ID, e2.ID},
				"rs", cur)
		}
	}

	return clone, history, nil
}

// flowRs computes the whole-graph flow-entropy Rs from a fresh operator.
func flowRs(g *core.Graph, o options) (float64, error) {
	op, err := spectral.NewOperator(g, o.spectralOpts()...)
	if err != nil {
		return 0, err
	}

	return rs.FlowEntropy(g, op)
}

// sampleSwapPair draws two distinct removable segments sharing no junction
// whose rewired replacements do not already exist. Gives up after a fixed
// number of attempts (the iteration is then skipped, as in the original
// procedure).
func sampleSwapPair(g *core.Graph, rng *rand.Rand) (e1, e2 core.Edge, ok bool) {
	edges := g.Edges()
	if len(edges) < 2 {
		return core.Edge{}, core.Edge{}, false
	}

	for attempt := 0; attempt < swapAttempts; attempt++ {
		a := edges[rng.Intn(len(edges))]
		b := edges[rng.Intn(len(edges))]
		if a.ID == b.ID || !a.Removable || !b.Removable {
			continue
		}
		if a.U == b.U || a.U == b.V || a.V == b.U || a.V == b.V {
			continue // adjacent segments cannot swap without a loop
		}
		if g.HasEdge(a.U, b.V) || g.HasEdge(b.U, a.V) {
			continue // rewiring would create a multi-edge
		}

		return a, b, true
	}

	return core.Edge{}, core.Edge{}, false
}

// applySwap rewires (a.U,a.V) and (b.U,b.V) into (a.U,b.V) and (b.U,a.V),
// each replacement inheriting its predecessor's conductance.
func applySwap(g *core.Graph, a, b core.Edge) (id1, id2 string, err error) {
	if err = g.RemoveEdge(a.ID); err != nil {
		return "", "", err
	}
	if err = g.RemoveEdge(b.ID); err != nil {
		return "", "", err
	}
	if id1, err = g.AddEdge(a.U, b.V, a.Conductance); err != nil {
		return "", "", err
	}
	if id2, err = g.AddEdge(b.U, a.V, b.Conductance); err != nil {
		return "", "", err
	}

	return id1, id2, nil
}

// revertSwap restores the original segments after a rejected swap.
func revertSwap(g *core.Graph, a, b core.Edge, id1, id2 string) error {
	if err := g.RemoveEdge(id1); err != nil {
		return err
	}
	if err := g.RemoveEdge(id2); err != nil {
		return err
	}
	if _, err := g.AddEdge(a.U, a.V, a.Conductance); err != nil {
		return err
	}
	if _, err := g.AddEdge(b.U, b.V, b.Conductance); err != nil {
		return err
	}

	return nil
}
