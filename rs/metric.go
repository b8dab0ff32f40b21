// File: metric.go
// Role: Score value object, Compute (blended metric), FlowEntropy
//       (edge-level variant).

package rs

import (
	"fmt"
	"math"

	"github.com/vasculab/angio/core"
	"github.com/vasculab/angio/entropy"
	"github.com/vasculab/angio/spectral"
)

// Score is an immutable Rs snapshot of one graph view at one revision.
type Score struct {
	// SpectralTerm is the normalized aggregate effective resistance, in
	// [0,1]; a disconnected view saturates at 1.
	SpectralTerm float64

	// EntropyTerm is H/ln(n), in [0,1]; 0 when the view has < 2 nodes.
	EntropyTerm float64

	// Combined is α·SpectralTerm + (1−α)·EntropyTerm.
	Combined float64

	// Revision is the view revision the score describes.
	Revision uint64
}

// Compute scores the view through the given operator. The operator must
// have been built from the same view and be current (the revision contract
// is enforced by the spectral layer).
//
// Determinism: equal revisions yield bit-identical scores.
//
// Errors: ErrNilView, ErrNilOperator, spectral.ErrStaleOperator.
// Complexity: O(n²) — dominated by the aggregate and entropy passes.
func Compute(src core.GraphView, op *spectral.Operator, opts ...Option) (Score, error) {
	if src == nil {
		return Score{}, ErrNilView
	}
	if op == nil {
		return Score{}, ErrNilOperator
	}
	agg, err := op.Aggregate()
	if err != nil {
		return Score{}, fmt.Errorf("Compute: %w", err)
	}

	return FromAggregate(src, op, agg, opts...)
}

// FromAggregate scores a view whose aggregate resistance is already known —
// the optimizer's preview path, where the post-removal aggregate comes from
// the spectral rank-one identity and src is the hypothetical (pruned) view.
//
// op may be nil when no spectral operator exists for the view (an edge-free
// region): the revision then comes from src, and NormMinMax — which needs
// the operator's pairwise spread — maps every finite aggregate to 0. Under
// NormMinMax a non-nil op contributes its *pre-removal* spread; previews
// are rescaled against the snapshot they perturb.
//
// Errors: ErrNilView, spectral.ErrStaleOperator.
func FromAggregate(src core.GraphView, op *spectral.Operator, agg float64, opts ...Option) (Score, error) {
	if src == nil {
		return Score{}, ErrNilView
	}
	o := gatherOptions(opts...)

	s, err := normalize(agg, o.norm, src, op)
	if err != nil {
		return Score{}, fmt.Errorf("FromAggregate: %w", err)
	}

	e := 0.0
	if n := src.NodeCount(); n >= 2 {
		h, herr := entropy.Entropy(src, entropy.WithRadius(o.radius))
		if herr != nil {
			return Score{}, fmt.Errorf("FromAggregate: %w", herr)
		}
		e = h / math.Log(float64(n))
	}

	rev := src.Revision()
	if op != nil {
		rev = op.Revision()
	}

	return Score{
		SpectralTerm: s,
		EntropyTerm:  e,
		Combined:     o.alpha*s + (1-o.alpha)*e,
		Revision:     rev,
	}, nil
}

// normalize maps the aggregate resistance into [0,1] per the chosen mode.
func normalize(agg float64, norm Norm, src core.GraphView, op *spectral.Operator) (float64, error) {
	if math.IsInf(agg, 1) {
		return 1, nil
	}

	switch norm {
	case NormMinMax:
		if op == nil {
			return 0, nil
		}
		lo, hi, err := finiteSpread(src, op)
		if err != nil {
			return 0, err
		}
		if hi <= lo {
			return 0, nil
		}
		s := (agg - lo) / (hi - lo)
		if s < 0 {
			s = 0
		} else if s > 1 {
			s = 1
		}

		return s, nil
	default: // NormRational
		return agg / (1 + agg), nil
	}
}

// finiteSpread returns the min and max finite pairwise resistance of the
// view. Both are 0 when no finite pair exists.
func finiteSpread(src core.GraphView, op *spectral.Operator) (lo, hi float64, err error) {
	nodes := src.Nodes()
	first := true
	for a := 0; a < len(nodes); a++ {
		for b := a + 1; b < len(nodes); b++ {
			r, rerr := op.Resistance(nodes[a].ID, nodes[b].ID)
			if rerr != nil {
				return 0, 0, rerr
			}
			if math.IsInf(r, 1) {
				continue
			}
			if first {
				lo, hi = r, r
				first = false
				continue
			}
			if r < lo {
				lo = r
			}
			if r > hi {
				hi = r
			}
		}
	}

	return lo, hi, nil
}

// FlowEntropy is the edge-level Rs of the original publication:
//
//	Rs(G) = Σ_{(u,v)∈E} p_uv·ln(1/p_uv)·w_uv,  p_uv = Ω_uv / Σ Ω
//
// where Ω_uv is the effective resistance across each edge and w_uv its
// structural penalty weight (entropy.Penalties). The edge-share
// distribution requires a connected view; views with < 2 nodes score 0,
// as does a view whose total edge resistance is 0.
//
// Errors: ErrNilView, ErrNilOperator, ErrDisconnected,
// spectral.ErrStaleOperator.
func FlowEntropy(src core.GraphView, op *spectral.Operator) (float64, error) {
	if src == nil {
		return 0, ErrNilView
	}
	if op == nil {
		return 0, ErrNilOperator
	}

	agg, err := op.Aggregate()
	if err != nil {
		return 0, fmt.Errorf("FlowEntropy: %w", err)
	}
	if math.IsInf(agg, 1) {
		return 0, fmt.Errorf("FlowEntropy: %w", ErrDisconnected)
	}
	if src.NodeCount() < 2 {
		return 0, nil
	}

	omega, err := op.EdgeResistances()
	if err != nil {
		return 0, fmt.Errorf("FlowEntropy: %w", err)
	}
	total := 0.0
	// Seq order keeps the float accumulation deterministic.
	edges := src.Edges()
	for _, e := range edges {
		total += omega[e.ID]
	}
	if total <= 0 {
		return 0, nil
	}

	weights, err := entropy.Penalties(src)
	if err != nil {
		return 0, fmt.Errorf("FlowEntropy: %w", err)
	}

	sum := 0.0
	for _, e := range edges {
		p := omega[e.ID] / total
		if p <= 0 {
			continue
		}
		sum += p * math.Log(1/p) * weights[e.ID]
	}

	return sum, nil
}
