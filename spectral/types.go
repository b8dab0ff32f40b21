// File: types.go
// Role: sentinel errors, aggregate modes, functional options, defaults.

package spectral

import (
	"errors"
	"math"
)

// Sentinel errors for spectral computations.
var (
	// ErrNilView indicates a nil core.GraphView was supplied.
	ErrNilView = errors.New("spectral: view is nil")

	// ErrSingularInput indicates degenerate input to the spectral
	// computation: a view without usable edges, or a component whose
	// shifted Laplacian could not be inverted.
	ErrSingularInput = errors.New("spectral: singular input")

	// ErrUnknownNode indicates a queried node is not part of the view.
	ErrUnknownNode = errors.New("spectral: unknown node id")

	// ErrUnknownEdge indicates the edge is not part of the operator state.
	ErrUnknownEdge = errors.New("spectral: unknown edge id")

	// ErrStaleOperator indicates the backing view's revision advanced past
	// the operator's snapshot; results would describe a graph that no
	// longer exists. Rebuild before querying again.
	ErrStaleOperator = errors.New("spectral: operator is stale")
)

// AggregateMode selects how pairwise resistances reduce to one number.
type AggregateMode uint8

const (
	// AggregateMean averages resistance over all unordered node pairs.
	AggregateMean AggregateMode = iota

	// AggregateSum totals resistance over all unordered node pairs.
	AggregateSum
)

// Defaults (single source of truth).
const (
	// DefaultEpsilon is the numeric tolerance: conductances below it are
	// dropped before inversion, and rank-one denominators within it of
	// zero trigger the full-recompute fallback.
	DefaultEpsilon = 1e-9

	// DefaultAggregate is the pairwise reduction used by Aggregate.
	DefaultAggregate = AggregateMean
)

const panicEpsilonInvalid = "spectral: WithEpsilon: eps must be finite and non-negative"

// Option configures an Operator at construction time.
type Option func(*options)

type options struct {
	eps  float64
	mode AggregateMode
}

// WithEpsilon sets the numeric tolerance. Panics on negative or non-finite
// values (programmer error).
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsInf(eps, 0) || math.IsNaN(eps) {
		panic(panicEpsilonInvalid)
	}

	return func(o *options) { o.eps = eps }
}

// WithAggregate sets the pairwise reduction mode.
func WithAggregate(mode AggregateMode) Option {
	return func(o *options) { o.mode = mode }
}

func gatherOptions(opts ...Option) options {
	o := options{eps: DefaultEpsilon, mode: DefaultAggregate}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
