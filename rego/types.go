// File: types.go
// Role: sentinel errors, candidate units, plan/ablation value objects,
//       functional options, defaults.

package rego

import (
	"errors"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vasculab/angio/rs"
	"github.com/vasculab/angio/spectral"
)

// Sentinel errors for the optimizer.
var (
	// ErrNilGraph indicates a nil *core.Graph was supplied.
	ErrNilGraph = errors.New("rego: graph is nil")

	// ErrInfeasibleStart indicates the pathological view has no nodes or no
	// edges at the start of the search — there is nothing to ablate,
	// regardless of budget.
	ErrInfeasibleStart = errors.New("rego: pathological region has no ablatable structure")
)

// CandidateUnit selects what the optimizer removes per move.
type CandidateUnit uint8

const (
	// UnitEdge ablates single vessel segments (the rank-one fast path).
	UnitEdge CandidateUnit = iota

	// UnitNode ablates junctions with all incident segments (full
	// recomputation per candidate).
	UnitNode
)

// String implements fmt.Stringer.
func (u CandidateUnit) String() string {
	switch u {
	case UnitNode:
		return "node"
	default:
		return "edge"
	}
}

// Status reports how the search terminated.
type Status uint8

const (
	// StatusCompleted: budget exhausted, no candidates left, or no
	// improving move — the natural stopping conditions.
	StatusCompleted Status = iota

	// StatusPartial: the pool was emptied solely by the collateral
	// constraint, or the caller's context expired between iterations. The
	// returned plan is still valid and constraint-satisfying.
	StatusPartial
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusPartial:
		return "partial"
	default:
		return "completed"
	}
}

// Ablation is one committed move of the plan.
type Ablation struct {
	// Target is the removed edge or node ID.
	Target string

	// Unit records what kind of element was removed.
	Unit CandidateUnit

	// DeltaRs is the pathological-region Rs gain the move produced.
	DeltaRs float64

	// Collateral is the healthy-region resilience loss of this move,
	// max(0, −ΔRs_healthy).
	Collateral float64

	// CumulativeCollateral is the running collateral total after this move.
	CumulativeCollateral float64
}

// Plan is the finalized result of one search. It is immutable once
// returned.
type Plan struct {
	// Ablations is the committed sequence, in commit order.
	Ablations []Ablation

	// Status reports how the search terminated.
	Status Status

	// Before/After Rs snapshots for both region views.
	PathologicalBefore rs.Score
	PathologicalAfter  rs.Score
	HealthyBefore      rs.Score
	HealthyAfter       rs.Score
}

// Defaults (single source of truth).
const (
	// DefaultLambda is the collateral penalty weight λ.
	DefaultLambda = 1.0

	// DefaultBudget places no practical limit on the number of ablations;
	// the no-improving-move rule terminates the search first.
	DefaultBudget = math.MaxInt

	// DefaultUnit ablates edges.
	DefaultUnit = UnitEdge

	// DefaultParallelism evaluates candidates sequentially.
	DefaultParallelism = 1

	// DefaultSeed seeds the Rewire RNG.
	DefaultSeed int64 = 1

	// DefaultMaxIter bounds the Rewire swap attempts.
	DefaultMaxIter = 1000
)

const (
	panicLambdaInvalid      = "rego: WithLambda: lambda must be finite and >= 0"
	panicBudgetInvalid      = "rego: WithBudget: budget must be >= 0"
	panicThresholdInvalid   = "rego: WithCollateralThreshold: threshold must be >= 0"
	panicParallelismInvalid = "rego: WithParallelism: n must be >= 1"
	panicMaxIterInvalid     = "rego: WithMaxIter: n must be >= 0"
)

// Option configures a search.
type Option func(*options)

type options struct {
	alpha       float64
	lambda      float64
	budget      int
	threshold   float64
	unit        CandidateUnit
	eps         float64
	norm        rs.Norm
	mode        spectral.AggregateMode
	parallelism int
	logger      *log.Logger
	seed        int64
	maxIter     int
}

// WithAlpha sets the Rs blend weight (forwarded to the rs package; panics
// outside [0,1]).
func WithAlpha(a float64) Option {
	if a < 0 || a > 1 || math.IsNaN(a) {
		panic("rego: WithAlpha: alpha must be in [0,1]")
	}

	return func(o *options) { o.alpha = a }
}

// WithLambda sets the collateral penalty weight λ. Panics on negative or
// non-finite values.
func WithLambda(l float64) Option {
	if l < 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		panic(panicLambdaInvalid)
	}

	return func(o *options) { o.lambda = l }
}

// WithBudget caps the number of committed ablations. Budget 0 yields an
// empty completed plan. Panics on negative values.
func WithBudget(n int) Option {
	if n < 0 {
		panic(panicBudgetInvalid)
	}

	return func(o *options) { o.budget = n }
}

// WithCollateralThreshold caps the cumulative healthy-region resilience
// loss. Candidates that would push the total past the threshold are
// excluded from the pool. Default +Inf (unconstrained). Panics on negative
// or NaN values.
func WithCollateralThreshold(t float64) Option {
	if t < 0 || math.IsNaN(t) {
		panic(panicThresholdInvalid)
	}

	return func(o *options) { o.threshold = t }
}

// WithCandidateUnit selects edge or node ablation.
func WithCandidateUnit(u CandidateUnit) Option {
	return func(o *options) { o.unit = u }
}

// WithEpsilon sets the spectral numeric tolerance (forwarded; panics on
// invalid values).
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsInf(eps, 0) || math.IsNaN(eps) {
		panic("rego: WithEpsilon: eps must be finite and non-negative")
	}

	return func(o *options) { o.eps = eps }
}

// WithNormalization sets the spectral-term normalization of the Rs scores.
func WithNormalization(n rs.Norm) Option {
	return func(o *options) { o.norm = n }
}

// WithAggregate sets the pairwise resistance reduction mode.
func WithAggregate(m spectral.AggregateMode) Option {
	return func(o *options) { o.mode = m }
}

// WithParallelism bounds the concurrent candidate evaluations per
// iteration. Selection stays sequential, so the result is identical for
// any n. Panics when n < 1.
func WithParallelism(n int) Option {
	if n < 1 {
		panic(panicParallelismInvalid)
	}

	return func(o *options) { o.parallelism = n }
}

// WithLogger enables progress reporting on the given logger. Nil (the
// default) keeps the search silent.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSeed seeds the Rewire RNG for reproducible swap sequences.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithMaxIter bounds the Rewire swap attempts. Panics on negative values.
func WithMaxIter(n int) Option {
	if n < 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *options) { o.maxIter = n }
}

func gatherOptions(opts ...Option) options {
	o := options{
		alpha:       rs.DefaultAlpha,
		lambda:      DefaultLambda,
		budget:      DefaultBudget,
		threshold:   math.Inf(1),
		unit:        DefaultUnit,
		eps:         spectral.DefaultEpsilon,
		norm:        rs.DefaultNorm,
		mode:        spectral.DefaultAggregate,
		parallelism: DefaultParallelism,
		seed:        DefaultSeed,
		maxIter:     DefaultMaxIter,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// rsOpts forwards the scoring configuration to the rs package.
func (o options) rsOpts() []rs.Option {
	return []rs.Option{rs.WithAlpha(o.alpha), rs.WithNorm(o.norm)}
}

// spectralOpts forwards the operator configuration to the spectral package.
func (o options) spectralOpts() []spectral.Option {
	return []spectral.Option{spectral.WithEpsilon(o.eps), spectral.WithAggregate(o.mode)}
}
