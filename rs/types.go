// File: types.go
// Role: sentinel errors, normalization modes, functional options, defaults.

package rs

import (
	"errors"
	"math"

	"github.com/vasculab/angio/entropy"
)

// Sentinel errors for Rs scoring.
var (
	// ErrNilView indicates a nil core.GraphView was supplied.
	ErrNilView = errors.New("rs: view is nil")

	// ErrNilOperator indicates a nil spectral.Operator was supplied.
	ErrNilOperator = errors.New("rs: operator is nil")

	// ErrDisconnected indicates FlowEntropy was asked to score a
	// disconnected view; the edge-share distribution is undefined there.
	ErrDisconnected = errors.New("rs: view is disconnected")
)

// Norm selects how the aggregate resistance maps into [0,1].
type Norm uint8

const (
	// NormRational maps r to r/(1+r); +Inf maps to 1.
	NormRational Norm = iota

	// NormMinMax rescales r against the finite pairwise-resistance spread
	// of the same snapshot; +Inf maps to 1, a degenerate spread to 0.
	NormMinMax
)

// Defaults (single source of truth).
const (
	// DefaultAlpha balances the spectral and entropy terms equally. A
	// placeholder pending empirical calibration; override via WithAlpha.
	DefaultAlpha = 0.5

	// DefaultNorm is the spectral-term normalization.
	DefaultNorm = NormRational
)

const panicAlphaInvalid = "rs: WithAlpha: alpha must be in [0,1]"

// Option configures a Score computation.
type Option func(*options)

type options struct {
	alpha  float64
	norm   Norm
	radius int
}

// WithAlpha sets the spectral/entropy blend weight. Panics outside [0,1]
// (programmer error).
func WithAlpha(a float64) Option {
	if a < 0 || a > 1 || math.IsNaN(a) {
		panic(panicAlphaInvalid)
	}

	return func(o *options) { o.alpha = a }
}

// WithNorm sets the spectral-term normalization mode.
func WithNorm(n Norm) Option {
	return func(o *options) { o.norm = n }
}

// WithRadius sets the hop radius of the entropy term (forwarded to the
// entropy package; panics on negative values).
func WithRadius(r int) Option {
	if r < 0 {
		panic("rs: WithRadius: radius must be >= 0")
	}

	return func(o *options) { o.radius = r }
}

func gatherOptions(opts ...Option) options {
	o := options{alpha: DefaultAlpha, norm: DefaultNorm, radius: entropy.DefaultRadius}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
