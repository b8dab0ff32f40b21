// Package rs combines spectral resistance and structural entropy into the
// Rs resilience score of a vascular graph view.
//
// The combination rule is
//
//	Combined = α·S + (1−α)·E
//
// where S is the normalized aggregate effective resistance of the view and
// E = H / ln(n) is the structural entropy scaled into [0,1] (0 when the
// view has fewer than two nodes). Higher Combined means the view is closer
// to collapse: resistance has risen and/or the structure has fragmented
// into heterogeneous pieces.
//
// Normalization of the spectral term is configurable because no published
// calibration exists yet:
//
//   - NormRational (default) maps the aggregate r to r/(1+r) — monotone,
//     bounded, comparable across graph sizes, and +Inf saturates cleanly
//     at 1, which keeps infinity out of the blend arithmetic.
//   - NormMinMax rescales r against the finite pairwise-resistance spread
//     of the same snapshot; it emphasizes relative change within one graph
//     instance at the cost of cross-graph comparability.
//
// α defaults to DefaultAlpha (0.5, an explicit tunable placeholder) and is
// never assumed implicitly anywhere else.
//
// A Score carries the view revision it was computed at; equal revisions
// yield bit-identical scores.
//
// FlowEntropy is the edge-level variant from the original publication:
// Rs(G) = Σ p_uv·ln(1/p_uv)·w_uv over edges, with p_uv the edge's share of
// total effective resistance and w_uv the structural penalty weight. It
// requires a connected view and returns ErrDisconnected otherwise.
package rs
