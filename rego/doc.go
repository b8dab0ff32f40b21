// Package rego implements the REGO greedy ablation search over a vascular
// graph: at each step it scores every removable element of the
// pathological region, commits the best move, and repeats under budget and
// collateral constraints.
//
// Per iteration, for every candidate c (removable edge by default, node by
// option) of the pathological view:
//
//	ΔRs_path    = Rs(path view without c)    − Rs(path view with c)
//	ΔRs_healthy = Rs(healthy view without c) − Rs(healthy view with c)
//	collateral  = max(0, −ΔRs_healthy)   // healthy resilience loss
//	Score(c)    = ΔRs_path − λ·collateral
//
// Boundary elements belong to both region views, so their removal moves
// both deltas; pathological-only elements have zero collateral by
// construction. Because removing a segment can only raise a view's
// effective resistance, the spectral term never falls on removal: a
// healthy Rs decrease — and hence nonzero collateral — can come only from
// the entropy term (the healthy view's weight bins flattening). Spectral
// damage to healthy tissue raises healthy Rs under this encoding and is
// not penalized; λ and the threshold act on the entropy side alone. A
// candidate whose collateral would push the cumulative total past the
// configured threshold is excluded from that iteration's pool, not merely
// penalized.
//
// Selection is the maximum Score; ties break by lower collateral, then by
// lower insertion sequence. The loop halts with StatusCompleted when the
// budget is exhausted, no candidates remain, or the best Score is ≤ 0; it
// halts with StatusPartial — never an error — when the pool was emptied
// solely by the collateral constraint or the caller's context expired
// between iterations.
//
// Edge candidates are scored through the spectral preview path (rank-one,
// no mutation, O(n²) per candidate); node candidates rebuild a scratch
// operator per candidate (O(n³), documented cost of the node unit). Only
// the commit step mutates the graph; candidate evaluation is read-only and
// may run concurrently (WithParallelism), with selection kept sequential
// so the tie-break order never depends on scheduling.
//
// Rewire is the original REGO procedure kept alongside the greedy search:
// seeded degree-preserving double edge swaps on a clone of the whole
// graph, accepting a swap only when it improves the flow-entropy Rs and
// keeps the graph connected.
package rego
