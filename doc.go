// Package angio computes the Structurally-Weighted Resistance Entropy (Rs)
// of vascular networks and plans embolization-style ablations with the
// greedy REGO search.
//
// A vascular network is an undirected graph: junctions as nodes, vessel
// segments as edges weighted by conductance, partitioned into pathological,
// healthy and boundary regions. Rs blends two readings of one region:
//
//   - spectral: effective resistance from the Laplacian pseudoinverse —
//     how hard it is for flow to find a way through;
//   - structural: Shannon entropy of local degree structure — how
//     heterogeneous the plumbing is.
//
// The optimizer removes one segment (or junction) at a time, maximizing
// the pathological region's Rs while excluding moves whose collateral
// resilience loss to healthy tissue would breach a configured threshold.
//
// Package map:
//
//	core/     — graph model, region views, revision contract
//	matrix/   — deterministic dense kernels (LU, inverse, rank-one update)
//	spectral/ — effective resistance, incremental edge-removal updates
//	entropy/  — structural weights, entropy, per-edge penalty weights
//	rs/       — the combined Rs score and the flow-entropy variant
//	rego/     — the greedy ablation search and the classic rewiring REGO
//
// Everything is in-memory and side-effect-free: no I/O, no globals, and
// deterministic results for identical inputs — including tie-breaks and
// parallel candidate evaluation.
package angio
