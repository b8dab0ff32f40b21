// Package spectral computes effective resistance on a vascular graph view
// from the Moore–Penrose pseudoinverse of its weighted Laplacian.
//
// Overview:
//
//   - An Operator is built from a core.GraphView snapshot. It indexes the
//     view's nodes, splits them into connected components, and computes one
//     Laplacian pseudoinverse per component with ≥ 2 nodes using the
//     identity L⁺ = (L + J/n)⁻¹ − J/n (J the all-ones matrix), valid on a
//     connected component where L + J/n is symmetric positive definite and
//     therefore safe for the deterministic no-pivot LU inverse.
//   - Resistance(u,v) = L⁺uu + L⁺vv − 2·L⁺uv, clamped at zero against
//     floating-point drift. Pairs in different components report +Inf — a
//     sentinel, never an error and never NaN.
//   - Aggregate() reduces all node pairs of the view to one number (mean by
//     default, sum by option); a disconnected view aggregates to +Inf.
//
// Incremental updates:
//
//	Removing edge (u,v) of conductance c is the rank-one perturbation
//	L' = L − c·bbᵀ with b = e_u − e_v. While the removal keeps the
//	component connected the pseudoinverse follows the Sherman–Morrison
//	style downdate
//
//	    L'⁺ = L⁺ + (c / (1 − c·R(u,v))) · (L⁺b)(L⁺b)ᵀ
//
//	which PreviewRemoval evaluates in O(n²) without mutating the operator
//	and Removed applies in place after the graph commit. When the removal
//	disconnects the component (checked first), the operator falls back to a
//	full rebuild — a documented fallback, not an error.
//
// Numeric policy:
//
//	Conductances below the configured epsilon are dropped before inversion
//	to avoid ill-conditioned systems; the count of dropped edges is
//	reported via Clamped() (a warning surface, not a failure).
//
// Errors (sentinel):
//
//	– ErrNilView        nil view supplied.
//	– ErrSingularInput  degenerate input: the view has no usable edges, or
//	                    inversion failed (wrapped with the component index).
//	– ErrUnknownNode    queried node is not in the view.
//	– ErrUnknownEdge    previewed/removed edge is not in the operator state.
//	– ErrStaleOperator  the view's revision moved past the operator's; the
//	                    caller must Rebuild before trusting any result.
package spectral
