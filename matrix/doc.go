// Package matrix provides the dense linear-algebra kernels behind the
// spectral resistance computation: a row-major Dense matrix, a deterministic
// Doolittle LU factorization, inversion via triangular solves, and the
// rank-one update used by the incremental pseudoinverse path.
//
// Determinism over pivoted stability is a deliberate trade: all kernels use
// fixed loop orders and no pivoting, so identical inputs produce
// bit-identical outputs. The spectral layer only inverts symmetric
// positive-definite systems (shifted Laplacians of connected components),
// for which zero pivots cannot occur; a zero pivot therefore surfaces as
// ErrSingular and signals degenerate input rather than bad luck.
//
// All user-triggered error conditions return package sentinels checked via
// errors.Is; panics are reserved for programmer errors.
package matrix
