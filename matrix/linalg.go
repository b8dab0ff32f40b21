// File: linalg.go
// Role: deterministic kernels: Doolittle LU, Inverse, MatVec, RankOneUpdate.
// Determinism:
//   - No pivoting, fixed loop orders; identical inputs give bit-identical
//     outputs. Zero pivots surface as ErrSingular.

package matrix

import "fmt"

// zeroPivot is the sentinel for detecting a zero pivot in LU/Inverse.
const zeroPivot = 0.0

func kernelErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// LU computes the Doolittle factorization A = L*U with unit diagonal on L,
// without pivoting.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrSingular (zero pivot).
// Complexity: O(n³) time, O(n²) space.
func LU(m *Dense) (*Dense, *Dense, error) {
	if err := validateSquare(m); err != nil {
		return nil, nil, kernelErrorf("LU", err)
	}

	n := m.r
	l, _ := NewDense(n, n)
	u, _ := NewDense(n, n)
	for i := 0; i < n; i++ {
		l.data[i*n+i] = 1.0
	}

	var i, j, k int
	var sum float64
	for i = 0; i < n; i++ {
		// Row i of U for j >= i.
		for j = i; j < n; j++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l.data[i*n+k] * u.data[k*n+j]
			}
			u.data[i*n+j] = m.data[i*n+j] - sum
		}

		if u.data[i*n+i] == zeroPivot {
			return nil, nil, kernelErrorf("LU", ErrSingular)
		}

		// Column i of L for j > i.
		for j = i + 1; j < n; j++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l.data[j*n+k] * u.data[k*n+i]
			}
			l.data[j*n+i] = (m.data[j*n+i] - sum) / u.data[i*n+i]
		}
	}

	return l, u, nil
}

// Inverse computes A⁻¹ via LU factorization and per-column triangular
// solves. The input is not mutated.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrSingular.
// Complexity: O(n³) time, O(n²) space.
func Inverse(m *Dense) (*Dense, error) {
	l, u, err := LU(m)
	if err != nil {
		return nil, kernelErrorf("Inverse", err)
	}

	n := m.r
	inv, _ := NewDense(n, n)
	y := make([]float64, n)
	x := make([]float64, n)

	var col, i, k int
	var sum, pivot float64
	for col = 0; col < n; col++ {
		// Forward solve L*y = e_col.
		for i = 0; i < n; i++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l.data[i*n+k] * y[k]
			}
			if i == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		// Backward solve U*x = y.
		for i = n - 1; i >= 0; i-- {
			sum = 0
			for k = i + 1; k < n; k++ {
				sum += u.data[i*n+k] * x[k]
			}
			pivot = u.data[i*n+i]
			if pivot == zeroPivot {
				return nil, kernelErrorf("Inverse", ErrSingular)
			}
			x[i] = (y[i] - sum) / pivot
		}
		// Write x into column col.
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// MatVec computes y = m * x.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
// Complexity: O(r*c).
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if m == nil {
		return nil, kernelErrorf("MatVec", ErrNilMatrix)
	}
	if len(x) != m.c {
		return nil, kernelErrorf("MatVec", ErrDimensionMismatch)
	}

	y := make([]float64, m.r)
	var i, j, base int
	var acc float64
	for i = 0; i < m.r; i++ {
		acc = 0
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if x[j] != 0 {
				acc += m.data[base+j] * x[j]
			}
		}
		y[i] = acc
	}

	return y, nil
}

// RankOneUpdate performs m += factor * w*wᵀ in place. This is the core of
// the Sherman–Morrison pseudoinverse downdate applied after an edge removal.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch (len(w) != n).
// Complexity: O(n²).
func RankOneUpdate(m *Dense, w []float64, factor float64) error {
	if err := validateSquare(m); err != nil {
		return kernelErrorf("RankOneUpdate", err)
	}
	if len(w) != m.r {
		return kernelErrorf("RankOneUpdate", ErrDimensionMismatch)
	}

	n := m.r
	var i, j, base int
	var fw float64
	for i = 0; i < n; i++ {
		fw = factor * w[i]
		if fw == 0 {
			continue
		}
		base = i * n
		for j = 0; j < n; j++ {
			m.data[base+j] += fw * w[j]
		}
	}

	return nil
}
