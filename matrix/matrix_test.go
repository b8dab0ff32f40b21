package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasculab/angio/matrix"
)

func fill(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(len(rows), len(rows[0]))
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}

	return m
}

func TestNewDense_Validation(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense(2, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 3, 1.0), matrix.ErrOutOfRange)
}

func TestLU_Doolittle(t *testing.T) {
	m := fill(t, [][]float64{
		{4, 3},
		{6, 3},
	})
	l, u, err := matrix.LU(m)
	require.NoError(t, err)

	// L is unit lower triangular, U upper; L·U reproduces m.
	for i := 0; i < 2; i++ {
		lii, aerr := l.At(i, i)
		require.NoError(t, aerr)
		require.Equal(t, 1.0, lii)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			sum := 0.0
			for k := 0; k < 2; k++ {
				lv, _ := l.At(i, k)
				uv, _ := u.At(k, j)
				sum += lv * uv
			}
			want, _ := m.At(i, j)
			require.InDelta(t, want, sum, 1e-12)
		}
	}
}

func TestInverse_KnownMatrix(t *testing.T) {
	m := fill(t, [][]float64{
		{2, 1},
		{1, 2},
	})
	inv, err := matrix.Inverse(m)
	require.NoError(t, err)

	want := [][]float64{
		{2.0 / 3.0, -1.0 / 3.0},
		{-1.0 / 3.0, 2.0 / 3.0},
	}
	for i := range want {
		for j := range want[i] {
			got, aerr := inv.At(i, j)
			require.NoError(t, aerr)
			require.InDelta(t, want[i][j], got, 1e-12)
		}
	}
}

func TestInverse_ZeroLeadingPivot(t *testing.T) {
	// Invertible, but the no-pivot factorization hits a zero pivot — the
	// deterministic kernel reports it instead of permuting rows.
	m := fill(t, [][]float64{
		{0, 1},
		{1, 0},
	})
	_, err := matrix.Inverse(m)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestInverse_NonSquare(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = matrix.Inverse(m)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestMatVec(t *testing.T) {
	m := fill(t, [][]float64{
		{1, 2},
		{3, 4},
	})
	y, err := matrix.MatVec(m, []float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{3, 7}, y)

	_, err = matrix.MatVec(m, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestRankOneUpdate(t *testing.T) {
	m := fill(t, [][]float64{
		{1, 0},
		{0, 1},
	})
	require.NoError(t, matrix.RankOneUpdate(m, []float64{1, 2}, 0.5))

	want := [][]float64{
		{1.5, 1.0},
		{1.0, 3.0},
	}
	for i := range want {
		for j := range want[i] {
			got, err := m.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, want[i][j], got, 1e-12)
		}
	}

	require.ErrorIs(t, matrix.RankOneUpdate(m, []float64{1}, 1.0), matrix.ErrDimensionMismatch)
}
