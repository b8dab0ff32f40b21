package rs_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/vasculab/angio/core"
	"github.com/vasculab/angio/rs"
	"github.com/vasculab/angio/spectral"
)

func path3(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, g.AddNode(id, core.Healthy))
	}
	_, err := g.AddEdge("a", "b", 1.0)
	require.NoError(t, err)
	_, err = g.AddEdge("b", "c", 1.0)
	require.NoError(t, err)

	return g
}

func triangle(t *testing.T) *core.Graph {
	t.Helper()
	g := path3(t)
	_, err := g.AddEdge("c", "a", 1.0)
	require.NoError(t, err)

	return g
}

func TestCompute_NilArguments(t *testing.T) {
	g := path3(t)
	op, err := spectral.NewOperator(g)
	require.NoError(t, err)

	_, err = rs.Compute(nil, op)
	require.ErrorIs(t, err, rs.ErrNilView)
	_, err = rs.Compute(g, nil)
	require.ErrorIs(t, err, rs.ErrNilOperator)
}

func TestCompute_Path3KnownValue(t *testing.T) {
	g := path3(t)
	op, err := spectral.NewOperator(g)
	require.NoError(t, err)

	score, err := rs.Compute(g, op)
	require.NoError(t, err)

	// Mean resistance 4/3 → rational norm 4/7.
	require.InDelta(t, 4.0/7.0, score.SpectralTerm, 1e-9)

	// Weight bins {3:2, 4:1} → H = ln3 − (2/3)·ln2, scaled by ln3.
	wantH := (math.Log(3) - (2.0/3.0)*math.Log(2)) / math.Log(3)
	require.InDelta(t, wantH, score.EntropyTerm, 1e-12)

	require.InDelta(t, 0.5*score.SpectralTerm+0.5*score.EntropyTerm, score.Combined, 1e-15)
	require.Equal(t, g.Revision(), score.Revision)
}

func TestCompute_AlphaBlend(t *testing.T) {
	g := path3(t)
	op, err := spectral.NewOperator(g)
	require.NoError(t, err)

	spectralOnly, err := rs.Compute(g, op, rs.WithAlpha(1))
	require.NoError(t, err)
	require.Equal(t, spectralOnly.SpectralTerm, spectralOnly.Combined)

	entropyOnly, err := rs.Compute(g, op, rs.WithAlpha(0))
	require.NoError(t, err)
	require.Equal(t, entropyOnly.EntropyTerm, entropyOnly.Combined)

	require.Panics(t, func() { rs.WithAlpha(1.5) })
}

func TestCompute_DisconnectedSaturatesSpectralTerm(t *testing.T) {
	g := path3(t)
	require.NoError(t, g.AddNode("island", core.Healthy))
	op, err := spectral.NewOperator(g)
	require.NoError(t, err)

	score, err := rs.Compute(g, op)
	require.NoError(t, err)
	require.Equal(t, 1.0, score.SpectralTerm)
	require.False(t, math.IsInf(score.Combined, 1))
}

func TestCompute_MinMaxNorm(t *testing.T) {
	g := path3(t)
	op, err := spectral.NewOperator(g)
	require.NoError(t, err)

	// Pairwise resistances 1, 1, 2: aggregate 4/3 rescales to 1/3.
	score, err := rs.Compute(g, op, rs.WithNorm(rs.NormMinMax))
	require.NoError(t, err)
	require.InDelta(t, 1.0/3.0, score.SpectralTerm, 1e-9)
}

func TestCompute_StaleOperatorSurfaces(t *testing.T) {
	g := path3(t)
	op, err := spectral.NewOperator(g)
	require.NoError(t, err)

	require.NoError(t, g.RemoveEdge(g.Edges()[0].ID))
	_, err = rs.Compute(g, op)
	require.ErrorIs(t, err, spectral.ErrStaleOperator)
}

func TestFlowEntropy_UniformTriangle(t *testing.T) {
	// Equal edge resistances and penalty weight 1 everywhere: three equal
	// shares give exactly ln 3.
	g := triangle(t)
	op, err := spectral.NewOperator(g)
	require.NoError(t, err)

	v, err := rs.FlowEntropy(g, op)
	require.NoError(t, err)
	require.InDelta(t, math.Log(3), v, 1e-9)
}

func TestFlowEntropy_DisconnectedRejected(t *testing.T) {
	g := path3(t)
	require.NoError(t, g.AddNode("island", core.Healthy))
	op, err := spectral.NewOperator(g)
	require.NoError(t, err)

	_, err = rs.FlowEntropy(g, op)
	require.ErrorIs(t, err, rs.ErrDisconnected)
}

func TestRsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("same revision scores bit-identically", prop.ForAll(
		func(seed int64) bool {
			g := randomGraph(seed)
			op, err := spectral.NewOperator(g)
			if err != nil {
				return false
			}
			a, err := rs.Compute(g, op)
			if err != nil {
				return false
			}
			b, err := rs.Compute(g, op)
			if err != nil {
				return false
			}

			return a == b
		},
		gen.Int64Range(1, 1<<30),
	))

	properties.Property("combined score stays inside [0,1]", prop.ForAll(
		func(seed int64) bool {
			g := randomGraph(seed)
			op, err := spectral.NewOperator(g)
			if err != nil {
				return false
			}
			s, err := rs.Compute(g, op)
			if err != nil {
				return false
			}

			return s.Combined >= 0 && s.Combined <= 1 &&
				s.SpectralTerm >= 0 && s.SpectralTerm <= 1 &&
				s.EntropyTerm >= 0 && s.EntropyTerm <= 1
		},
		gen.Int64Range(1, 1<<30),
	))

	properties.TestingRun(t)
}
