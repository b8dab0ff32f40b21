package entropy_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasculab/angio/core"
	"github.com/vasculab/angio/entropy"
)

func ring(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	ids := make([]string, n)
	for i := range ids {
		ids[i] = string(rune('a' + i))
		require.NoError(t, g.AddNode(ids[i], core.Healthy))
	}
	for i := range ids {
		_, err := g.AddEdge(ids[i], ids[(i+1)%n], 1.0)
		require.NoError(t, err)
	}

	return g
}

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

func TestEntropy_NilView(t *testing.T) {
	_, err := entropy.Entropy(nil)
	require.ErrorIs(t, err, entropy.ErrNilView)
}

func TestEntropy_Degenerate(t *testing.T) {
	g := core.NewGraph()
	h, err := entropy.Entropy(g)
	require.NoError(t, err)
	require.Zero(t, h)

	require.NoError(t, g.AddNode("a", core.Healthy))
	h, err = entropy.Entropy(g)
	require.NoError(t, err)
	require.Zero(t, h)
}

func TestEntropy_UniformStructureIsZero(t *testing.T) {
	// Every ring junction sees the same neighborhood: one bin, H = 0.
	for _, n := range []int{3, 4, 6} {
		h, err := entropy.Entropy(ring(t, n))
		require.NoError(t, err)
		require.Zero(t, h, "ring of %d", n)
	}
}

func TestEntropy_PathGraphBins(t *testing.T) {
	// Radius 1: w(a)=3, w(b)=4, w(c)=3 → bins {3:2, 4:1}.
	g := path3(t)
	h, err := entropy.Entropy(g)
	require.NoError(t, err)

	want := math.Log(3) - (2.0/3.0)*math.Log(2)
	require.InDelta(t, want, h, 1e-12)

	// Radius 0 bins by raw degree {1:2, 2:1} — same split here.
	h0, err := entropy.Entropy(g, entropy.WithRadius(0))
	require.NoError(t, err)
	require.InDelta(t, want, h0, 1e-12)
}

func TestEntropy_DeterministicAcrossRuns(t *testing.T) {
	g := path3(t)
	first, err := entropy.Entropy(g)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		h, herr := entropy.Entropy(g)
		require.NoError(t, herr)
		require.Equal(t, first, h)
	}
}

func TestWeights_RadiusGrowth(t *testing.T) {
	g := path3(t)

	w1, err := entropy.Weights(g)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 3, "b": 4, "c": 3}, w1)

	// Radius 2 covers the whole path from every junction.
	w2, err := entropy.Weights(g, entropy.WithRadius(2))
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 4, "b": 4, "c": 4}, w2)
}

func TestWithRadius_PanicsOnNegative(t *testing.T) {
	require.Panics(t, func() { entropy.WithRadius(-1) })
}

func TestPenalties_UniformDegreesWeighOne(t *testing.T) {
	g := ring(t, 4)
	w, err := entropy.Penalties(g)
	require.NoError(t, err)
	require.Len(t, w, 4)
	for id, v := range w {
		require.InDelta(t, 1.0, v, 1e-12, "edge %s", id)
	}
}

func TestPenalties_StarPenalizesTheHub(t *testing.T) {
	// K1,3: hub degree 3, leaves 1, mean 1.5. Every edge touches the hub:
	// w = 1 − (1.5 + 0.5)/(2·4·1.5) = 5/6.
	g := core.NewGraph()
	require.NoError(t, g.AddNode("hub", core.Healthy))
	for _, leaf := range []string{"x", "y", "z"} {
		require.NoError(t, g.AddNode(leaf, core.Healthy))
		_, err := g.AddEdge("hub", leaf, 1.0)
		require.NoError(t, err)
	}

	w, err := entropy.Penalties(g)
	require.NoError(t, err)
	require.Len(t, w, 3)
	for id, v := range w {
		require.InDelta(t, 5.0/6.0, v, 1e-12, "edge %s", id)
	}
}

func TestPenalties_EmptyGraph(t *testing.T) {
	w, err := entropy.Penalties(core.NewGraph())
	require.NoError(t, err)
	require.Empty(t, w)

	_, err = entropy.Penalties(nil)
	require.ErrorIs(t, err, entropy.ErrNilView)
}
