package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasculab/angio/core"
)

// chain builds n1-n2-...-nk with unit conductance, first half pathological,
// second half healthy.
func chain(t *testing.T, pathological, healthy int) (*core.Graph, []string) {
	t.Helper()
	g := core.NewGraph()
	ids := make([]string, 0, pathological+healthy)
	for i := 0; i < pathological; i++ {
		id := nodeID(i)
		require.NoError(t, g.AddNode(id, core.Pathological))
		ids = append(ids, id)
	}
	for i := pathological; i < pathological+healthy; i++ {
		id := nodeID(i)
		require.NoError(t, g.AddNode(id, core.Healthy))
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		_, err := g.AddEdge(ids[i-1], ids[i], 1.0)
		require.NoError(t, err)
	}

	return g, ids
}

func nodeID(i int) string {
	return string(rune('a' + i))
}

func TestAddNode_Errors(t *testing.T) {
	g := core.NewGraph()
	require.ErrorIs(t, g.AddNode("", core.Healthy), core.ErrEmptyNodeID)
	require.NoError(t, g.AddNode("a", core.Healthy))
	require.ErrorIs(t, g.AddNode("a", core.Pathological), core.ErrDuplicateNode)
}

func TestAddEdge_Validation(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("a", core.Pathological))
	require.NoError(t, g.AddNode("b", core.Pathological))

	_, err := g.AddEdge("a", "zz", 1.0)
	require.ErrorIs(t, err, core.ErrNodeNotFound)

	_, err = g.AddEdge("a", "a", 1.0)
	require.ErrorIs(t, err, core.ErrLoopNotAllowed)

	for _, bad := range []float64{0, -1} {
		_, err = g.AddEdge("a", "b", bad)
		require.ErrorIs(t, err, core.ErrBadConductance)
	}

	id, err := g.AddEdge("a", "b", 2.5)
	require.NoError(t, err)
	require.Equal(t, "e1", id)

	_, err = g.AddEdge("b", "a", 1.0)
	require.ErrorIs(t, err, core.ErrDuplicateEdge)
}

func TestAddEdge_DerivedRegion(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("p1", core.Pathological))
	require.NoError(t, g.AddNode("p2", core.Pathological))
	require.NoError(t, g.AddNode("h1", core.Healthy))
	require.NoError(t, g.AddNode("b1", core.Boundary))

	cases := []struct {
		u, v string
		want core.Region
	}{
		{"p1", "p2", core.Pathological},
		{"p1", "h1", core.Boundary},
		{"p2", "b1", core.Boundary},
		{"h1", "b1", core.Boundary},
	}
	for _, tc := range cases {
		id, err := g.AddEdge(tc.u, tc.v, 1.0)
		require.NoError(t, err)
		e, err := g.Edge(id)
		require.NoError(t, err)
		require.Equal(t, tc.want, e.Region, "edge %s-%s", tc.u, tc.v)
		require.True(t, e.Removable)
	}
}

func TestRemoveEdge_NonRemovableProtected(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("a", core.Healthy))
	require.NoError(t, g.AddNode("b", core.Healthy))
	id, err := g.AddEdge("a", "b", 1.0, core.WithNonRemovable())
	require.NoError(t, err)

	require.ErrorIs(t, g.RemoveEdge(id), core.ErrInvalidEdge)
	require.ErrorIs(t, g.RemoveEdge("e99"), core.ErrInvalidEdge)
	require.Equal(t, 1, g.EdgeCount())
}

func TestRemoveNode_TakesIncidentEdges(t *testing.T) {
	g, ids := chain(t, 3, 0)
	require.NoError(t, g.RemoveNode(ids[1]))
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 0, g.EdgeCount())
	require.False(t, g.HasEdge(ids[0], ids[1]))
}

func TestRemoveNode_BlockedByNonRemovableEdge(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("a", core.Healthy))
	require.NoError(t, g.AddNode("b", core.Healthy))
	_, err := g.AddEdge("a", "b", 1.0, core.WithNonRemovable())
	require.NoError(t, err)

	require.ErrorIs(t, g.RemoveNode("a"), core.ErrInvalidEdge)
	require.Equal(t, 2, g.NodeCount())
}

func TestRevision_BumpsOnEveryMutation(t *testing.T) {
	g := core.NewGraph()
	rev := g.Revision()

	require.NoError(t, g.AddNode("a", core.Healthy))
	require.Greater(t, g.Revision(), rev)
	rev = g.Revision()

	require.NoError(t, g.AddNode("b", core.Healthy))
	id, err := g.AddEdge("a", "b", 1.0)
	require.NoError(t, err)
	require.Greater(t, g.Revision(), rev)
	rev = g.Revision()

	require.NoError(t, g.RemoveEdge(id))
	require.Greater(t, g.Revision(), rev)
}

func TestAccessors_DeterministicOrder(t *testing.T) {
	g, _ := chain(t, 2, 3)

	nodes := g.Nodes()
	for i := 1; i < len(nodes); i++ {
		require.Less(t, nodes[i-1].ID, nodes[i].ID)
	}
	edges := g.Edges()
	for i := 1; i < len(edges); i++ {
		require.Less(t, edges[i-1].Seq, edges[i].Seq)
	}
}

func TestSubgraph_BoundaryBelongsToBothViews(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("p", core.Pathological))
	require.NoError(t, g.AddNode("b1", core.Boundary))
	require.NoError(t, g.AddNode("b2", core.Boundary))
	require.NoError(t, g.AddNode("h", core.Healthy))
	_, err := g.AddEdge("p", "b1", 1.0)
	require.NoError(t, err)
	bb, err := g.AddEdge("b1", "b2", 1.0)
	require.NoError(t, err)
	_, err = g.AddEdge("b2", "h", 1.0)
	require.NoError(t, err)

	path := g.Subgraph(core.Pathological)
	healthy := g.Subgraph(core.Healthy)

	require.Equal(t, 3, path.NodeCount())    // p, b1, b2
	require.Equal(t, 3, healthy.NodeCount()) // b1, b2, h
	require.Equal(t, 2, path.EdgeCount())
	require.Equal(t, 2, healthy.EdgeCount())

	// The boundary-boundary segment is visible in both views.
	for _, v := range []*core.RegionView{path, healthy} {
		found := false
		for _, e := range v.Edges() {
			if e.ID == bb {
				found = true
			}
		}
		require.True(t, found, "view %v misses boundary edge", v.Region())
	}
}

func TestSubgraph_IsLive(t *testing.T) {
	g, ids := chain(t, 3, 3)
	path := g.Subgraph(core.Pathological)
	require.Equal(t, 2, path.EdgeCount())

	edges := path.Edges()
	require.NoError(t, g.RemoveEdge(edges[0].ID))
	require.Equal(t, 1, path.EdgeCount())
	_ = ids
}

func TestIsConnected(t *testing.T) {
	g, _ := chain(t, 3, 3)
	require.True(t, g.IsConnected())

	edges := g.Edges()
	require.NoError(t, g.RemoveEdge(edges[2].ID))
	require.False(t, g.IsConnected())

	require.True(t, core.NewGraph().IsConnected())
}

func TestClone_Independent(t *testing.T) {
	g, _ := chain(t, 2, 2)
	cp := g.Clone()
	require.Equal(t, g.Revision(), cp.Revision())
	require.Equal(t, g.EdgeCount(), cp.EdgeCount())

	require.NoError(t, g.RemoveEdge(g.Edges()[0].ID))
	require.Equal(t, 3, cp.EdgeCount())
	require.Equal(t, 2, g.EdgeCount())

	// The clone continues its own edge sequence without colliding.
	id, err := cp.AddEdge("a", "c", 1.0)
	require.NoError(t, err)
	_, err = cp.Edge(id)
	require.NoError(t, err)
}
