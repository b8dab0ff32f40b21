package core_test

import (
	"fmt"

	"github.com/vasculab/angio/core"
)

// ExampleGraph_Subgraph shows how boundary junctions appear in both region
// views while interface-crossing segments appear in neither.
func ExampleGraph_Subgraph() {
	g := core.NewGraph()
	_ = g.AddNode("p1", core.Pathological)
	_ = g.AddNode("p2", core.Pathological)
	_ = g.AddNode("b", core.Boundary)
	_ = g.AddNode("h1", core.Healthy)
	_ = g.AddNode("h2", core.Healthy)
	_, _ = g.AddEdge("p1", "p2", 1.0)
	_, _ = g.AddEdge("p2", "b", 1.0)
	_, _ = g.AddEdge("b", "h1", 1.0)
	_, _ = g.AddEdge("h1", "h2", 1.0)

	path := g.Subgraph(core.Pathological)
	healthy := g.Subgraph(core.Healthy)
	fmt.Println("pathological:", path.NodeCount(), "nodes,", path.EdgeCount(), "edges")
	fmt.Println("healthy:     ", healthy.NodeCount(), "nodes,", healthy.EdgeCount(), "edges")
	// Output:
	// pathological: 3 nodes, 2 edges
	// healthy:      3 nodes, 2 edges
}
