// File: view.go
// Role: read-only region views and connectivity queries.
// Determinism:
//   - View accessors inherit the Graph's orderings (ID asc / Seq asc).
// Concurrency:
//   - Views hold no state of their own; every call reads the backing graph
//     under its read lock, so a view is always as fresh as Revision() says.

package core

import "sort"

// GraphView is the read-only surface shared by the whole graph and its
// region views. Scoring components (spectral, entropy, rs) accept this
// interface so the same code paths serve a region or the full network.
type GraphView interface {
	// Nodes returns node copies sorted by ID asc.
	Nodes() []Node
	// Edges returns edge copies sorted by Seq asc.
	Edges() []Edge
	// NodeCount and EdgeCount report view cardinalities.
	NodeCount() int
	EdgeCount() int
	// Revision reports the backing graph's structural revision; cached
	// derivations of this view are stale once it moves.
	Revision() uint64
}

var (
	_ GraphView = (*Graph)(nil)
	_ GraphView = (*RegionView)(nil)
)

// RegionView is a live, read-only induced subgraph: the nodes labeled with
// the view's region or Boundary, and the edges with both endpoints in that
// node set. Boundary junctions (and segments between them) therefore appear
// in both the pathological and the healthy view, which is how an ablation on
// the boundary affects both scores.
type RegionView struct {
	g      *Graph
	region Region
}

// Subgraph returns the read-only view for the given region. The view is
// backed by the graph: later mutations are visible through it.
// Complexity: O(1).
func (g *Graph) Subgraph(region Region) *RegionView {
	return &RegionView{g: g, region: region}
}

// Region returns the view's region label.
func (v *RegionView) Region() Region { return v.region }

// contains reports view membership for a node label.
func (v *RegionView) contains(r Region) bool {
	return r == v.region || r == Boundary
}

// Nodes returns copies of the member nodes, sorted by ID asc.
func (v *RegionView) Nodes() []Node {
	v.g.mu.RLock()
	out := make([]Node, 0, len(v.g.nodes))
	for _, n := range v.g.nodes {
		if v.contains(n.Region) {
			out = append(out, *n)
		}
	}
	v.g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Edges returns copies of the member edges (both endpoints in the view),
// sorted by Seq asc.
func (v *RegionView) Edges() []Edge {
	v.g.mu.RLock()
	out := make([]Edge, 0, len(v.g.edges))
	for _, e := range v.g.edges {
		if v.contains(v.g.nodes[e.U].Region) && v.contains(v.g.nodes[e.V].Region) {
			out = append(out, *e)
		}
	}
	v.g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })

	return out
}

// NodeCount returns the number of member nodes. Complexity: O(V).
func (v *RegionView) NodeCount() int {
	v.g.mu.RLock()
	defer v.g.mu.RUnlock()

	count := 0
	for _, n := range v.g.nodes {
		if v.contains(n.Region) {
			count++
		}
	}

	return count
}

// EdgeCount returns the number of member edges. Complexity: O(E).
func (v *RegionView) EdgeCount() int {
	v.g.mu.RLock()
	defer v.g.mu.RUnlock()

	count := 0
	for _, e := range v.g.edges {
		if v.contains(v.g.nodes[e.U].Region) && v.contains(v.g.nodes[e.V].Region) {
			count++
		}
	}

	return count
}

// Revision reports the backing graph's revision.
func (v *RegionView) Revision() uint64 { return v.g.Revision() }

// IsConnected reports whether every node is reachable from every other.
// The empty graph and the single-node graph are connected by convention.
// Complexity: O(V + E).
func (g *Graph) IsConnected() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if len(g.nodes) <= 1 {
		return true
	}

	// Deterministic start: any node works for a yes/no answer.
	var start string
	for id := range g.nodes {
		start = id
		break
	}

	seen := make(map[string]bool, len(g.nodes))
	seen[start] = true
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for nb := range g.adj[cur] {
			if !seen[nb] {
				seen[nb] = true
				queue = append(queue, nb)
			}
		}
	}

	return len(seen) == len(g.nodes)
}
