// File: graph.go
// Role: structural mutations (AddNode/AddEdge/RemoveEdge/RemoveNode) and
//       deterministic read accessors.
// Determinism:
//   - Nodes() sorted by ID asc; Edges() sorted by Seq asc.
//   - Edge IDs "e"+decimal, monotone, never reused.
// Concurrency:
//   - Mutations under mu write lock; queries under mu read lock.

package core

import (
	"fmt"
	"sort"
	"strconv"
)

// AddNode inserts a junction with the given region label.
//
// Errors: ErrEmptyNodeID, ErrDuplicateNode.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(id string, region Region, opts ...NodeOption) error {
	if id == "" {
		return ErrEmptyNodeID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("AddNode(%q): %w", id, ErrDuplicateNode)
	}

	n := &Node{ID: id, Region: region}
	for _, opt := range opts {
		opt(n)
	}
	g.nodes[id] = n
	g.adj[id] = make(map[string]string)
	g.rev++

	return nil
}

// AddEdge inserts a vessel segment between two existing junctions and
// returns the generated edge ID.
//
// The region label is derived from the endpoints unless overridden: both
// Pathological ⇒ Pathological, both Healthy ⇒ Healthy, anything else ⇒
// Boundary. Edges are removable by default.
//
// Errors: ErrEmptyNodeID, ErrNodeNotFound (endpoints must exist — the graph
// invariant that every edge references existing nodes is enforced here),
// ErrBadConductance, ErrLoopNotAllowed, ErrDuplicateEdge.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(u, v string, conductance float64, opts ...EdgeOption) (string, error) {
	if u == "" || v == "" {
		return "", ErrEmptyNodeID
	}
	if u == v {
		return "", ErrLoopNotAllowed
	}
	if !validConductance(conductance) {
		return "", fmt.Errorf("AddEdge(%q,%q): %w", u, v, ErrBadConductance)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	nu, ok := g.nodes[u]
	if !ok {
		return "", fmt.Errorf("AddEdge(%q,%q): %w", u, v, ErrNodeNotFound)
	}
	nv, ok := g.nodes[v]
	if !ok {
		return "", fmt.Errorf("AddEdge(%q,%q): %w", u, v, ErrNodeNotFound)
	}
	if _, dup := g.adj[u][v]; dup {
		return "", fmt.Errorf("AddEdge(%q,%q): %w", u, v, ErrDuplicateEdge)
	}

	g.nextSeq++
	e := &Edge{
		ID:          "e" + strconv.FormatUint(g.nextSeq, 10),
		U:           u,
		V:           v,
		Conductance: conductance,
		Region:      derivedRegion(nu.Region, nv.Region),
		Removable:   true,
		Seq:         g.nextSeq,
	}
	for _, opt := range opts {
		opt(e)
	}

	g.edges[e.ID] = e
	g.adj[u][v] = e.ID
	g.adj[v][u] = e.ID
	g.rev++

	return e.ID, nil
}

// derivedRegion labels an edge from its endpoint labels.
func derivedRegion(a, b Region) Region {
	if a == b && a != Boundary {
		return a
	}

	return Boundary
}

// RemoveEdge deletes the edge with the given ID.
//
// Errors: ErrInvalidEdge when the edge does not exist or is marked
// non-removable (structurally mandatory segments are protected).
// Complexity: O(1).
func (g *Graph) RemoveEdge(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.edges[id]
	if !ok {
		return fmt.Errorf("RemoveEdge(%q): missing edge: %w", id, ErrInvalidEdge)
	}
	if !e.Removable {
		return fmt.Errorf("RemoveEdge(%q): edge is non-removable: %w", id, ErrInvalidEdge)
	}

	delete(g.edges, id)
	delete(g.adj[e.U], e.V)
	delete(g.adj[e.V], e.U)
	g.rev++

	return nil
}

// RemoveNode deletes a junction together with all incident edges.
//
// Errors: ErrNodeNotFound; ErrInvalidEdge when any incident edge is marked
// non-removable (the node cannot be ablated without severing a mandatory
// segment).
// Complexity: O(deg).
func (g *Graph) RemoveNode(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("RemoveNode(%q): %w", id, ErrNodeNotFound)
	}
	for _, eid := range g.adj[id] {
		if !g.edges[eid].Removable {
			return fmt.Errorf("RemoveNode(%q): incident edge %q is non-removable: %w", id, eid, ErrInvalidEdge)
		}
	}

	for nb, eid := range g.adj[id] {
		delete(g.edges, eid)
		delete(g.adj[nb], id)
	}
	delete(g.adj, id)
	delete(g.nodes, id)
	g.rev++

	return nil
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("Node(%q): %w", id, ErrNodeNotFound)
	}

	return *n, nil
}

// Edge returns a copy of the edge with the given ID.
func (g *Graph) Edge(id string) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, ok := g.edges[id]
	if !ok {
		return Edge{}, fmt.Errorf("Edge(%q): %w", id, ErrInvalidEdge)
	}

	return *e, nil
}

// Nodes returns copies of all nodes, sorted by ID asc.
// Complexity: O(V log V).
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, *n)
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Edges returns copies of all edges, sorted by Seq asc.
// Complexity: O(E log E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })

	return out
}

// NodeCount returns the number of nodes. Complexity: O(1).
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// EdgeCount returns the number of edges. Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// HasEdge reports whether an edge exists between the two junctions.
// Complexity: O(1).
func (g *Graph) HasEdge(u, v string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.adj[u][v]

	return ok
}

// Degree returns the number of edges incident to the node.
func (g *Graph) Degree(id string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nbrs, ok := g.adj[id]
	if !ok {
		return 0, fmt.Errorf("Degree(%q): %w", id, ErrNodeNotFound)
	}

	return len(nbrs), nil
}

// Revision returns the monotone structural revision counter. Any derived
// computation cached at revision r is stale once Revision() != r.
func (g *Graph) Revision() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.rev
}

// Clone returns a deep copy of the graph topology. Node Attrs payloads are
// shared, not deep-copied. The clone starts at the source's revision and
// continues its own sequence from there.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := NewGraph()
	out.rev = g.rev
	out.nextSeq = g.nextSeq
	for id, n := range g.nodes {
		cp := *n
		out.nodes[id] = &cp
		out.adj[id] = make(map[string]string, len(g.adj[id]))
	}
	for id, e := range g.edges {
		cp := *e
		out.edges[id] = &cp
		out.adj[e.U][e.V] = id
		out.adj[e.V][e.U] = id
	}

	return out
}
