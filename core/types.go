// File: types.go
// Role: Node, Edge, Region, Graph declarations, sentinel errors, options,
//       and the NewGraph constructor.

package core

import (
	"errors"
	"math"
	"sync"
)

// Sentinel errors for structural operations.
var (
	// ErrEmptyNodeID indicates that a node identifier was empty.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrDuplicateNode indicates AddNode was called with an ID already in use.
	ErrDuplicateNode = errors.New("core: node already exists")

	// ErrBadConductance indicates an edge conductance that is not a finite
	// positive value. Conductance is the inverse of vessel resistance and
	// must be > 0.
	ErrBadConductance = errors.New("core: conductance must be finite and > 0")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrDuplicateEdge indicates a second edge between the same node pair.
	ErrDuplicateEdge = errors.New("core: edge already exists between endpoints")

	// ErrInvalidEdge indicates a malformed structural edit: removing an edge
	// that does not exist, or one marked non-removable.
	ErrInvalidEdge = errors.New("core: invalid edge edit")
)

// Region labels a node or edge as part of the pathological sub-network, the
// healthy sub-network, or the boundary between them.
type Region uint8

const (
	// Pathological marks the diseased sub-network targeted by ablation.
	Pathological Region = iota

	// Healthy marks the surrounding tissue whose resilience must be spared.
	Healthy

	// Boundary marks interface junctions shared by both region views.
	Boundary
)

// String returns the lowercase label used in logs and test output.
func (r Region) String() string {
	switch r {
	case Pathological:
		return "pathological"
	case Healthy:
		return "healthy"
	case Boundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// Node is a vessel junction.
//
// ID uniquely identifies the node and is stable across edits. Attrs carries
// opaque auxiliary payload (e.g. spatial coordinates) that the core never
// inspects; it is shared, not deep-copied, by Clone.
type Node struct {
	ID     string
	Region Region
	Attrs  map[string]any
}

// Edge is a vessel segment between two junctions.
//
// The pair (U, V) is unordered; AddEdge stores endpoints in the order given.
// Conductance is the inverse of vessel resistance and is always > 0.
// Removable=false excludes the edge from ablation candidacy (e.g. the only
// supply path to healthy tissue). Seq is a monotone insertion index used for
// deterministic tie-breaking; it is assigned by AddEdge and never reused.
type Edge struct {
	ID          string
	U, V        string
	Conductance float64
	Region      Region
	Removable   bool
	Seq         uint64
}

// Other returns the endpoint opposite to id, or "" if id is not an endpoint.
func (e Edge) Other(id string) string {
	switch id {
	case e.U:
		return e.V
	case e.V:
		return e.U
	default:
		return ""
	}
}

// NodeOption configures a node at AddNode time.
type NodeOption func(*Node)

// WithAttrs attaches an opaque attribute payload to the node.
func WithAttrs(attrs map[string]any) NodeOption {
	return func(n *Node) { n.Attrs = attrs }
}

// EdgeOption configures an edge at AddEdge time.
type EdgeOption func(*Edge)

// WithNonRemovable marks the edge as structurally mandatory, excluding it
// from ablation candidacy.
func WithNonRemovable() EdgeOption {
	return func(e *Edge) { e.Removable = false }
}

// WithEdgeRegion overrides the region label derived from the endpoints.
func WithEdgeRegion(r Region) EdgeOption {
	return func(e *Edge) { e.Region = r }
}

// Graph is the in-memory vascular network model.
//
// mu guards all fields. rev increases by one on every structural mutation;
// readers snapshot it via Revision(). adj maps node ID → neighbor ID →
// edge ID (simple graph: at most one edge per pair, no loops).
type Graph struct {
	mu sync.RWMutex

	nodes map[string]*Node
	edges map[string]*Edge
	adj   map[string]map[string]string

	rev     uint64
	nextSeq uint64
}

// NewGraph creates an empty vascular graph.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[string]*Edge),
		adj:   make(map[string]map[string]string),
	}
}

// validConductance reports whether c is a legal edge conductance.
func validConductance(c float64) bool {
	return c > 0 && !math.IsInf(c, 0) && !math.IsNaN(c)
}
