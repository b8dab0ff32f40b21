// Package core defines the vascular network GraphModel: nodes (vessel
// junctions), edges (vessel segments carrying a positive conductance), and a
// region labeling that partitions the network into pathological, healthy,
// and boundary tissue.
//
// The graph is built once per patient case from an external graph-extraction
// stage, then mutated in place (edge/node removal) only by the REGO
// optimizer. Every structural mutation bumps a monotonically increasing
// revision counter; derived computations (Laplacians, pseudoinverses,
// scores) must validate their cached state against Revision() before
// trusting it. That contract replaces implicit module-level caching with a
// first-class, testable invariant.
//
// Determinism:
//
//	– Nodes() returns nodes sorted by ID asc.
//	– Edges() returns edges sorted by Seq asc (stable insertion index).
//	– Edge IDs are generated as "e"+decimal and never reused.
//
// Concurrency:
//
//	– One sync.RWMutex guards all state. The intended model is a single
//	  writer (the optimizer's commit step) and any number of concurrent
//	  readers (parallel candidate evaluation).
//
// Errors (sentinel):
//
//	– ErrEmptyNodeID      empty node identifier.
//	– ErrNodeNotFound     operation referenced a missing node.
//	– ErrDuplicateNode    AddNode with an already-present ID.
//	– ErrBadConductance   edge conductance not finite-positive.
//	– ErrLoopNotAllowed   self-loop attempted (vessels never self-connect).
//	– ErrDuplicateEdge    second edge between the same pair of junctions.
//	– ErrInvalidEdge      malformed structural edit: removal of a missing
//	                      or non-removable edge.
package core
