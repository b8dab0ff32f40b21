// File: view.go
// Role: hypothetical pruned views for candidate scoring — the view a
//       region would present after a removal, without mutating anything.

package rego

import "github.com/vasculab/angio/core"

// prunedView overlays a removal on a backing view: one edge, or one node
// with its incident edges, is filtered out of every accessor. Used to
// score the "without candidate" side of a delta before any commit.
type prunedView struct {
	src      core.GraphView
	dropEdge string
	dropNode string
}

var _ core.GraphView = (*prunedView)(nil)

func withoutEdge(src core.GraphView, edgeID string) *prunedView {
	return &prunedView{src: src, dropEdge: edgeID}
}

func withoutNode(src core.GraphView, nodeID string) *prunedView {
	return &prunedView{src: src, dropNode: nodeID}
}

func (v *prunedView) keeps(e core.Edge) bool {
	if e.ID == v.dropEdge {
		return false
	}
	if v.dropNode != "" && (e.U == v.dropNode || e.V == v.dropNode) {
		return false
	}

	return true
}

// Nodes returns the backing view's nodes minus the dropped one, order
// preserved (ID asc).
func (v *prunedView) Nodes() []core.Node {
	src := v.src.Nodes()
	if v.dropNode == "" {
		return src
	}
	out := make([]core.Node, 0, len(src))
	for _, n := range src {
		if n.ID != v.dropNode {
			out = append(out, n)
		}
	}

	return out
}

// Edges returns the surviving edges, order preserved (Seq asc).
func (v *prunedView) Edges() []core.Edge {
	src := v.src.Edges()
	out := make([]core.Edge, 0, len(src))
	for _, e := range src {
		if v.keeps(e) {
			out = append(out, e)
		}
	}

	return out
}

func (v *prunedView) NodeCount() int { return len(v.Nodes()) }

func (v *prunedView) EdgeCount() int { return len(v.Edges()) }

// Revision reports the backing view's revision: the pruned view describes
// a hypothetical future of the same snapshot.
func (v *prunedView) Revision() uint64 { return v.src.Revision() }
