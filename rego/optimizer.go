// File: optimizer.go
// Role: the greedy search loop — candidate pool, parallel evaluation,
//       deterministic selection, commit, termination.
// Concurrency:
//   - Candidate evaluation is read-only and fans out over an errgroup
//     bounded by WithParallelism; selection and commit stay sequential, so
//     the plan is identical for any parallelism level.

package rego

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/vasculab/angio/core"
	"github.com/vasculab/angio/rs"
	"github.com/vasculab/angio/spectral"
)

// candidate is one pool element of an iteration, in deterministic pool
// order (edge Seq asc, or node ID asc).
type candidate struct {
	id   string
	edge core.Edge // valid when unit == UnitEdge
}

// evaluation is the scored outcome of removing one candidate.
type evaluation struct {
	delta          float64 // ΔRs of the pathological view
	collateral     float64 // max(0, −ΔRs) of the healthy view
	score          float64 // delta − λ·collateral
	touchesHealthy bool
}

// search carries the mutable state of one Optimize run.
type search struct {
	o options
	g *core.Graph

	pathView    *core.RegionView
	healthyView *core.RegionView

	// Operators are nil once their view has no usable edges left; a nil
	// operator means the region is fully shattered (all pairs +Inf).
	pathOp    *spectral.Operator
	healthyOp *spectral.Operator

	pathCur    rs.Score
	healthyCur rs.Score

	cumulative float64
	plan       *Plan
}

// Optimize runs the greedy REGO search on g and returns the finalized
// ablation plan. The optimizer is the only mutator of the graph; the plan
// lists the removals in commit order together with the before/after Rs
// snapshots of both regions.
//
// Context cancellation is honored between iterations and surfaces as
// StatusPartial with a nil error — the committed prefix is a valid plan.
//
// Errors: ErrNilGraph, ErrInfeasibleStart, and wrapped spectral errors on
// degenerate numeric input.
func Optimize(ctx context.Context, g *core.Graph, opts ...Option) (*Plan, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if ctx == nil {
		ctx = context.Background()
	}
	o := gatherOptions(opts...)

	s := &search{
		o:           o,
		g:           g,
		pathView:    g.Subgraph(core.Pathological),
		healthyView: g.Subgraph(core.Healthy),
		plan:        &Plan{Status: StatusCompleted},
	}
	if s.pathView.NodeCount() == 0 || s.pathView.EdgeCount() == 0 {
		return nil, ErrInfeasibleStart
	}

	var err error
	s.pathOp, err = spectral.NewOperator(s.pathView, o.spectralOpts()...)
	if err != nil {
		return nil, fmt.Errorf("rego: pathological view: %w", err)
	}
	s.healthyOp, err = spectral.NewOperator(s.healthyView, o.spectralOpts()...)
	if err != nil {
		if !errors.Is(err, spectral.ErrSingularInput) {
			return nil, fmt.Errorf("rego: healthy view: %w", err)
		}
		// Edge-free healthy region: no collateral surface exists.
		s.healthyOp = nil
	}

	if s.pathCur, err = s.score(s.pathView, s.pathOp); err != nil {
		return nil, fmt.Errorf("rego: %w", err)
	}
	if s.healthyCur, err = s.score(s.healthyView, s.healthyOp); err != nil {
		return nil, fmt.Errorf("rego: %w", err)
	}
	s.plan.PathologicalBefore = s.pathCur
	s.plan.HealthyBefore = s.healthyCur

	if err := s.run(ctx); err != nil {
		return nil, err
	}
	s.plan.PathologicalAfter = s.pathCur
	s.plan.HealthyAfter = s.healthyCur

	return s.plan, nil
}

// run executes the Searching → CandidateEvaluation → CommitMove loop.
func (s *search) run(ctx context.Context) error {
	for len(s.plan.Ablations) < s.o.budget {
		if ctx.Err() != nil {
			s.plan.Status = StatusPartial

			return nil
		}

		pool := s.candidates()
		if len(pool) == 0 {
			return nil // nothing left to ablate
		}

		evals := make([]evaluation, len(pool))
		eg := new(errgroup.Group)
		eg.SetLimit(s.o.parallelism)
		for i, c := range pool {
			i, c := i, c
			eg.Go(func() error {
				ev, err := s.evaluate(c)
				if err != nil {
					return err
				}
				evals[i] = ev

				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return fmt.Errorf("rego: %w", err)
		}

		// Sequential selection in pool order keeps tie-breaks deterministic:
		// higher score wins, then lower collateral, then earlier pool entry.
		best := -1
		for i := range evals {
			if s.cumulative+evals[i].collateral > s.o.threshold {
				continue // constraint violation excludes, never penalizes
			}
			if best < 0 ||
				evals[i].score > evals[best].score ||
				(evals[i].score == evals[best].score && evals[i].collateral < evals[best].collateral) {
				best = i
			}
		}
		if best < 0 {
			// The pool was emptied solely by the collateral constraint.
			s.plan.Status = StatusPartial

			return nil
		}
		if evals[best].score <= 0 {
			return nil // no improving move left
		}

		if err := s.commit(pool[best], evals[best]); err != nil {
			return err
		}
	}

	return nil
}

// candidates returns this iteration's pool in deterministic order.
func (s *search) candidates() []candidate {
	if s.pathOp == nil {
		return nil
	}

	if s.o.unit == UnitNode {
		return s.nodeCandidates()
	}

	edges := s.pathView.Edges()
	pool := make([]candidate, 0, len(edges))
	for _, e := range edges {
		if e.Removable {
			pool = append(pool, candidate{id: e.ID, edge: e})
		}
	}

	return pool
}

// nodeCandidates lists the view's junctions whose every incident segment
// is removable (RemoveNode would reject the others).
func (s *search) nodeCandidates() []candidate {
	blocked := make(map[string]bool)
	for _, e := range s.g.Edges() {
		if !e.Removable {
			blocked[e.U] = true
			blocked[e.V] = true
		}
	}

	nodes := s.pathView.Nodes()
	pool := make([]candidate, 0, len(nodes))
	for _, n := range nodes {
		if !blocked[n.ID] {
			pool = append(pool, candidate{id: n.ID})
		}
	}

	return pool
}

// evaluate scores one candidate without mutating anything.
func (s *search) evaluate(c candidate) (evaluation, error) {
	if s.o.unit == UnitNode {
		return s.evaluateNode(c.id)
	}

	return s.evaluateEdge(c.edge)
}

// evaluateEdge scores an edge removal through the spectral preview path.
func (s *search) evaluateEdge(e core.Edge) (evaluation, error) {
	p, err := s.pathOp.PreviewRemoval(e.ID)
	if err != nil {
		return evaluation{}, fmt.Errorf("candidate %s: %w", e.ID, err)
	}
	pathAfter, err := rs.FromAggregate(withoutEdge(s.pathView, e.ID), s.pathOp, p.Aggregate, s.o.rsOpts()...)
	if err != nil {
		return evaluation{}, fmt.Errorf("candidate %s: %w", e.ID, err)
	}

	ev := evaluation{delta: pathAfter.Combined - s.pathCur.Combined}
	if s.healthyOp != nil && s.inHealthyView(e) {
		hp, herr := s.healthyOp.PreviewRemoval(e.ID)
		if herr != nil {
			return evaluation{}, fmt.Errorf("candidate %s: %w", e.ID, herr)
		}
		healthyAfter, herr := rs.FromAggregate(withoutEdge(s.healthyView, e.ID), s.healthyOp, hp.Aggregate, s.o.rsOpts()...)
		if herr != nil {
			return evaluation{}, fmt.Errorf("candidate %s: %w", e.ID, herr)
		}
		ev.touchesHealthy = true
		if dh := healthyAfter.Combined - s.healthyCur.Combined; dh < 0 {
			ev.collateral = -dh
		}
	}
	ev.score = ev.delta - s.o.lambda*ev.collateral

	return ev, nil
}

// evaluateNode scores a junction removal. Node removal is a rank-k
// perturbation plus an index change, outside the rank-one update's domain,
// so each candidate pays a scratch operator build.
func (s *search) evaluateNode(id string) (evaluation, error) {
	pathAfter, err := s.scoreScratch(withoutNode(s.pathView, id))
	if err != nil {
		return evaluation{}, fmt.Errorf("candidate %s: %w", id, err)
	}

	ev := evaluation{delta: pathAfter.Combined - s.pathCur.Combined}
	n, err := s.g.Node(id)
	if err != nil {
		return evaluation{}, err
	}
	if n.Region == core.Boundary {
		healthyAfter, herr := s.scoreScratch(withoutNode(s.healthyView, id))
		if herr != nil {
			return evaluation{}, fmt.Errorf("candidate %s: %w", id, herr)
		}
		ev.touchesHealthy = true
		if dh := healthyAfter.Combined - s.healthyCur.Combined; dh < 0 {
			ev.collateral = -dh
		}
	}
	ev.score = ev.delta - s.o.lambda*ev.collateral

	return ev, nil
}

// commit applies the selected move to the graph, resynchronizes both
// operators and appends the ablation record.
func (s *search) commit(c candidate, ev evaluation) error {
	if s.o.unit == UnitNode {
		if err := s.g.RemoveNode(c.id); err != nil {
			return fmt.Errorf("rego: commit %s: %w", c.id, err)
		}
		if err := s.rebuildOperators(); err != nil {
			return err
		}
	} else {
		if err := s.g.RemoveEdge(c.id); err != nil {
			return fmt.Errorf("rego: commit %s: %w", c.id, err)
		}
		rev := s.g.Revision()
		if err := s.downdate(&s.pathOp, c.edge, rev, true); err != nil {
			return err
		}
		if err := s.downdate(&s.healthyOp, c.edge, rev, ev.touchesHealthy); err != nil {
			return err
		}
	}

	s.cumulative += ev.collateral
	s.plan.Ablations = append(s.plan.Ablations, Ablation{
		Target:               c.id,
		Unit:                 s.o.unit,
		DeltaRs:              ev.delta,
		Collateral:           ev.collateral,
		CumulativeCollateral: s.cumulative,
	})

	var err error
	if s.pathCur, err = s.score(s.pathView, s.pathOp); err != nil {
		return fmt.Errorf("rego: %w", err)
	}
	if s.healthyCur, err = s.score(s.healthyView, s.healthyOp); err != nil {
		return fmt.Errorf("rego: %w", err)
	}

	if s.o.logger != nil {
		s.o.logger.Info("ablation committed",
			"target", c.id,
			"unit", s.o.unit.String(),
			"deltaRs", ev.delta,
			"collateral", ev.collateral,
			"cumulative", s.cumulative,
			"pathRs", s.pathCur.Combined,
			"healthyRs", s.healthyCur.Combined)
	}

	return nil
}

// downdate resynchronizes one operator after an edge commit. member says
// whether the removed edge belonged to the operator's view; a non-member
// removal only advances the revision. An operator whose view ran out of
// usable edges collapses to nil (fully shattered region).
func (s *search) downdate(op **spectral.Operator, e core.Edge, rev uint64, member bool) error {
	if *op == nil {
		return nil
	}
	var err error
	if member {
		err = (*op).Removed(e, rev)
	} else {
		err = (*op).Synced(rev)
	}
	if err != nil {
		if errors.Is(err, spectral.ErrSingularInput) {
			*op = nil

			return nil
		}

		return fmt.Errorf("rego: %w", err)
	}

	return nil
}

// rebuildOperators rederives both operators after a node commit.
func (s *search) rebuildOperators() error {
	rebuild := func(op **spectral.Operator) error {
		if *op == nil {
			return nil
		}
		if err := (*op).Rebuild(); err != nil {
			if errors.Is(err, spectral.ErrSingularInput) {
				*op = nil

				return nil
			}

			return fmt.Errorf("rego: %w", err)
		}

		return nil
	}
	if err := rebuild(&s.pathOp); err != nil {
		return err
	}

	return rebuild(&s.healthyOp)
}

// inHealthyView reports whether the edge also belongs to the healthy view.
// A pathological-view edge has endpoints labeled Pathological or Boundary,
// so it is shared exactly when both endpoints sit on the boundary.
func (s *search) inHealthyView(e core.Edge) bool {
	nu, errU := s.g.Node(e.U)
	nv, errV := s.g.Node(e.V)
	if errU != nil || errV != nil {
		return false
	}

	return nu.Region == core.Boundary && nv.Region == core.Boundary
}

// score computes the current Rs of a view; a nil operator means the view
// has no conducting structure, which saturates the spectral term.
func (s *search) score(view core.GraphView, op *spectral.Operator) (rs.Score, error) {
	if op == nil {
		return s.collapsedScore(view)
	}

	return rs.Compute(view, op, s.o.rsOpts()...)
}

// collapsedScore scores an edge-free view: every pair is disconnected, so
// the aggregate is +Inf as soon as two nodes exist.
func (s *search) collapsedScore(view core.GraphView) (rs.Score, error) {
	agg := 0.0
	if view.NodeCount() >= 2 {
		agg = math.Inf(1)
	}

	return rs.FromAggregate(view, nil, agg, s.o.rsOpts()...)
}

// scoreScratch scores a hypothetical view with a throwaway operator — the
// node-unit preview path.
func (s *search) scoreScratch(view core.GraphView) (rs.Score, error) {
	op, err := spectral.NewOperator(view, s.o.spectralOpts()...)
	if err != nil {
		if errors.Is(err, spectral.ErrSingularInput) {
			return s.collapsedScore(view)
		}

		return rs.Score{}, err
	}

	return rs.Compute(view, op, s.o.rsOpts()...)
}
