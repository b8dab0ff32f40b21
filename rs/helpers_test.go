package rs_test

import (
	"fmt"
	"math/rand"

	"github.com/vasculab/angio/core"
)

// randomGraph builds a seeded graph: a spanning tree plus chords, with an
// occasional isolated junction so the disconnected branch gets exercised.
func randomGraph(seed int64) *core.Graph {
	rng := rand.New(rand.NewSource(seed))
	n := 3 + rng.Intn(8)

	g := core.NewGraph()
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = fmt.Sprintf("n%02d", i)
		if err := g.AddNode(ids[i], core.Healthy); err != nil {
			panic(err)
		}
	}
	for i := 1; i < n; i++ {
		if _, err := g.AddEdge(ids[rng.Intn(i)], ids[i], 0.5+1.5*rng.Float64()); err != nil {
			panic(err)
		}
	}
	for extra := 0; extra < n/3; extra++ {
		u, v := rng.Intn(n), rng.Intn(n)
		if u == v || g.HasEdge(ids[u], ids[v]) {
			continue
		}
		if _, err := g.AddEdge(ids[u], ids[v], 0.5+1.5*rng.Float64()); err != nil {
			panic(err)
		}
	}
	if seed%3 == 0 {
		if err := g.AddNode("island", core.Healthy); err != nil {
			panic(err)
		}
	}

	return g
}
