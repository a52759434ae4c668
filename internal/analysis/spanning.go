package analysis

import (
	"github.com/specialistvlad/causalcore/internal/nodeid"
	"github.com/specialistvlad/causalcore/internal/nodestore"
)

// Edge is a directed dependency edge From -> To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SpanningTree returns the edges of a breadth-first tree rooted at the first
// node in identifier order, in discovery order.
//
// The graph is unweighted, so this is a connectivity tree rather than a
// weighted minimum spanning tree, and it only covers the facts reachable from
// the root.
func SpanningTree(snap nodestore.Snapshot) []Edge {
	edges := make([]Edge, 0)
	ids := snap.IDs()
	if len(ids) == 0 {
		return edges
	}

	root := ids[0]
	visited := nodeid.NewSet(root)
	queue := []string{root}

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		deps, _ := snap.Dependents(u)
		for _, v := range deps {
			if visited.Add(v) {
				edges = append(edges, Edge{From: u, To: v})
				queue = append(queue, v)
			}
		}
	}
	return edges
}
