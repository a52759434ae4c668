package analysis

import (
	"slices"

	"github.com/specialistvlad/causalcore/internal/nodestore"
)

// PageRank configuration defaults.
const (
	// DefaultDampingFactor is the probability of following an edge rather
	// than teleporting.
	DefaultDampingFactor = 0.85

	// DefaultIterations is the number of power iterations run when a caller
	// does not choose one.
	DefaultIterations = 20
)

// PageRank computes PageRank scores for every node by power iteration.
//
// Every node starts at 1/N. In each iteration a node receives, from each node
// that lists it as a dependent, that node's rank divided by its out-degree
// (floored at one), scaled by damping, plus a (1-damping)/N teleport term.
// Predecessors are found by scanning every node on every iteration; no reverse
// index is cached. Exactly iterations rounds are run with no convergence
// check. Dangling dependents are not ranked.
func PageRank(snap nodestore.Snapshot, iterations int, damping float64) map[string]float64 {
	ids := snap.IDs()
	n := len(ids)
	ranks := make(map[string]float64, n)
	if n == 0 {
		return ranks
	}

	initial := 1.0 / float64(n)
	for _, id := range ids {
		ranks[id] = initial
	}

	teleport := (1.0 - damping) / float64(n)
	for i := 0; i < iterations; i++ {
		next := make(map[string]float64, n)
		for _, id := range ids {
			var sum float64
			for _, other := range ids {
				deps, _ := snap.Dependents(other)
				if slices.Contains(deps, id) {
					sum += ranks[other] / float64(max(len(deps), 1))
				}
			}
			next[id] = teleport + damping*sum
		}
		ranks = next
	}

	return ranks
}
