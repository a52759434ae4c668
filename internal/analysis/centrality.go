package analysis

import "github.com/specialistvlad/causalcore/internal/nodestore"

// Betweenness returns a degree-centrality proxy for betweenness: the
// out-degree of every node, duplicates included. It is an approximation, not
// shortest-path betweenness centrality.
func Betweenness(snap nodestore.Snapshot) map[string]float64 {
	out := make(map[string]float64, snap.Len())
	for _, id := range snap.IDs() {
		deps, _ := snap.Dependents(id)
		out[id] = float64(len(deps))
	}
	return out
}

// Closeness returns 1/(out-degree+1) for every node. It is an approximation,
// not distance-based closeness centrality.
func Closeness(snap nodestore.Snapshot) map[string]float64 {
	out := make(map[string]float64, snap.Len())
	for _, id := range snap.IDs() {
		deps, _ := snap.Dependents(id)
		out[id] = 1.0 / (float64(len(deps)) + 1.0)
	}
	return out
}

// FindCliques estimates the size of the largest clique as the maximum
// out-degree plus one. No clique is actually searched for.
func FindCliques(snap nodestore.Snapshot) int {
	best := 0
	for _, id := range snap.IDs() {
		deps, _ := snap.Dependents(id)
		best = max(best, len(deps))
	}
	return best + 1
}

// KCore returns, in ascending order, the nodes whose out-degree is at least k.
// This single-pass filter approximates a k-core; it does no iterative peeling
// and ignores in-degree. A negative k is treated as zero.
func KCore(snap nodestore.Snapshot, k int) []string {
	out := make([]string, 0)
	for _, id := range snap.IDs() {
		deps, _ := snap.Dependents(id)
		if len(deps) >= k {
			out = append(out, id)
		}
	}
	return out
}
