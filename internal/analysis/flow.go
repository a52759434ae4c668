package analysis

import "github.com/specialistvlad/causalcore/internal/nodestore"

// MaxFlowPlaceholder is the value MaxFlow reports for every pair of facts.
const MaxFlowPlaceholder = 1

// MaxFlow is a placeholder for a maximum-flow computation between source and
// sink. It does not inspect the graph and always returns MaxFlowPlaceholder;
// callers must not treat the result as authoritative.
//
// TODO: replace with Edmonds-Karp over unit capacities once callers agree on
// the behavior change.
func MaxFlow(_ nodestore.Snapshot, _, _ string) int {
	return MaxFlowPlaceholder
}
