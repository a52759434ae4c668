package analysis

import (
	"github.com/specialistvlad/causalcore/internal/nodeid"
	"github.com/specialistvlad/causalcore/internal/nodestore"
)

// JaccardSimilarity compares the direct dependent sets of two facts:
// |deps(a) ∩ deps(b)| / |deps(a) ∪ deps(b)|. Unknown facts have an empty set,
// and the similarity of two empty sets is 0.
func JaccardSimilarity(snap nodestore.Snapshot, a, b string) float64 {
	depsA, _ := snap.Dependents(a)
	depsB, _ := snap.Dependents(b)
	setA := nodeid.NewSet(depsA...)
	setB := nodeid.NewSet(depsB...)

	union := setA.Union(setB)
	if union == 0 {
		return 0
	}
	return float64(setA.Intersect(setB)) / float64(union)
}
