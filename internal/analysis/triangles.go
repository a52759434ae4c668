package analysis

import (
	"slices"

	"github.com/specialistvlad/causalcore/internal/nodeid"
	"github.com/specialistvlad/causalcore/internal/nodestore"
)

// CountTriangles approximates the number of triangles in the directed graph.
//
// For every path A -> B -> C it counts one when C lists A (a directed 3-cycle
// closing on A) and one when A also lists C directly (a transitive triple).
// The sum is divided by three as a crude de-duplication factor: a 3-cycle is
// seen once from each of its members and counts as one, while a lone
// transitive triple is seen once and rounds down. The result is an estimate,
// not an exact count. Duplicate edges are counted once per occurrence.
func CountTriangles(snap nodestore.Snapshot) int {
	count := 0
	for _, a := range snap.IDs() {
		depsA, _ := snap.Dependents(a)
		direct := nodeid.NewSet(depsA...)

		for _, b := range depsA {
			depsB, ok := snap.Dependents(b)
			if !ok {
				continue
			}
			for _, c := range depsB {
				if c == a || c == b {
					continue
				}
				depsC, _ := snap.Dependents(c)
				if slices.Contains(depsC, a) {
					count++
				}
				if direct.Contains(c) {
					count++
				}
			}
		}
	}
	return count / 3
}
