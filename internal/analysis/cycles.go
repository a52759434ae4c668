package analysis

import (
	"github.com/specialistvlad/causalcore/internal/nodeid"
	"github.com/specialistvlad/causalcore/internal/nodestore"
)

// dfsFrame is one entry of the explicit DFS stack: a node and the position of
// the next dependent to examine.
type dfsFrame struct {
	id   string
	deps []string
	next int
}

// DetectCycles returns the cycles found by a depth-first search started from
// every node not yet explored.
//
// Each back-edge (an edge to a node still on the current path) reports the
// path suffix from that node to the current one. Cycles are neither
// deduplicated nor canonicalized, so the same loop may be reported more than
// once in different rotations. The search uses an explicit stack, so deep
// chains cannot exhaust the goroutine stack.
func DetectCycles(snap nodestore.Snapshot) [][]string {
	var cycles [][]string
	visited := nodeid.NewSet()
	// onPath maps every node on the current DFS path to its index in path.
	onPath := make(map[string]int)
	var path []string
	var stack []dfsFrame

	push := func(id string) {
		visited.Add(id)
		onPath[id] = len(path)
		path = append(path, id)
		deps, _ := snap.Dependents(id)
		stack = append(stack, dfsFrame{id: id, deps: deps})
	}

	for _, root := range snap.IDs() {
		if visited.Contains(root) {
			continue
		}
		push(root)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.deps) {
				delete(onPath, top.id)
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
				continue
			}

			neighbor := top.deps[top.next]
			top.next++

			if !visited.Contains(neighbor) {
				push(neighbor)
			} else if pos, ok := onPath[neighbor]; ok {
				cycle := make([]string, len(path)-pos)
				copy(cycle, path[pos:])
				cycles = append(cycles, cycle)
			}
		}
	}

	return cycles
}
