package analysis

import (
	"github.com/specialistvlad/causalcore/internal/nodeid"
	"github.com/specialistvlad/causalcore/internal/nodestore"
)

// DetectCommunities partitions the graph into connected components.
//
// Flood fills are seeded from every node not yet assigned and follow
// dependency edges in both directions, so each community is maximal. Dangling
// dependents belong to the community of the nodes that name them. Every
// identifier that appears in the graph, as a node or as a dependent, ends up
// in exactly one community.
func DetectCommunities(snap nodestore.Snapshot) []nodeid.Set {
	ids := snap.IDs()

	reverse := make(map[string][]string)
	for _, id := range ids {
		deps, _ := snap.Dependents(id)
		for _, dep := range deps {
			reverse[dep] = append(reverse[dep], id)
		}
	}

	var communities []nodeid.Set
	visited := nodeid.NewSet()

	for _, seed := range ids {
		if visited.Contains(seed) {
			continue
		}

		community := nodeid.NewSet()
		stack := []string{seed}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !visited.Add(current) {
				continue
			}
			community.Add(current)

			deps, _ := snap.Dependents(current)
			for _, dep := range deps {
				if !visited.Contains(dep) {
					stack = append(stack, dep)
				}
			}
			for _, pred := range reverse[current] {
				if !visited.Contains(pred) {
					stack = append(stack, pred)
				}
			}
		}
		communities = append(communities, community)
	}

	return communities
}
