package analysis

import (
	"context"
	"runtime"

	"github.com/specialistvlad/causalcore/internal/nodestore"
	"golang.org/x/sync/errgroup"
)

// Diameter returns the largest eccentricity over all nodes, where the
// eccentricity of a node is the longest shortest-path distance (in edges) to
// any fact it can reach along dependency edges. Unreachable pairs are ignored.
//
// Each node's BFS touches only the shared snapshot, so sources are processed
// concurrently by at most workers goroutines (GOMAXPROCS when workers < 1).
// Sources not yet started when ctx is cancelled are skipped, so a cancelled
// call returns a lower bound.
func Diameter(ctx context.Context, snap nodestore.Snapshot, workers int) int {
	ids := snap.IDs()
	if len(ids) == 0 {
		return 0
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	ecc := make([]int, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ecc[i] = eccentricity(snap, id)
			return nil
		})
	}
	_ = g.Wait()

	best := 0
	for _, e := range ecc {
		best = max(best, e)
	}
	return best
}

// eccentricity runs a BFS from source and returns the distance of the
// farthest reached fact.
func eccentricity(snap nodestore.Snapshot, source string) int {
	dist := map[string]int{source: 0}
	queue := []string{source}
	farthest := 0

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		d := dist[u]
		farthest = max(farthest, d)

		deps, _ := snap.Dependents(u)
		for _, v := range deps {
			if _, seen := dist[v]; !seen {
				dist[v] = d + 1
				queue = append(queue, v)
			}
		}
	}
	return farthest
}
