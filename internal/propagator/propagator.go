package propagator

import (
	"context"
	"runtime"
	"sync"

	"github.com/specialistvlad/causalcore/internal/ctxlog"
	"github.com/specialistvlad/causalcore/internal/nodeid"
	"github.com/specialistvlad/causalcore/internal/nodestore"
)

const (
	// DefaultParallelThreshold is the frontier width above which a level is
	// expanded by the worker pool. Narrower levels are expanded inline.
	DefaultParallelThreshold = 32

	// maxWorkers caps the pool regardless of CPU count. Expansion is memory
	// bound and gains little beyond this.
	maxWorkers = 8
)

// Propagator walks the dependents relation outward from a changed fact.
type Propagator struct {
	workers           int
	parallelThreshold int
}

// Option configures a Propagator.
type Option func(*Propagator)

// WithWorkers sets the number of goroutines used to expand a wide frontier.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(p *Propagator) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithParallelThreshold sets the frontier width above which expansion runs in
// parallel. A negative value is ignored; zero parallelizes every level.
func WithParallelThreshold(n int) Option {
	return func(p *Propagator) {
		if n >= 0 {
			p.parallelThreshold = n
		}
	}
}

// New creates a Propagator.
func New(opts ...Option) *Propagator {
	p := &Propagator{
		workers:           min(runtime.GOMAXPROCS(0), maxWorkers),
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of a single propagation.
type Result struct {
	// Invalidated holds every fact reachable from the start through one or
	// more dependency edges. The start itself is only present when a cycle
	// leads back to it.
	Invalidated nodeid.Set
	// Levels is the number of frontiers that were expanded.
	Levels int
	// ParallelLevels is how many of those levels used the worker pool.
	ParallelLevels int
}

// Propagate returns the set of facts invalidated by a change to start. An
// unknown start fact yields an empty set.
func (p *Propagator) Propagate(ctx context.Context, snap nodestore.Snapshot, start string) *Result {
	logger := ctxlog.FromContext(ctx)

	res := &Result{Invalidated: nodeid.NewSet()}
	inv := &invalidatedSet{set: res.Invalidated}
	frontier := []string{start}

	for len(frontier) > 0 {
		var next []string
		if len(frontier) > p.parallelThreshold && p.workers > 1 {
			next = p.expandParallel(snap, frontier, inv)
			res.ParallelLevels++
		} else {
			next = expandSequential(snap, frontier, inv)
		}
		res.Levels++
		logger.Debug("Expanded invalidation frontier.", "level", res.Levels, "frontier", len(frontier), "discovered", len(next))
		frontier = next
	}

	return res
}

// invalidatedSet is the synchronization point shared by all workers of a
// level.
type invalidatedSet struct {
	mu  sync.Mutex
	set nodeid.Set
}

// claim inserts id and reports whether this caller was the first to do so.
func (s *invalidatedSet) claim(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Add(id)
}

func expandSequential(snap nodestore.Snapshot, frontier []string, inv *invalidatedSet) []string {
	var next []string
	for _, id := range frontier {
		deps, _ := snap.Dependents(id)
		for _, dep := range deps {
			if inv.claim(dep) {
				next = append(next, dep)
			}
		}
	}
	return next
}

// expandParallel fans the frontier out to a worker pool. Each worker keeps a
// local slice of the identifiers it claimed; the slices are concatenated once
// every worker is done.
func (p *Propagator) expandParallel(snap nodestore.Snapshot, frontier []string, inv *invalidatedSet) []string {
	workers := min(p.workers, len(frontier))
	local := make([][]string, workers)
	work := make(chan string, min(len(frontier), 256))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(workerID int) {
			defer wg.Done()
			for id := range work {
				deps, _ := snap.Dependents(id)
				for _, dep := range deps {
					if inv.claim(dep) {
						local[workerID] = append(local[workerID], dep)
					}
				}
			}
		}(i)
	}

	for _, id := range frontier {
		work <- id
	}
	close(work)
	wg.Wait()

	var next []string
	for _, ids := range local {
		next = append(next, ids...)
	}
	return next
}
