package propagator

import (
	"context"
	"fmt"
	"testing"

	"github.com/specialistvlad/causalcore/internal/inmemorystore"
	"github.com/specialistvlad/causalcore/internal/nodeid"
	"github.com/specialistvlad/causalcore/internal/nodestore"
	"github.com/stretchr/testify/assert"
)

// propagate builds a store from the given adjacency and runs a propagation.
func propagate(t *testing.T, p *Propagator, graph map[string][]string, start string) *Result {
	t.Helper()
	ctx := context.Background()
	s := inmemorystore.New()
	for id, deps := range graph {
		s.Upsert(ctx, id, deps)
	}

	var res *Result
	s.View(ctx, func(snap nodestore.Snapshot) {
		res = p.Propagate(ctx, snap, start)
	})
	return res
}

func TestPropagate(t *testing.T) {
	testCases := []struct {
		name     string
		graph    map[string][]string
		start    string
		expected []string
	}{
		{
			name:     "diamond excludes start",
			graph:    map[string][]string{"A": {"B", "C"}, "B": {"D"}, "C": {"D"}, "D": {}},
			start:    "A",
			expected: []string{"B", "C", "D"},
		},
		{
			name:     "two cycle revisits start",
			graph:    map[string][]string{"A": {"B"}, "B": {"A"}},
			start:    "A",
			expected: []string{"A", "B"},
		},
		{
			name:     "self loop",
			graph:    map[string][]string{"A": {"A"}},
			start:    "A",
			expected: []string{"A"},
		},
		{
			name:     "unknown start",
			graph:    map[string][]string{"A": {"B"}},
			start:    "missing",
			expected: []string{},
		},
		{
			name:     "dangling dependent is invalidated but not expanded",
			graph:    map[string][]string{"A": {"ghost", "B"}, "B": {}},
			start:    "A",
			expected: []string{"B", "ghost"},
		},
		{
			name:     "duplicate edges",
			graph:    map[string][]string{"A": {"B", "B", "B"}, "B": {"C", "C"}},
			start:    "A",
			expected: []string{"B", "C"},
		},
		{
			name:     "downstream only",
			graph:    map[string][]string{"A": {"B"}, "B": {"C"}, "X": {"A"}},
			start:    "B",
			expected: []string{"C"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := propagate(t, New(), tc.graph, tc.start)
			assert.Equal(t, tc.expected, res.Invalidated.Sorted())
		})
	}
}

func TestPropagate_Levels(t *testing.T) {
	res := propagate(t, New(), map[string][]string{"A": {"B"}, "B": {"C"}, "C": {}}, "A")

	// Frontiers: [A] -> [B] -> [C] -> [] (C expands to nothing).
	assert.Equal(t, 3, res.Levels)
	assert.Equal(t, 0, res.ParallelLevels)
}

// TestPropagate_ParallelMatchesSequential builds a wide, cyclic graph and
// checks that the worker pool produces exactly the sequential answer.
func TestPropagate_ParallelMatchesSequential(t *testing.T) {
	graph := map[string][]string{}
	root := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("mid-%d", i)
		root = append(root, id)
		// Every mid node fans into a shared tail and back to the root.
		graph[id] = []string{fmt.Sprintf("leaf-%d", i%17), "tail", "root"}
	}
	graph["root"] = root
	graph["tail"] = []string{"mid-0", "end"}

	sequential := propagate(t, New(WithWorkers(1)), graph, "root")
	parallel := propagate(t, New(WithWorkers(8), WithParallelThreshold(0)), graph, "root")

	expected := nodeid.NewSet(root...)
	expected.Add("root")
	expected.Add("tail")
	expected.Add("end")
	for i := 0; i < 17; i++ {
		expected.Add(fmt.Sprintf("leaf-%d", i))
	}

	assert.Equal(t, expected.Sorted(), sequential.Invalidated.Sorted())
	assert.Equal(t, expected.Sorted(), parallel.Invalidated.Sorted())
	assert.Positive(t, parallel.ParallelLevels)
}

func TestNew_Options(t *testing.T) {
	p := New(WithWorkers(0), WithParallelThreshold(-1))
	assert.GreaterOrEqual(t, p.workers, 1)
	assert.Equal(t, DefaultParallelThreshold, p.parallelThreshold)

	p = New(WithWorkers(3), WithParallelThreshold(5))
	assert.Equal(t, 3, p.workers)
	assert.Equal(t, 5, p.parallelThreshold)
}
