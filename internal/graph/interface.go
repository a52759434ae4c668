package graph

import (
	"context"
	"errors"

	"github.com/specialistvlad/causalcore/internal/analysis"
	"github.com/specialistvlad/causalcore/internal/nodeid"
)

// ErrEmptyID is returned by AddNode when the fact identifier is empty.
var ErrEmptyID = errors.New("graph: empty fact id")

// Graph is the interface for mutating and querying the causal graph.
//
// # Thread-Safety
//
// Implementations MUST be safe for concurrent use. The ingestion loop calls
// AddNode and PropagateInvalidation while HTTP handlers run queries.
type Graph interface {
	// AddNode creates id or replaces its dependents. Dependents are not merged
	// with a previous declaration.
	AddNode(ctx context.Context, id string, dependents []string) error

	// PropagateInvalidation returns every fact transitively downstream of id.
	// id itself is included only when a cycle leads back to it.
	PropagateInvalidation(ctx context.Context, id string) nodeid.Set

	// DetectCycles returns one entry per back-edge found by depth-first search.
	// The same loop may appear more than once in different rotations.
	DetectCycles(ctx context.Context) [][]string

	// DetectCommunities partitions every mentioned identifier into connected
	// components.
	DetectCommunities(ctx context.Context) []nodeid.Set

	CalculatePageRank(ctx context.Context, iterations int, damping float64) map[string]float64

	// CalculateBetweenness is an out-degree approximation.
	CalculateBetweenness(ctx context.Context) map[string]float64

	// CalculateCloseness is a 1/(out-degree+1) approximation.
	CalculateCloseness(ctx context.Context) map[string]float64

	// CountTriangles is an approximate directed triangle count.
	CountTriangles(ctx context.Context) int

	// FindCliques estimates the largest clique size as max out-degree plus one.
	FindCliques(ctx context.Context) int

	FindDiameter(ctx context.Context) int

	CalculateJaccardSimilarity(ctx context.Context, a, b string) float64

	// MaxFlow is a placeholder that always returns analysis.MaxFlowPlaceholder.
	MaxFlow(ctx context.Context, source, sink string) int

	// MinimumSpanningTree returns breadth-first tree edges from the first fact.
	MinimumSpanningTree(ctx context.Context) []analysis.Edge

	// KCoreDecomposition returns the facts whose out-degree is at least k.
	KCoreDecomposition(ctx context.Context, k int) nodeid.Set

	// Len returns the number of known facts.
	Len(ctx context.Context) int
}
