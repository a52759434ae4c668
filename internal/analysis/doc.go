// Package analysis is the structural analyzer of the causal graph: a family of
// independent, read-only algorithms that run against a nodestore.Snapshot.
//
// The algorithms fall in two groups. Cycle detection, community detection,
// PageRank, diameter, Jaccard similarity and the spanning tree are faithful
// unweighted graph algorithms. The remaining functions are deliberately cheap
// approximations that are labeled as such in their names' documentation:
//
//   - Betweenness is out-degree, not shortest-path betweenness.
//   - Closeness is 1/(out-degree+1), not distance-based closeness.
//   - CountTriangles counts 3-cycles and transitive triples, divided by three.
//   - FindCliques is max out-degree plus one, a size estimate only.
//   - KCore is a single-pass out-degree filter, not degree peeling.
//   - MaxFlow is a placeholder that always returns 1.
//
// Callers must not treat the approximations as authoritative.
//
// Every function expects to be called inside nodestore.Store.View and never
// mutates the graph. Iteration over nodes follows Snapshot.IDs, so results are
// deterministic for a given graph.
package analysis
