// Package graph provides the single handle through which the causal graph is
// mutated and queried.
//
// # Why Graph Package Exists
//
// Ingestion, the HTTP surface and seed loading all need the same operations:
// add a fact, ask what a change invalidates, and run structural analytics.
// Instead of each of them coordinating the store, the propagator and the
// analyzer, the Graph interface bundles them behind one API and enforces the
// snapshot rule in one place.
//
// # Architecture: The Facade Pattern
//
//	┌──────────────────────────────────────┐
//	│             Graph Facade             │
//	│  (AddNode, PropagateInvalidation,    │
//	│   DetectCycles, PageRank, ...)       │
//	└──────┬─────────────┬─────────────┬───┘
//	       │             │             │
//	       ▼             ▼             ▼
//	┌────────────┐ ┌────────────┐ ┌────────────┐
//	│ Node Store │ │ Propagator │ │  Analysis  │
//	│ (facts and │ │ (parallel  │ │ (read-only │
//	│ dependents)│ │    BFS)    │ │ algorithms)│
//	└────────────┘ └────────────┘ └────────────┘
//
// **Node Store** (nodestore.Store) holds the facts. AddNode is its only writer.
//
// **Propagator** (propagator.Propagator) computes invalidation sets.
//
// **Analysis** (package analysis) holds the structural algorithms.
//
// # Snapshot Rule
//
// Every read operation runs inside a single nodestore.Store.View call, so an
// upsert arriving from the ingestion loop can never interleave with a
// traversal. Writers wait for in-flight reads to finish; reads run in
// parallel with each other.
//
// # Errors
//
// Queries never fail. An unknown fact is an ordinary input that yields an
// empty or zero result. The only mutation error is ErrEmptyID.
//
// # Observability
//
// Each operation opens a span on the "causalcore.graph" tracer and records its
// duration in the causalcore_graph_operation_duration_seconds histogram.
package graph
