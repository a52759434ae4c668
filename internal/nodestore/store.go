// Package nodestore defines the contract for holding the causal graph: the set
// of known facts and the dependents declared for each of them.
//
// # Mutation Model
//
// The store has exactly one mutation primitive, Upsert. It replaces any
// previously declared dependents for a fact (last-write-wins, never merged)
// and creates the fact if it is unknown. Facts are never removed.
//
// # Snapshot Semantics
//
// Every read algorithm (invalidation propagation, cycle detection, metrics)
// runs against a Snapshot obtained through View. Implementations MUST
// guarantee that no Upsert is applied while a View callback is running, so an
// algorithm observes a single immutable graph for its whole execution. The
// callback itself may fan out to many goroutines; Snapshot methods are safe for
// concurrent reads.
//
// # Missing Facts
//
// Looking up a fact that was never upserted is not an error. A dependent that
// names an unknown fact (a dangling reference) simply has zero dependents.
package nodestore

import "context"

// Store is the interface for the process-lifetime causal graph.
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for concurrent use by a background ingestion
// task and any number of foreground query callers.
//
// # Typical Implementation
//
// See internal/inmemorystore for the reference implementation guarded by a
// sync.RWMutex.
type Store interface {
	// Upsert replaces the dependents of id, creating the fact if absent.
	//
	// The store keeps its own copy of dependents. Upsert blocks while any View
	// callback is running.
	Upsert(ctx context.Context, id string, dependents []string)

	// Dependents returns a copy of the dependents declared for id and whether
	// the fact is known.
	Dependents(ctx context.Context, id string) ([]string, bool)

	// Len returns the number of known facts (dangling references excluded).
	Len(ctx context.Context) int

	// View runs fn against a consistent read-only view of the graph.
	//
	// fn MUST NOT call Upsert on the same store and MUST NOT retain the
	// Snapshot after it returns.
	View(ctx context.Context, fn func(Snapshot))
}

// Snapshot is a read-only view of the graph valid for the duration of a View
// callback.
type Snapshot interface {
	// Dependents returns the dependents declared for id without copying. The
	// returned slice must not be modified.
	Dependents(id string) ([]string, bool)

	// Has reports whether id has a node entry.
	Has(id string) bool

	// IDs returns every known fact identifier in ascending order.
	IDs() []string

	// Len returns the number of known facts.
	Len() int
}
