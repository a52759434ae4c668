// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the nodestore.Store interface.
//
// # Characteristics
//
//   - **Ephemeral:** Lives for the lifetime of the process, nothing is persisted
//   - **Reader/Writer Lock:** A single sync.RWMutex guards the node map
//   - **Snapshot Reads:** View holds the read lock for the whole callback, so a
//     traversal never observes a half-applied Upsert
//   - **Fast Lookups:** O(1) average case for dependents retrieval
//
// # Concurrency Model
//
// Unlike a sync.Map, the RWMutex lets a long-running analytic pin the whole
// graph while it runs. Readers proceed in parallel; a writer waits until every
// in-flight View has returned, and new Views wait behind a pending writer.
package inmemorystore
