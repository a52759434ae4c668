// internal/nodeid/doc.go

/*
Package nodeid provides the identifier vocabulary shared by the graph
packages. A fact identifier is an opaque string: the engine never parses
it, it only compares and hashes it.

The Set type is the concurrency-free building block used by the
propagator and the analyzers to record membership with first-writer-wins
semantics.
*/
package nodeid
