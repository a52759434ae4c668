// Package ingest feeds fact-creation events from an event stream into the
// causal graph.
//
// # Pipeline
//
//	Source ──Message──▶ Consumer ──Decode──▶ Graph.AddNode / PropagateInvalidation
//
// A Source delivers raw payloads (or transient stream errors) on a channel.
// The Consumer decodes each payload into an Event, upserts the fact when the
// event declares dependents, and then propagates invalidation from it.
//
// # Error Policy
//
//   - A failure to connect is returned from Consumer.Run and is fatal to the
//     caller.
//   - Transient stream errors are logged and the loop continues.
//   - Malformed payloads are logged and skipped; they never stop the loop.
//
// # Delivery
//
// SocketIOSource subscribes to one socket.io event. socket.io has no offsets
// or consumer groups, so delivery is at-most-once: events emitted while the
// client is disconnected are lost.
package ingest
