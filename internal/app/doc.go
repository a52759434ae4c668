// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the service lifecycle: load configuration,
// seed the graph, then run the HTTP surface, the seed watcher and the
// ingestion consumer until the context is cancelled. It is decoupled from any
// specific entrypoint like a CLI.
package app
