// Package telemetry wires OpenTelemetry tracing and exposes the Prometheus
// registry used by the rest of causalcore.
//
// Packages that emit spans obtain their tracer with otel.Tracer and never hold
// a reference to the provider. Until Init installs an SDK provider, the global
// provider is a no-op and spans cost next to nothing, so tests and embedded
// use need no setup.
//
// Prometheus collectors are registered by the packages that own them through
// promauto and are served by MetricsHandler.
package telemetry
