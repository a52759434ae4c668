package config

import (
	"time"
)

// Defaults applied by loaders when an attribute is omitted.
const (
	DefaultNamespace      = "/"
	DefaultEvent          = "narrative.facts.created"
	DefaultConnectTimeout = 15 * time.Second
	DefaultServiceName    = "causalcore"
	DefaultTraceExporter  = "none"
	DefaultOTLPEndpoint   = "localhost:4317"
)

// Model is the unified representation of the whole configuration.
type Model struct {
	// Ingest is nil when no event stream is configured.
	Ingest    *Ingest   `validate:"omitempty"`
	Telemetry Telemetry
	// Seed is nil when no seed directory is configured.
	Seed  *Seed  `validate:"omitempty"`
	Facts []Fact `validate:"dive"`
}

// Ingest selects the event stream.
type Ingest struct {
	URL                string        `validate:"required,url"`
	Namespace          string        `validate:"required,startswith=/"`
	Event              string        `validate:"required"`
	ConnectTimeout     time.Duration `validate:"gt=0"`
	InsecureSkipVerify bool
}

// Telemetry selects the trace exporter.
type Telemetry struct {
	TraceExporter string `validate:"oneof=none stdout otlp"`
	OTLPEndpoint  string `validate:"required_if=TraceExporter otlp"`
	ServiceName   string `validate:"required"`
}

// Seed points at HCL files holding fact blocks.
type Seed struct {
	Path  string `validate:"required"`
	Watch bool
}

// Fact is a fact declared in configuration rather than received from the
// event stream.
type Fact struct {
	ID         string `validate:"required"`
	Dependents []string
	// File is the file that declared the fact, for diagnostics.
	File string
}

// NewModel returns an empty model with defaults applied.
func NewModel() *Model {
	return &Model{
		Telemetry: Telemetry{
			TraceExporter: DefaultTraceExporter,
			OTLPEndpoint:  DefaultOTLPEndpoint,
			ServiceName:   DefaultServiceName,
		},
	}
}
