package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block this loader understands. Anything
// else is left in Remain and ignored.
type fileRoot struct {
	Ingest    *ingestBlock    `hcl:"ingest,block"`
	Telemetry *telemetryBlock `hcl:"telemetry,block"`
	Seed      *seedBlock      `hcl:"seed,block"`
	Facts     []*factBlock    `hcl:"fact,block"`
	Remain    hcl.Body        `hcl:",remain"`
}

type ingestBlock struct {
	URL                string  `hcl:"url"`
	Namespace          *string `hcl:"namespace,optional"`
	Event              *string `hcl:"event,optional"`
	ConnectTimeout     *string `hcl:"connect_timeout,optional"`
	InsecureSkipVerify bool    `hcl:"insecure_skip_verify,optional"`
}

type telemetryBlock struct {
	TraceExporter *string `hcl:"trace_exporter,optional"`
	OTLPEndpoint  *string `hcl:"otlp_endpoint,optional"`
	ServiceName   *string `hcl:"service_name,optional"`
}

type seedBlock struct {
	Path  string `hcl:"path"`
	Watch bool   `hcl:"watch,optional"`
}

// factBlock is `fact "<id>" { dependents = [...] }`.
type factBlock struct {
	ID         string         `hcl:"id,label"`
	Dependents hcl.Expression `hcl:"dependents,optional"`
}
