package hcl

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/causalcore/internal/config"
	"github.com/specialistvlad/causalcore/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

func translateIngest(b *ingestBlock) (*config.Ingest, error) {
	in := &config.Ingest{
		URL:                b.URL,
		Namespace:          stringOr(b.Namespace, config.DefaultNamespace),
		Event:              stringOr(b.Event, config.DefaultEvent),
		ConnectTimeout:     config.DefaultConnectTimeout,
		InsecureSkipVerify: b.InsecureSkipVerify,
	}
	if b.ConnectTimeout != nil {
		d, err := time.ParseDuration(*b.ConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("ingest: invalid connect_timeout %q: %w", *b.ConnectTimeout, err)
		}
		in.ConnectTimeout = d
	}
	return in, nil
}

func translateTelemetry(b *telemetryBlock) config.Telemetry {
	return config.Telemetry{
		TraceExporter: stringOr(b.TraceExporter, config.DefaultTraceExporter),
		OTLPEndpoint:  stringOr(b.OTLPEndpoint, config.DefaultOTLPEndpoint),
		ServiceName:   stringOr(b.ServiceName, config.DefaultServiceName),
	}
}

func translateFact(ctx context.Context, b *factBlock, file string) (config.Fact, error) {
	fact := config.Fact{ID: b.ID, File: file}
	if !isExprDefined(b.Dependents) {
		ctxlog.FromContext(ctx).Debug("Fact declares no dependents.", "fact_id", b.ID, "file", file)
		return fact, nil
	}

	deps, err := stringList(b.Dependents)
	if err != nil {
		return config.Fact{}, fmt.Errorf("fact %q in %s: dependents: %w", b.ID, file, err)
	}
	fact.Dependents = deps
	return fact, nil
}

// stringList evaluates expr as a list of strings. Tuples of strings and sets
// are converted; a null value yields an empty list.
func stringList(expr hcl.Expression) ([]string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return []string{}, nil
	}

	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("must be a list of strings: %w", err)
	}
	if !listVal.IsWhollyKnown() {
		return nil, fmt.Errorf("must be known at load time")
	}

	out := []string{}
	if err := gocty.FromCtyValue(listVal, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// isExprDefined reports whether an optional attribute was present in the
// source. gohcl fills omitted optional expressions with a zero-width
// placeholder, so a nil check alone is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
