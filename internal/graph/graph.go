package graph

import (
	"context"
	"time"

	"github.com/specialistvlad/causalcore/internal/analysis"
	"github.com/specialistvlad/causalcore/internal/ctxlog"
	"github.com/specialistvlad/causalcore/internal/inmemorystore"
	"github.com/specialistvlad/causalcore/internal/nodeid"
	"github.com/specialistvlad/causalcore/internal/nodestore"
	"github.com/specialistvlad/causalcore/internal/propagator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("causalcore.graph")

// Manager is the reference Graph implementation. It composes a node store,
// a propagator and the analysis package.
type Manager struct {
	store      nodestore.Store
	propagator *propagator.Propagator
	workers    int
}

var _ Graph = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithStore replaces the default in-memory store.
func WithStore(s nodestore.Store) Option {
	return func(m *Manager) {
		m.store = s
	}
}

// WithWorkers caps the goroutines used by propagation and diameter. Values
// below 1 keep the defaults.
func WithWorkers(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.workers = n
		}
	}
}

// New creates a Manager holding an empty graph.
func New(opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = inmemorystore.New()
	}
	m.propagator = propagator.New(propagator.WithWorkers(m.workers))
	return m
}

// start opens a span for op and returns a function that ends it and records
// the operation duration.
func start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span, func()) {
	ctx, span := tracer.Start(ctx, "graph."+op, trace.WithAttributes(attrs...))
	began := time.Now()
	return ctx, span, func() {
		operationDuration.WithLabelValues(op).Observe(time.Since(began).Seconds())
		span.End()
	}
}

// view runs fn against a snapshot under a span named after op.
func (m *Manager) view(ctx context.Context, op string, fn func(ctx context.Context, snap nodestore.Snapshot), attrs ...attribute.KeyValue) {
	ctx, _, done := start(ctx, op, attrs...)
	defer done()
	m.store.View(ctx, func(snap nodestore.Snapshot) {
		fn(ctx, snap)
	})
}

func (m *Manager) AddNode(ctx context.Context, id string, dependents []string) error {
	if id == "" {
		return ErrEmptyID
	}
	ctx, span, done := start(ctx, "AddNode",
		attribute.String("fact_id", id),
		attribute.Int("dependents", len(dependents)),
	)
	defer done()

	m.store.Upsert(ctx, id, dependents)
	upsertsTotal.Inc()
	n := m.store.Len(ctx)
	factsKnown.Set(float64(n))
	span.SetAttributes(attribute.Int("facts", n))

	ctxlog.FromContext(ctx).Debug("Upserted fact.", "fact_id", id, "dependents", len(dependents))
	return nil
}

func (m *Manager) PropagateInvalidation(ctx context.Context, id string) nodeid.Set {
	ctx, span, done := start(ctx, "PropagateInvalidation", attribute.String("fact_id", id))
	defer done()

	var res *propagator.Result
	m.store.View(ctx, func(snap nodestore.Snapshot) {
		res = m.propagator.Propagate(ctx, snap, id)
	})

	invalidationsTotal.Inc()
	invalidatedSize.Observe(float64(res.Invalidated.Len()))
	propagationLevels.Observe(float64(res.Levels))
	span.SetAttributes(
		attribute.Int("invalidated", res.Invalidated.Len()),
		attribute.Int("levels", res.Levels),
		attribute.Int("parallel_levels", res.ParallelLevels),
	)
	return res.Invalidated
}

func (m *Manager) DetectCycles(ctx context.Context) [][]string {
	var out [][]string
	m.view(ctx, "DetectCycles", func(_ context.Context, snap nodestore.Snapshot) {
		out = analysis.DetectCycles(snap)
	})
	return out
}

func (m *Manager) DetectCommunities(ctx context.Context) []nodeid.Set {
	var out []nodeid.Set
	m.view(ctx, "DetectCommunities", func(_ context.Context, snap nodestore.Snapshot) {
		out = analysis.DetectCommunities(snap)
	})
	return out
}

func (m *Manager) CalculatePageRank(ctx context.Context, iterations int, damping float64) map[string]float64 {
	var out map[string]float64
	m.view(ctx, "CalculatePageRank", func(_ context.Context, snap nodestore.Snapshot) {
		out = analysis.PageRank(snap, iterations, damping)
	},
		attribute.Int("iterations", iterations),
		attribute.Float64("damping", damping),
	)
	return out
}

func (m *Manager) CalculateBetweenness(ctx context.Context) map[string]float64 {
	var out map[string]float64
	m.view(ctx, "CalculateBetweenness", func(_ context.Context, snap nodestore.Snapshot) {
		out = analysis.Betweenness(snap)
	})
	return out
}

func (m *Manager) CalculateCloseness(ctx context.Context) map[string]float64 {
	var out map[string]float64
	m.view(ctx, "CalculateCloseness", func(_ context.Context, snap nodestore.Snapshot) {
		out = analysis.Closeness(snap)
	})
	return out
}

func (m *Manager) CountTriangles(ctx context.Context) int {
	var out int
	m.view(ctx, "CountTriangles", func(_ context.Context, snap nodestore.Snapshot) {
		out = analysis.CountTriangles(snap)
	})
	return out
}

func (m *Manager) FindCliques(ctx context.Context) int {
	var out int
	m.view(ctx, "FindCliques", func(_ context.Context, snap nodestore.Snapshot) {
		out = analysis.FindCliques(snap)
	})
	return out
}

func (m *Manager) FindDiameter(ctx context.Context) int {
	var out int
	m.view(ctx, "FindDiameter", func(ctx context.Context, snap nodestore.Snapshot) {
		out = analysis.Diameter(ctx, snap, m.workers)
	})
	return out
}

func (m *Manager) CalculateJaccardSimilarity(ctx context.Context, a, b string) float64 {
	var out float64
	m.view(ctx, "CalculateJaccardSimilarity", func(_ context.Context, snap nodestore.Snapshot) {
		out = analysis.JaccardSimilarity(snap, a, b)
	},
		attribute.String("a", a),
		attribute.String("b", b),
	)
	return out
}

func (m *Manager) MaxFlow(ctx context.Context, source, sink string) int {
	var out int
	m.view(ctx, "MaxFlow", func(_ context.Context, snap nodestore.Snapshot) {
		out = analysis.MaxFlow(snap, source, sink)
	},
		attribute.String("source", source),
		attribute.String("sink", sink),
		attribute.Bool("placeholder", true),
	)
	return out
}

func (m *Manager) MinimumSpanningTree(ctx context.Context) []analysis.Edge {
	var out []analysis.Edge
	m.view(ctx, "MinimumSpanningTree", func(_ context.Context, snap nodestore.Snapshot) {
		out = analysis.SpanningTree(snap)
	})
	return out
}

func (m *Manager) KCoreDecomposition(ctx context.Context, k int) nodeid.Set {
	var out nodeid.Set
	m.view(ctx, "KCoreDecomposition", func(_ context.Context, snap nodestore.Snapshot) {
		out = nodeid.NewSet(analysis.KCore(snap, k)...)
	}, attribute.Int("k", k))
	return out
}

func (m *Manager) Len(ctx context.Context) int {
	return m.store.Len(ctx)
}
