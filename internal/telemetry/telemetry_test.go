package telemetry

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		_, err := Init(nil, DefaultConfig())
		assert.ErrorIs(t, err, ErrNilContext)
	})

	t.Run("unknown exporter", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TraceExporter = "zipkin"

		_, err := Init(context.Background(), cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownExporter)
		assert.Contains(t, err.Error(), "zipkin")
	})

	t.Run("none keeps the no-op provider", func(t *testing.T) {
		before := otel.GetTracerProvider()

		shutdown, err := Init(context.Background(), DefaultConfig())
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
		assert.Equal(t, before, otel.GetTracerProvider())
	})

	t.Run("stdout exports spans on shutdown", func(t *testing.T) {
		before := otel.GetTracerProvider()
		t.Cleanup(func() { otel.SetTracerProvider(before) })

		var buf bytes.Buffer
		cfg := DefaultConfig()
		cfg.TraceExporter = ExporterStdout
		cfg.Writer = &buf

		shutdown, err := Init(context.Background(), cfg)
		require.NoError(t, err)

		_, span := otel.Tracer("causalcore.test").Start(context.Background(), "probe")
		span.End()

		require.NoError(t, shutdown(context.Background()))
		assert.Contains(t, buf.String(), `"Name": "probe"`)
	})
}

func TestMetricsHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
