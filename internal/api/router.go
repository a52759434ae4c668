package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/specialistvlad/causalcore/internal/ctxlog"
	"github.com/specialistvlad/causalcore/internal/graph"
	"github.com/specialistvlad/causalcore/internal/telemetry"
)

// NewRouter builds the HTTP handler for g. Request handlers log through
// logger, tagged with the request id.
func NewRouter(g graph.Graph, logger *slog.Logger) http.Handler {
	h := &handlers{graph: g}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", telemetry.MetricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/facts/{id}", func(r chi.Router) {
			r.Put("/", h.putFact)
			r.Get("/invalidation", h.invalidation)
		})
		r.Route("/analysis", func(r chi.Router) {
			r.Get("/cycles", h.cycles)
			r.Get("/communities", h.communities)
			r.Get("/pagerank", h.pageRank)
			r.Get("/centrality", h.centrality)
			r.Get("/stats", h.stats)
			r.Get("/similarity", h.similarity)
			r.Get("/spanning-tree", h.spanningTree)
			r.Get("/kcore", h.kCore)
			r.Get("/flow", h.flow)
		})
	})
	return r
}

// requestLogger puts a request-scoped logger into the request context and
// logs each request once it completes.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logger.With("request_id", chimiddleware.GetReqID(r.Context()))
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			began := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctxlog.WithLogger(r.Context(), reqLogger)))

			reqLogger.Debug("Handled request.",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(began),
			)
		})
	}
}
