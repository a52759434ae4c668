package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/specialistvlad/causalcore/internal/analysis"
	"github.com/specialistvlad/causalcore/internal/graph"
)

type handlers struct {
	graph graph.Graph
}

type putFactRequest struct {
	Dependents []string `json:"dependents"`
}

type invalidationResponse struct {
	FactID      string   `json:"fact_id"`
	Invalidated []string `json:"invalidated"`
}

type pageRankResponse struct {
	Iterations int                `json:"iterations"`
	Damping    float64            `json:"damping"`
	Ranks      map[string]float64 `json:"ranks"`
}

type centralityResponse struct {
	Betweenness map[string]float64 `json:"betweenness"`
	Closeness   map[string]float64 `json:"closeness"`
}

type statsResponse struct {
	Facts     int `json:"facts"`
	Triangles int `json:"triangles"`
	Cliques   int `json:"cliques"`
	Diameter  int `json:"diameter"`
}

type similarityResponse struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	Jaccard float64 `json:"jaccard"`
}

type kCoreResponse struct {
	K     int      `json:"k"`
	Facts []string `json:"facts"`
}

type flowResponse struct {
	Source      string `json:"source"`
	Sink        string `json:"sink"`
	MaxFlow     int    `json:"max_flow"`
	Placeholder bool   `json:"placeholder"`
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (h *handlers) putFact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req putFactRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if req.Dependents == nil {
		req.Dependents = []string{}
	}

	if err := h.graph.AddNode(r.Context(), id, req.Dependents); err != nil {
		if errors.Is(err, graph.ErrEmptyID) {
			respondError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) invalidation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	set := h.graph.PropagateInvalidation(r.Context(), id)
	respondJSON(w, r, http.StatusOK, invalidationResponse{FactID: id, Invalidated: set.Sorted()})
}

func (h *handlers) cycles(w http.ResponseWriter, r *http.Request) {
	cycles := h.graph.DetectCycles(r.Context())
	if cycles == nil {
		cycles = [][]string{}
	}
	respondJSON(w, r, http.StatusOK, map[string][][]string{"cycles": cycles})
}

func (h *handlers) communities(w http.ResponseWriter, r *http.Request) {
	sets := h.graph.DetectCommunities(r.Context())
	out := make([][]string, 0, len(sets))
	for _, s := range sets {
		out = append(out, s.Sorted())
	}
	respondJSON(w, r, http.StatusOK, map[string][][]string{"communities": out})
}

func (h *handlers) pageRank(w http.ResponseWriter, r *http.Request) {
	iterations, err := intParam(r, "iterations", analysis.DefaultIterations)
	if err != nil || iterations < 0 {
		respondError(w, r, http.StatusBadRequest, "iterations must be a non-negative integer")
		return
	}
	damping := analysis.DefaultDampingFactor
	if raw := r.URL.Query().Get("damping"); raw != "" {
		damping, err = strconv.ParseFloat(raw, 64)
		if err != nil || damping < 0 || damping > 1 {
			respondError(w, r, http.StatusBadRequest, "damping must be a number between 0 and 1")
			return
		}
	}

	ranks := h.graph.CalculatePageRank(r.Context(), iterations, damping)
	respondJSON(w, r, http.StatusOK, pageRankResponse{Iterations: iterations, Damping: damping, Ranks: ranks})
}

func (h *handlers) centrality(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, centralityResponse{
		Betweenness: h.graph.CalculateBetweenness(r.Context()),
		Closeness:   h.graph.CalculateCloseness(r.Context()),
	})
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	respondJSON(w, r, http.StatusOK, statsResponse{
		Facts:     h.graph.Len(ctx),
		Triangles: h.graph.CountTriangles(ctx),
		Cliques:   h.graph.FindCliques(ctx),
		Diameter:  h.graph.FindDiameter(ctx),
	})
}

func (h *handlers) similarity(w http.ResponseWriter, r *http.Request) {
	a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
	if a == "" || b == "" {
		respondError(w, r, http.StatusBadRequest, "query parameters a and b are required")
		return
	}
	respondJSON(w, r, http.StatusOK, similarityResponse{
		A:       a,
		B:       b,
		Jaccard: h.graph.CalculateJaccardSimilarity(r.Context(), a, b),
	})
}

func (h *handlers) spanningTree(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string][]analysis.Edge{"edges": h.graph.MinimumSpanningTree(r.Context())})
}

func (h *handlers) kCore(w http.ResponseWriter, r *http.Request) {
	k, err := intParam(r, "k", 0)
	if err != nil || k < 0 {
		respondError(w, r, http.StatusBadRequest, "k must be a non-negative integer")
		return
	}
	respondJSON(w, r, http.StatusOK, kCoreResponse{K: k, Facts: h.graph.KCoreDecomposition(r.Context(), k).Sorted()})
}

func (h *handlers) flow(w http.ResponseWriter, r *http.Request) {
	source, sink := r.URL.Query().Get("source"), r.URL.Query().Get("sink")
	if source == "" || sink == "" {
		respondError(w, r, http.StatusBadRequest, "query parameters source and sink are required")
		return
	}
	respondJSON(w, r, http.StatusOK, flowResponse{
		Source:      source,
		Sink:        sink,
		MaxFlow:     h.graph.MaxFlow(r.Context(), source, sink),
		Placeholder: true,
	})
}

// intParam parses the named query parameter, returning fallback when absent.
func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
