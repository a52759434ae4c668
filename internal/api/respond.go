package api

import (
	"encoding/json"
	"net/http"

	"github.com/specialistvlad/causalcore/internal/ctxlog"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.FromContext(r.Context()).Warn("Failed to write response.", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respondJSON(w, r, status, errorResponse{Error: msg})
}
