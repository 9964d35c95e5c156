package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/pkordes/travel-planner/api"
)

type healthResponse struct {
	Status string `json:"status"`
}

// getHealth handles GET /healthz. It reports liveness only.
func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// getReady handles GET /readyz. It pings the database with a short deadline.
func (s *Server) getReady(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.DB.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "unavailable", "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ready"})
}

// getOpenAPI serves the embedded API description.
func (s *Server) getOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(api.OpenAPI)
}
