package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type collectionsResponse struct {
	Enabled     bool     `json:"enabled"`
	Collections []string `json:"collections"`
}

// getPreferences handles GET /preferences.
func (s *Server) getPreferences(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Prefs.Current())
}

// listCollections handles GET /explorer.
func (s *Server) listCollections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, collectionsResponse{
		Enabled:     s.Prefs.Current().ExplorerEnabled,
		Collections: s.Explorer.Collections(),
	})
}

// browseCollection handles GET /explorer/{collection}?page=&limit=.
// Rows are the caller's own, returned as raw column maps.
func (s *Server) browseCollection(w http.ResponseWriter, r *http.Request) {
	p, err := pagination(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, err := s.Explorer.Browse(r.Context(), currentUser(r).ID, chi.URLParam(r, "collection"), p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
