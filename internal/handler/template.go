package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/internal/domain"
)

type templateRequest struct {
	Text   string `json:"text"`
	Person string `json:"person,omitempty"`
}

// listTemplates handles GET /templates/{kind}.
func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	tpls, err := s.Templates.List(r.Context(), currentUser(r).ID, kind)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.DefaultItem]{Data: tpls})
}

// createTemplate handles POST /templates/{kind}.
func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req templateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	tpl, err := s.Templates.Create(r.Context(), domain.DefaultItem{
		OwnerID: currentUser(r).ID,
		Kind:    kind,
		Text:    req.Text,
		Person:  req.Person,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

// deleteTemplate handles DELETE /templates/{kind}/{templateID}.
func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathUUID(r, "templateID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.Templates.Delete(r.Context(), currentUser(r).ID, kind, id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
