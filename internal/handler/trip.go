package handler

import (
	"net/http"

	"github.com/pkordes/travel-planner/internal/domain"
)

type tripRequest struct {
	Name string `json:"name"`
}

// listTrips handles GET /trips.
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.Trips.List(r.Context(), currentUser(r).ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Trip]{Data: trips})
}

// createTrip handles POST /trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	trip, err := s.Trips.Create(r.Context(), currentUser(r).ID, req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// getTrip handles GET /trips/{tripID}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	trip, err := s.Trips.GetByID(r.Context(), currentUser(r).ID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// renameTrip handles PATCH /trips/{tripID}.
func (s *Server) renameTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	trip, err := s.Trips.Rename(r.Context(), currentUser(r).ID, id, req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// deleteTrip handles DELETE /trips/{tripID}. Items cascade in the database.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.Trips.Delete(r.Context(), currentUser(r).ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
