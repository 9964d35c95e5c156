package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
)

type itemRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Person    string `json:"person,omitempty"`
}

type batchRequest struct {
	Items []itemRequest `json:"items"`
}

// listItems handles GET /trips/{tripID}/items/{kind}.
func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	tripID, kind, err := tripAndKind(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	items, err := s.Items.ListByTrip(r.Context(), currentUser(r).ID, tripID, kind)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Item]{Data: items})
}

// createItem handles POST /trips/{tripID}/items/{kind}.
func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	tripID, kind, err := tripAndKind(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	item, err := s.Items.Create(r.Context(), req.toDomain(currentUser(r).ID, tripID, kind))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// createItems handles POST /trips/{tripID}/items/{kind}/batch. The batch is
// written atomically.
func (s *Server) createItems(w http.ResponseWriter, r *http.Request) {
	tripID, kind, err := tripAndKind(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	owner := currentUser(r).ID
	items := make([]domain.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, it.toDomain(owner, tripID, kind))
	}
	created, err := s.Items.CreateBatch(r.Context(), owner, tripID, kind, items)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, listResponse[domain.Item]{Data: created})
}

// updateItem handles PATCH /items/{kind}/{itemID}. Absent fields are kept.
func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathUUID(r, "itemID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var patch domain.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}
	item, err := s.Items.Update(r.Context(), currentUser(r).ID, kind, id, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// deleteItem handles DELETE /items/{kind}/{itemID}.
func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathUUID(r, "itemID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.Items.Delete(r.Context(), currentUser(r).ID, kind, id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func tripAndKind(r *http.Request) (tripID uuid.UUID, kind domain.ListKind, err error) {
	if tripID, err = pathUUID(r, "tripID"); err != nil {
		return uuid.Nil, "", err
	}
	if kind, err = pathKind(r); err != nil {
		return uuid.Nil, "", err
	}
	return tripID, kind, nil
}

func (req itemRequest) toDomain(owner, tripID uuid.UUID, kind domain.ListKind) domain.Item {
	return domain.Item{
		TripID:    tripID,
		OwnerID:   owner,
		Kind:      kind,
		Text:      req.Text,
		Completed: req.Completed,
		Person:    req.Person,
	}
}
