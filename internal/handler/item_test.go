package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/handler"
)

func TestListItems(t *testing.T) {
	tripID := uuid.New()
	svc := &mockItems{listByTrip: func(_ context.Context, ownerID, gotTrip uuid.UUID, kind domain.ListKind) ([]domain.Item, error) {
		assert.Equal(t, testUser.ID, ownerID)
		assert.Equal(t, tripID, gotTrip)
		assert.Equal(t, domain.KindPacking, kind)
		return []domain.Item{{ID: uuid.New(), TripID: tripID, Kind: kind, Text: "Passport", Person: "Alex"}}, nil
	}}
	h, sm := newTestServer(handler.Deps{Items: svc})

	rec := do(h, signedIn(t, sm, httptest.NewRequest(http.MethodGet, "/trips/"+tripID.String()+"/items/packing", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []domain.Item `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Alex", body.Data[0].Person)
}

func TestListItems_unknownKind(t *testing.T) {
	h, sm := newTestServer(handler.Deps{Items: &mockItems{}})

	rec := do(h, signedIn(t, sm, httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/items/groceries", nil)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, `unknown list kind "groceries"`, decodeError(t, rec).Message)
}

func TestCreateItem(t *testing.T) {
	tripID := uuid.New()
	svc := &mockItems{create: func(_ context.Context, item domain.Item) (domain.Item, error) {
		assert.Equal(t, tripID, item.TripID)
		assert.Equal(t, testUser.ID, item.OwnerID)
		assert.Equal(t, domain.KindTodo, item.Kind)
		item.ID = uuid.New()
		return item, nil
	}}
	h, sm := newTestServer(handler.Deps{Items: svc})

	req := httptest.NewRequest(http.MethodPost, "/trips/"+tripID.String()+"/items/todo",
		jsonBody(t, map[string]any{"text": "Book hotel"}))
	rec := do(h, signedIn(t, sm, req))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Book hotel", got.Text)
	assert.False(t, got.Completed)
}

func TestCreateItems_batch(t *testing.T) {
	tripID := uuid.New()
	svc := &mockItems{createBatch: func(_ context.Context, _, gotTrip uuid.UUID, kind domain.ListKind, items []domain.Item) ([]domain.Item, error) {
		assert.Equal(t, tripID, gotTrip)
		require.Len(t, items, 2)
		for i := range items {
			assert.Equal(t, kind, items[i].Kind)
			items[i].ID = uuid.New()
		}
		return items, nil
	}}
	h, sm := newTestServer(handler.Deps{Items: svc})

	req := httptest.NewRequest(http.MethodPost, "/trips/"+tripID.String()+"/items/packing/batch",
		jsonBody(t, map[string]any{"items": []map[string]string{
			{"text": "Passport", "person": "Alex"},
			{"text": "Charger", "person": "Sam"},
		}}))
	rec := do(h, signedIn(t, sm, req))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Data []domain.Item `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Data, 2)
}

func TestUpdateItem_passesPatch(t *testing.T) {
	id := uuid.New()
	svc := &mockItems{update: func(_ context.Context, _ uuid.UUID, kind domain.ListKind, gotID uuid.UUID, patch domain.ItemPatch) (domain.Item, error) {
		assert.Equal(t, domain.KindShop, kind)
		assert.Equal(t, id, gotID)
		require.NotNil(t, patch.Completed)
		assert.True(t, *patch.Completed)
		assert.Nil(t, patch.Text)
		return domain.Item{ID: id, Kind: kind, Text: "Sunscreen", Completed: true}, nil
	}}
	h, sm := newTestServer(handler.Deps{Items: svc})

	req := httptest.NewRequest(http.MethodPatch, "/items/shop/"+id.String(), jsonBody(t, map[string]bool{"completed": true}))
	rec := do(h, signedIn(t, sm, req))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateItem_notFound(t *testing.T) {
	svc := &mockItems{update: func(context.Context, uuid.UUID, domain.ListKind, uuid.UUID, domain.ItemPatch) (domain.Item, error) {
		return domain.Item{}, fmt.Errorf("service.ItemService.Update: %w", domain.ErrNotFound)
	}}
	h, sm := newTestServer(handler.Deps{Items: svc})

	req := httptest.NewRequest(http.MethodPatch, "/items/todo/"+uuid.NewString(), jsonBody(t, map[string]string{"text": "x"}))
	rec := do(h, signedIn(t, sm, req))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteItem(t *testing.T) {
	id := uuid.New()
	called := false
	svc := &mockItems{delete: func(_ context.Context, _ uuid.UUID, kind domain.ListKind, gotID uuid.UUID) error {
		called = true
		assert.Equal(t, domain.KindPlanning, kind)
		assert.Equal(t, id, gotID)
		return nil
	}}
	h, sm := newTestServer(handler.Deps{Items: svc})

	rec := do(h, signedIn(t, sm, httptest.NewRequest(http.MethodDelete, "/items/planning/"+id.String(), nil)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}
