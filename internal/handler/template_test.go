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

func TestTemplates(t *testing.T) {
	stored := []domain.DefaultItem{}
	svc := &mockTemplates{
		list: func(_ context.Context, _ uuid.UUID, kind domain.ListKind) ([]domain.DefaultItem, error) {
			if !kind.HasTemplates() {
				return nil, fmt.Errorf("service.TemplateService.List: %w: %s has no templates", domain.ErrValidation, kind)
			}
			return stored, nil
		},
		create: func(_ context.Context, tpl domain.DefaultItem) (domain.DefaultItem, error) {
			assert.Equal(t, testUser.ID, tpl.OwnerID)
			tpl.ID = uuid.New()
			stored = append(stored, tpl)
			return tpl, nil
		},
		delete: func(_ context.Context, _ uuid.UUID, _ domain.ListKind, id uuid.UUID) error {
			for i, tpl := range stored {
				if tpl.ID == id {
					stored = append(stored[:i], stored[i+1:]...)
					return nil
				}
			}
			return domain.ErrNotFound
		},
	}
	h, sm := newTestServer(handler.Deps{Templates: svc})

	req := httptest.NewRequest(http.MethodPost, "/templates/packing",
		jsonBody(t, map[string]string{"text": "Passport", "person": "Alex"}))
	rec := do(h, signedIn(t, sm, req))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.DefaultItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, domain.KindPacking, created.Kind)

	rec = do(h, signedIn(t, sm, httptest.NewRequest(http.MethodGet, "/templates/packing", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []domain.DefaultItem `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Data, 1)

	rec = do(h, signedIn(t, sm, httptest.NewRequest(http.MethodGet, "/templates/shop", nil)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "shop has no templates", decodeError(t, rec).Message)

	rec = do(h, signedIn(t, sm, httptest.NewRequest(http.MethodDelete, "/templates/packing/"+created.ID.String(), nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(h, signedIn(t, sm, httptest.NewRequest(http.MethodDelete, "/templates/packing/"+created.ID.String(), nil)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
