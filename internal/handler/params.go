package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-planner/internal/domain"
)

// pathUUID binds the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return uuid.Nil, requestError("invalid " + name + ": " + err.Error())
	}
	return id, nil
}

// pathKind binds the {kind} URL parameter as a ListKind.
func pathKind(r *http.Request) (domain.ListKind, error) {
	return domain.ParseListKind(chi.URLParam(r, "kind"))
}

// pagination binds the optional page and limit query parameters.
func pagination(r *http.Request) (domain.PaginationParams, error) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		return domain.PaginationParams{}, requestError("invalid page: " + err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		return domain.PaginationParams{}, requestError("invalid limit: " + err.Error())
	}
	if err := domain.ValidatePage(page); err != nil {
		return domain.PaginationParams{}, err
	}
	return domain.NewPaginationParams(page, limit), nil
}

// listResponse is the envelope for every collection endpoint.
type listResponse[T any] struct {
	Data []T `json:"data"`
}
