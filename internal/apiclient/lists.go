package apiclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
)

type tripBody struct {
	Name string `json:"name"`
}

type itemBody struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Person    string `json:"person,omitempty"`
}

func toItemBody(it domain.Item) itemBody {
	return itemBody{Text: it.Text, Completed: it.Completed, Person: it.Person}
}

// ListTrips returns the caller's trips, newest first.
func (c *Client) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	var env listEnvelope[domain.Trip]
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/trips"}, &env); err != nil {
		return nil, wrap("ListTrips", err)
	}
	return nonNil(env.Data), nil
}

// GetTrip returns one trip.
func (c *Client) GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	var t domain.Trip
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/trips/" + id.String()}, &t)
	return t, wrap("GetTrip", err)
}

// CreateTrip inserts a trip named name.
func (c *Client) CreateTrip(ctx context.Context, name string) (domain.Trip, error) {
	var t domain.Trip
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/trips", body: tripBody{name}}, &t)
	return t, wrap("CreateTrip", err)
}

// RenameTrip changes a trip's name.
func (c *Client) RenameTrip(ctx context.Context, id uuid.UUID, name string) (domain.Trip, error) {
	var t domain.Trip
	_, err := c.do(ctx, request{method: http.MethodPatch, path: "/trips/" + id.String(), body: tripBody{name}}, &t)
	return t, wrap("RenameTrip", err)
}

// DeleteTrip removes a trip; the server drops its items with it.
func (c *Client) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/trips/" + id.String()}, nil)
	return wrap("DeleteTrip", err)
}

// ListItems returns one list of a trip, oldest first.
func (c *Client) ListItems(ctx context.Context, tripID uuid.UUID, kind domain.ListKind) ([]domain.Item, error) {
	var env listEnvelope[domain.Item]
	path := "/trips/" + tripID.String() + "/items/" + string(kind)
	if _, err := c.do(ctx, request{method: http.MethodGet, path: path}, &env); err != nil {
		return nil, wrap("ListItems", err)
	}
	return nonNil(env.Data), nil
}

// CreateItem inserts item into the list named by item.Kind of item.TripID.
func (c *Client) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	var out domain.Item
	path := "/trips/" + item.TripID.String() + "/items/" + string(item.Kind)
	_, err := c.do(ctx, request{method: http.MethodPost, path: path, body: toItemBody(item)}, &out)
	return out, wrap("CreateItem", err)
}

// CreateItems inserts items in one atomic batch.
func (c *Client) CreateItems(ctx context.Context, tripID uuid.UUID, kind domain.ListKind, items []domain.Item) ([]domain.Item, error) {
	body := struct {
		Items []itemBody `json:"items"`
	}{Items: make([]itemBody, 0, len(items))}
	for _, it := range items {
		body.Items = append(body.Items, toItemBody(it))
	}
	var env listEnvelope[domain.Item]
	path := "/trips/" + tripID.String() + "/items/" + string(kind) + "/batch"
	if _, err := c.do(ctx, request{method: http.MethodPost, path: path, body: body}, &env); err != nil {
		return nil, wrap("CreateItems", err)
	}
	return nonNil(env.Data), nil
}

// UpdateItem applies patch to one item.
func (c *Client) UpdateItem(ctx context.Context, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error) {
	var out domain.Item
	path := "/items/" + string(kind) + "/" + id.String()
	_, err := c.do(ctx, request{method: http.MethodPatch, path: path, body: patch}, &out)
	return out, wrap("UpdateItem", err)
}

// DeleteItem removes one item.
func (c *Client) DeleteItem(ctx context.Context, kind domain.ListKind, id uuid.UUID) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/items/" + string(kind) + "/" + id.String()}, nil)
	return wrap("DeleteItem", err)
}

// ListTemplates returns the caller's default items of kind.
func (c *Client) ListTemplates(ctx context.Context, kind domain.ListKind) ([]domain.DefaultItem, error) {
	var env listEnvelope[domain.DefaultItem]
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/templates/" + string(kind)}, &env); err != nil {
		return nil, wrap("ListTemplates", err)
	}
	return nonNil(env.Data), nil
}

// CreateTemplate adds a default item.
func (c *Client) CreateTemplate(ctx context.Context, kind domain.ListKind, text, person string) (domain.DefaultItem, error) {
	body := map[string]string{"text": text}
	if person != "" {
		body["person"] = person
	}
	var out domain.DefaultItem
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/templates/" + string(kind), body: body}, &out)
	return out, wrap("CreateTemplate", err)
}

// DeleteTemplate removes a default item.
func (c *Client) DeleteTemplate(ctx context.Context, kind domain.ListKind, id uuid.UUID) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/templates/" + string(kind) + "/" + id.String()}, nil)
	return wrap("DeleteTemplate", err)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
