package planner

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
)

// Draft is the pending input of a list: the text being typed and, for
// packing lists, the person it is for.
type Draft struct {
	Text   string
	Person string
}

// ListClient performs writes against one list kind of the selected trip.
// Every successful write is followed by a call to the refresh callback.
type ListClient struct {
	kind    domain.ListKind
	backend Backend
	scope   func() (uuid.UUID, bool)
	refresh RefreshFunc

	mu       sync.Mutex
	draft    Draft
	editID   uuid.UUID
	editText string

	tplTrip   uuid.UUID
	templates []domain.DefaultItem
}

func newListClient(kind domain.ListKind, b Backend, scope func() (uuid.UUID, bool), refresh RefreshFunc) *ListClient {
	return &ListClient{kind: kind, backend: b, scope: scope, refresh: refresh}
}

// Kind returns the list kind this client writes to.
func (c *ListClient) Kind() domain.ListKind { return c.kind }

// SetDraft replaces the pending input.
func (c *ListClient) SetDraft(d Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

// Draft returns the pending input.
func (c *ListClient) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Submit adds the pending draft.
func (c *ListClient) Submit(ctx context.Context) error {
	d := c.Draft()
	return c.Add(ctx, d.Text, d.Person)
}

// Add inserts an item into the selected trip's list. Text that trims to
// empty is ignored without a remote call. On success the draft is cleared
// and the lists are refreshed; on failure the draft is kept and the error
// returned.
func (c *ListClient) Add(ctx context.Context, text, person string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	tripID, ok := c.scope()
	if !ok {
		return fmt.Errorf("planner.ListClient.Add: %w", ErrNoTripSelected)
	}
	if !c.kind.HasPerson() {
		person = ""
	}

	item := domain.Item{
		TripID: tripID,
		Kind:   c.kind,
		Text:   text,
		Person: strings.TrimSpace(person),
	}
	if _, err := c.backend.CreateItem(ctx, item); err != nil {
		return fmt.Errorf("planner.ListClient.Add: %w", err)
	}

	c.SetDraft(Draft{})
	return c.refresh(ctx)
}

// Toggle flips item's completion on the server, then refreshes. Nothing
// changes locally until the refresh lands.
func (c *ListClient) Toggle(ctx context.Context, item domain.Item) error {
	done := !item.Completed
	if _, err := c.backend.UpdateItem(ctx, c.kind, item.ID, domain.ItemPatch{Completed: &done}); err != nil {
		return fmt.Errorf("planner.ListClient.Toggle: %w", err)
	}
	return c.refresh(ctx)
}

// BeginEdit puts item into edit mode with its current text.
func (c *ListClient) BeginEdit(item domain.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editID = item.ID
	c.editText = item.Text
}

// SetEditText replaces the text being edited.
func (c *ListClient) SetEditText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editText = text
}

// Editing reports the item in edit mode and its pending text.
func (c *ListClient) Editing() (uuid.UUID, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editID, c.editText, c.editID != uuid.Nil
}

// CancelEdit leaves edit mode without writing.
func (c *ListClient) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editID = uuid.Nil
	c.editText = ""
}

// CommitEdit writes the pending text. Blur and Enter both end up here.
// Empty text stays in edit mode without a remote call; success leaves edit
// mode and refreshes.
func (c *ListClient) CommitEdit(ctx context.Context) error {
	id, text, editing := c.Editing()
	if !editing {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if _, err := c.backend.UpdateItem(ctx, c.kind, id, domain.ItemPatch{Text: &text}); err != nil {
		return fmt.Errorf("planner.ListClient.CommitEdit: %w", err)
	}

	c.mu.Lock()
	if c.editID == id {
		c.editID = uuid.Nil
		c.editText = ""
	}
	c.mu.Unlock()
	return c.refresh(ctx)
}

// Edit is BeginEdit, SetEditText and CommitEdit in one call.
func (c *ListClient) Edit(ctx context.Context, item domain.Item, text string) error {
	c.BeginEdit(item)
	c.SetEditText(text)
	return c.CommitEdit(ctx)
}

// Delete removes item without asking, then refreshes.
func (c *ListClient) Delete(ctx context.Context, item domain.Item) error {
	if err := c.backend.DeleteItem(ctx, c.kind, item.ID); err != nil {
		return fmt.Errorf("planner.ListClient.Delete: %w", err)
	}
	return c.refresh(ctx)
}

// Templates returns the default packing items offered for adoption. They
// are fetched once per selected trip.
func (c *ListClient) Templates(ctx context.Context) ([]domain.DefaultItem, error) {
	if c.kind != domain.KindPacking {
		return nil, fmt.Errorf("planner.ListClient.Templates: %w: %s lists have no adoptable defaults", domain.ErrValidation, c.kind)
	}
	tripID, ok := c.scope()
	if !ok {
		return nil, fmt.Errorf("planner.ListClient.Templates: %w", ErrNoTripSelected)
	}

	c.mu.Lock()
	if c.templates != nil && c.tplTrip == tripID {
		out := slices.Clone(c.templates)
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	tpls, err := c.backend.ListTemplates(ctx, c.kind)
	if err != nil {
		return nil, fmt.Errorf("planner.ListClient.Templates: %w", err)
	}
	tpls = nonNil(tpls)

	c.mu.Lock()
	c.tplTrip = tripID
	c.templates = tpls
	c.mu.Unlock()
	return slices.Clone(tpls), nil
}

// AdoptTemplate copies tpl into the selected trip's packing list as an
// open item. The template itself stays available.
func (c *ListClient) AdoptTemplate(ctx context.Context, tpl domain.DefaultItem) error {
	if c.kind != domain.KindPacking {
		return fmt.Errorf("planner.ListClient.AdoptTemplate: %w: %s lists have no adoptable defaults", domain.ErrValidation, c.kind)
	}
	tripID, ok := c.scope()
	if !ok {
		return fmt.Errorf("planner.ListClient.AdoptTemplate: %w", ErrNoTripSelected)
	}
	item := domain.Item{
		TripID: tripID,
		Kind:   c.kind,
		Text:   tpl.Text,
		Person: tpl.Person,
	}
	if _, err := c.backend.CreateItem(ctx, item); err != nil {
		return fmt.Errorf("planner.ListClient.AdoptTemplate: %w", err)
	}
	return c.refresh(ctx)
}
