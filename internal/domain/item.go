package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ListKind discriminates the four per-trip lists. Each kind is stored in its
// own collection but shares one row shape.
type ListKind string

const (
	KindTodo     ListKind = "todo"
	KindPacking  ListKind = "packing"
	KindShop     ListKind = "shop"
	KindPlanning ListKind = "planning"
)

// ListKinds is every list kind in display order.
var ListKinds = []ListKind{KindTodo, KindPacking, KindShop, KindPlanning}

// TemplateKinds are the kinds that have default-item templates copied into
// every new trip.
var TemplateKinds = []ListKind{KindTodo, KindPacking}

// ParseListKind validates s and returns the matching ListKind.
func ParseListKind(s string) (ListKind, error) {
	k := ListKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown list kind %q", ErrValidation, s)
	}
	return k, nil
}

// Valid reports whether k is one of the four list kinds.
func (k ListKind) Valid() bool {
	switch k {
	case KindTodo, KindPacking, KindShop, KindPlanning:
		return true
	}
	return false
}

// HasTemplates reports whether k has a default-item template collection.
func (k ListKind) HasTemplates() bool {
	return k == KindTodo || k == KindPacking
}

// HasPerson reports whether items of kind k carry a person assignment.
func (k ListKind) HasPerson() bool {
	return k == KindPacking
}

// Label is the human-readable list name used in aggregated views.
func (k ListKind) Label() string {
	switch k {
	case KindTodo:
		return "Todo"
	case KindPacking:
		return "Packing"
	case KindShop:
		return "Shop"
	case KindPlanning:
		return "Planning"
	}
	return string(k)
}

// Item is a single entry in one of a trip's lists.
// Person is only meaningful for packing items and is empty otherwise.
type Item struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Kind      ListKind  `json:"kind"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Person    string    `json:"person,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemPatch carries a partial update. Nil fields are left unchanged.
type ItemPatch struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Person    *string `json:"person,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Text == nil && p.Completed == nil && p.Person == nil
}

// DefaultItem is a read-only template row copied into a new trip's list of
// the same kind at trip-creation time.
type DefaultItem struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Kind      ListKind  `json:"kind"`
	Text      string    `json:"text"`
	Person    string    `json:"person,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
