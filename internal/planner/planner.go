// Package planner is the client-side core of the travel planner: it holds
// the selected trip, keeps the four lists of that trip in sync with the
// server, and projects them into one table.
//
// Every list mutation is a remote write followed by a full re-fetch of all
// four lists through RefreshAll. Fetches are tagged with the trip they were
// issued for, and results for a trip that is no longer selected are dropped.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/travel-planner/internal/domain"
)

// ErrNoTripSelected is returned by operations that need a selected trip
// when the trip set is empty.
var ErrNoTripSelected = errors.New("no trip selected")

// Backend is the remote surface the planner consumes.
type Backend interface {
	CurrentUser(ctx context.Context) (domain.User, error)

	ListTrips(ctx context.Context) ([]domain.Trip, error)
	CreateTrip(ctx context.Context, name string) (domain.Trip, error)
	RenameTrip(ctx context.Context, id uuid.UUID, name string) (domain.Trip, error)
	DeleteTrip(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, tripID uuid.UUID, kind domain.ListKind) ([]domain.Item, error)
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	CreateItems(ctx context.Context, tripID uuid.UUID, kind domain.ListKind, items []domain.Item) ([]domain.Item, error)
	UpdateItem(ctx context.Context, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error)
	DeleteItem(ctx context.Context, kind domain.ListKind, id uuid.UUID) error

	ListTemplates(ctx context.Context, kind domain.ListKind) ([]domain.DefaultItem, error)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// RefreshFunc re-pulls every list of the selected trip. List clients call
// it after each successful write.
type RefreshFunc func(ctx context.Context) error

// Lists holds the four lists of one trip.
type Lists struct {
	Todo     []domain.Item
	Packing  []domain.Item
	Shop     []domain.Item
	Planning []domain.Item
}

// Get returns the list of kind.
func (l Lists) Get(kind domain.ListKind) []domain.Item {
	switch kind {
	case domain.KindTodo:
		return l.Todo
	case domain.KindPacking:
		return l.Packing
	case domain.KindShop:
		return l.Shop
	case domain.KindPlanning:
		return l.Planning
	}
	return nil
}

func (l *Lists) set(kind domain.ListKind, items []domain.Item) {
	switch kind {
	case domain.KindTodo:
		l.Todo = items
	case domain.KindPacking:
		l.Packing = items
	case domain.KindShop:
		l.Shop = items
	case domain.KindPlanning:
		l.Planning = items
	}
}

func (l Lists) clone() Lists {
	return Lists{
		Todo:     slices.Clone(l.Todo),
		Packing:  slices.Clone(l.Packing),
		Shop:     slices.Clone(l.Shop),
		Planning: slices.Clone(l.Planning),
	}
}

// Planner holds the trip set, the selection and the lists of the selected
// trip. It is safe for concurrent use.
type Planner struct {
	backend Backend
	log     *slog.Logger

	mu      sync.RWMutex
	trips   []domain.Trip
	current uuid.UUID // uuid.Nil when nothing is selected
	lists   Lists

	clients map[domain.ListKind]*ListClient
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger for partial-success and stale-response events.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.log = l }
}

// New returns a Planner with nothing loaded.
func New(b Backend, opts ...Option) *Planner {
	p := &Planner{
		backend: b,
		log:     slog.Default(),
		clients: make(map[domain.ListKind]*ListClient, len(domain.ListKinds)),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, kind := range domain.ListKinds {
		p.clients[kind] = newListClient(kind, b, p.selected, p.RefreshAll)
	}
	return p
}

// List returns the mutation client for kind. It panics on an unknown kind.
func (p *Planner) List(kind domain.ListKind) *ListClient {
	c, ok := p.clients[kind]
	if !ok {
		panic(fmt.Sprintf("planner: unknown list kind %q", kind))
	}
	return c
}

// LoadTrips fetches the trip set newest first. A selection that is still
// present is kept and refreshed in place; otherwise the most recent trip is
// selected and its lists are loaded.
func (p *Planner) LoadTrips(ctx context.Context) error {
	trips, err := p.backend.ListTrips(ctx)
	if err != nil {
		return fmt.Errorf("planner.Planner.LoadTrips: %w", err)
	}
	sortNewestFirst(trips)

	p.mu.Lock()
	p.trips = trips
	changed := false
	if p.current == uuid.Nil || indexOf(trips, p.current) < 0 {
		prev := p.current
		p.current = uuid.Nil
		if len(trips) > 0 {
			p.current = trips[0].ID
		}
		changed = p.current != prev
		p.lists = Lists{}
	}
	selected := p.current
	p.mu.Unlock()

	if changed && selected != uuid.Nil {
		return p.RefreshAll(ctx)
	}
	return nil
}

// SelectTrip makes id the selection and reloads its lists.
func (p *Planner) SelectTrip(ctx context.Context, id uuid.UUID) error {
	p.mu.Lock()
	if indexOf(p.trips, id) < 0 {
		p.mu.Unlock()
		return fmt.Errorf("planner.Planner.SelectTrip: %w: trip %s", domain.ErrNotFound, id)
	}
	if p.current != id {
		p.current = id
		p.lists = Lists{}
	}
	p.mu.Unlock()

	return p.RefreshAll(ctx)
}

// CreateTrip inserts a trip named "Travel N", copies the todo and packing
// templates into it and selects it. Template copy failures are logged per
// kind and do not fail the call; the trip stays created.
func (p *Planner) CreateTrip(ctx context.Context) (domain.Trip, error) {
	user, err := p.backend.CurrentUser(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("planner.Planner.CreateTrip: %w", err)
	}

	p.mu.RLock()
	name := fmt.Sprintf("Travel %d", len(p.trips)+1)
	p.mu.RUnlock()

	trip, err := p.backend.CreateTrip(ctx, name)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("planner.Planner.CreateTrip: %w", err)
	}

	for _, kind := range domain.TemplateKinds {
		if err := p.copyTemplates(ctx, user, trip, kind); err != nil {
			p.log.WarnContext(ctx, "copying default items failed",
				"trip_id", trip.ID, "kind", kind, "error", err)
		}
	}

	trips, loadErr := p.backend.ListTrips(ctx)
	p.mu.Lock()
	if loadErr != nil {
		p.log.WarnContext(ctx, "reloading trips after create failed", "trip_id", trip.ID, "error", loadErr)
		trips = append([]domain.Trip{trip}, p.trips...)
	} else {
		sortNewestFirst(trips)
		if indexOf(trips, trip.ID) < 0 {
			trips = append([]domain.Trip{trip}, trips...)
		}
	}
	p.trips = trips
	p.current = trip.ID
	p.lists = Lists{}
	p.mu.Unlock()

	if err := p.RefreshAll(ctx); err != nil {
		p.log.WarnContext(ctx, "loading lists of new trip failed", "trip_id", trip.ID, "error", err)
	}
	return trip, nil
}

func (p *Planner) copyTemplates(ctx context.Context, user domain.User, trip domain.Trip, kind domain.ListKind) error {
	tpls, err := p.backend.ListTemplates(ctx, kind)
	if err != nil {
		return err
	}
	if len(tpls) == 0 {
		return nil
	}
	items := make([]domain.Item, 0, len(tpls))
	for _, tpl := range tpls {
		items = append(items, domain.Item{
			TripID:  trip.ID,
			OwnerID: user.ID,
			Kind:    kind,
			Text:    tpl.Text,
			Person:  tpl.Person,
		})
	}
	_, err = p.backend.CreateItems(ctx, trip.ID, kind, items)
	return err
}

// RenameTrip renames the selected trip and reloads the trip set.
func (p *Planner) RenameTrip(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("planner.Planner.RenameTrip: %w: name is required", domain.ErrValidation)
	}
	id, ok := p.selected()
	if !ok {
		return fmt.Errorf("planner.Planner.RenameTrip: %w", ErrNoTripSelected)
	}
	if _, err := p.backend.RenameTrip(ctx, id, name); err != nil {
		return fmt.Errorf("planner.Planner.RenameTrip: %w", err)
	}
	return p.LoadTrips(ctx)
}

// DeleteTrip deletes the selected trip once c approves. It reports whether
// the trip was deleted; declining leaves every piece of state untouched.
// The server removes the trip's items.
func (p *Planner) DeleteTrip(ctx context.Context, c Confirmer) (bool, error) {
	trip, ok := p.Current()
	if !ok {
		return false, fmt.Errorf("planner.Planner.DeleteTrip: %w", ErrNoTripSelected)
	}

	prompt := fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", trip.Name)
	yes, err := c.Confirm(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("planner.Planner.DeleteTrip: confirm: %w", err)
	}
	if !yes {
		return false, nil
	}

	if err := p.backend.DeleteTrip(ctx, trip.ID); err != nil {
		return false, fmt.Errorf("planner.Planner.DeleteTrip: %w", err)
	}

	p.mu.Lock()
	p.current = uuid.Nil
	p.lists = Lists{}
	p.mu.Unlock()

	return true, p.LoadTrips(ctx)
}

// RefreshAll fetches the four lists of the selected trip concurrently.
// Results are committed together, and only if the trip is still selected
// when they arrive. A failed fetch keeps that list's previous contents and
// its error is returned.
func (p *Planner) RefreshAll(ctx context.Context) error {
	tripID, ok := p.selected()
	if !ok {
		return nil
	}

	var (
		results [4][]domain.Item
		fetched [4]bool
		g       errgroup.Group
	)
	for i, kind := range domain.ListKinds {
		g.Go(func() error {
			items, err := p.backend.ListItems(ctx, tripID, kind)
			if err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			results[i] = items
			fetched[i] = true
			return nil
		})
	}
	err := g.Wait()

	p.mu.Lock()
	if p.current != tripID {
		p.mu.Unlock()
		p.log.DebugContext(ctx, "discarding lists of deselected trip", "trip_id", tripID)
		return nil
	}
	for i, kind := range domain.ListKinds {
		if fetched[i] {
			p.lists.set(kind, nonNil(results[i]))
		}
	}
	p.mu.Unlock()

	if err != nil {
		return fmt.Errorf("planner.Planner.RefreshAll: %w", err)
	}
	return nil
}

// Trips returns a copy of the trip set, newest first.
func (p *Planner) Trips() []domain.Trip {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.trips)
}

// Current returns the selected trip.
func (p *Planner) Current() (domain.Trip, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i := indexOf(p.trips, p.current); i >= 0 {
		return p.trips[i], true
	}
	return domain.Trip{}, false
}

// Lists returns a copy of the selected trip's lists.
func (p *Planner) Lists() Lists {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lists.clone()
}

// Items returns a copy of one list of the selected trip.
func (p *Planner) Items(kind domain.ListKind) []domain.Item {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.lists.Get(kind))
}

func (p *Planner) selected() (uuid.UUID, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, p.current != uuid.Nil
}

func indexOf(trips []domain.Trip, id uuid.UUID) int {
	return slices.IndexFunc(trips, func(t domain.Trip) bool { return t.ID == id })
}

// sortNewestFirst orders trips by creation time, most recent first. Ties
// keep the server's order.
func sortNewestFirst(trips []domain.Trip) {
	slices.SortStableFunc(trips, func(a, b domain.Trip) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
