package planner_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/planner"
)

var errConnectionLost = errors.New("connection lost")

// fakeBackend is an in-memory server. Trips are returned oldest first so the
// tests exercise the planner's own ordering.
type fakeBackend struct {
	mu sync.Mutex

	user      domain.User
	signedIn  bool
	trips     []domain.Trip
	items     []domain.Item
	templates map[domain.ListKind][]domain.DefaultItem
	clock     time.Time
	calls     map[string]int

	// dropAfterTripInsert makes every call after the next CreateTrip fail.
	dropAfterTripInsert bool
	down                bool

	failCreateItem error
	failList       map[domain.ListKind]error

	// listGate, when set, runs before ListItems reads any state.
	listGate func(tripID uuid.UUID)
}

var _ planner.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		user:      domain.User{ID: uuid.New(), Email: "alex@example.com"},
		signedIn:  true,
		templates: map[domain.ListKind][]domain.DefaultItem{},
		clock:     time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		calls:     map[string]int{},
		failList:  map[domain.ListKind]error{},
	}
}

func (f *fakeBackend) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

// enter records a call and reports whether the connection is up.
func (f *fakeBackend) enter(name string) error {
	f.calls[name]++
	if f.down {
		return errConnectionLost
	}
	return nil
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) addTrip(name string) domain.Trip {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.tick()
	t := domain.Trip{ID: uuid.New(), Name: name, OwnerID: f.user.ID, CreatedAt: now, UpdatedAt: now}
	f.trips = append(f.trips, t)
	return t
}

func (f *fakeBackend) addItem(tripID uuid.UUID, kind domain.ListKind, text, person string, done bool) domain.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.tick()
	it := domain.Item{
		ID: uuid.New(), TripID: tripID, OwnerID: f.user.ID, Kind: kind,
		Text: text, Person: person, Completed: done, CreatedAt: now, UpdatedAt: now,
	}
	f.items = append(f.items, it)
	return it
}

func (f *fakeBackend) addTemplate(kind domain.ListKind, text, person string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.templates[kind] = append(f.templates[kind], domain.DefaultItem{
		ID: uuid.New(), OwnerID: f.user.ID, Kind: kind, Text: text, Person: person, CreatedAt: f.tick(),
	})
}

func (f *fakeBackend) itemsOf(tripID uuid.UUID, kind domain.ListKind) []domain.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Item
	for _, it := range f.items {
		if it.TripID == tripID && it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

func (f *fakeBackend) CurrentUser(context.Context) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CurrentUser"); err != nil {
		return domain.User{}, err
	}
	if !f.signedIn {
		return domain.User{}, domain.ErrUnauthorized
	}
	return f.user, nil
}

func (f *fakeBackend) ListTrips(context.Context) ([]domain.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListTrips"); err != nil {
		return nil, err
	}
	return slices.Clone(f.trips), nil
}

func (f *fakeBackend) CreateTrip(_ context.Context, name string) (domain.Trip, error) {
	f.mu.Lock()
	if err := f.enter("CreateTrip"); err != nil {
		f.mu.Unlock()
		return domain.Trip{}, err
	}
	drop := f.dropAfterTripInsert
	f.mu.Unlock()

	t := f.addTrip(name)

	f.mu.Lock()
	f.down = drop
	f.mu.Unlock()
	return t, nil
}

func (f *fakeBackend) RenameTrip(_ context.Context, id uuid.UUID, name string) (domain.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("RenameTrip"); err != nil {
		return domain.Trip{}, err
	}
	for i := range f.trips {
		if f.trips[i].ID == id {
			f.trips[i].Name = name
			f.trips[i].UpdatedAt = f.tick()
			return f.trips[i], nil
		}
	}
	return domain.Trip{}, domain.ErrNotFound
}

func (f *fakeBackend) DeleteTrip(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteTrip"); err != nil {
		return err
	}
	i := slices.IndexFunc(f.trips, func(t domain.Trip) bool { return t.ID == id })
	if i < 0 {
		return domain.ErrNotFound
	}
	f.trips = slices.Delete(f.trips, i, i+1)
	f.items = slices.DeleteFunc(f.items, func(it domain.Item) bool { return it.TripID == id })
	return nil
}

func (f *fakeBackend) ListItems(_ context.Context, tripID uuid.UUID, kind domain.ListKind) ([]domain.Item, error) {
	f.mu.Lock()
	gate := f.listGate
	f.mu.Unlock()
	if gate != nil {
		gate(tripID)
	}

	f.mu.Lock()
	if err := f.enter("ListItems"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if err := f.failList[kind]; err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.mu.Unlock()
	return f.itemsOf(tripID, kind), nil
}

func (f *fakeBackend) CreateItem(_ context.Context, item domain.Item) (domain.Item, error) {
	f.mu.Lock()
	if err := f.enter("CreateItem"); err != nil {
		f.mu.Unlock()
		return domain.Item{}, err
	}
	if f.failCreateItem != nil {
		f.mu.Unlock()
		return domain.Item{}, f.failCreateItem
	}
	f.mu.Unlock()
	return f.addItem(item.TripID, item.Kind, item.Text, item.Person, item.Completed), nil
}

func (f *fakeBackend) CreateItems(_ context.Context, tripID uuid.UUID, kind domain.ListKind, items []domain.Item) ([]domain.Item, error) {
	f.mu.Lock()
	if err := f.enter("CreateItems"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.mu.Unlock()
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		out = append(out, f.addItem(tripID, kind, it.Text, it.Person, it.Completed))
	}
	return out, nil
}

func (f *fakeBackend) UpdateItem(_ context.Context, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateItem"); err != nil {
		return domain.Item{}, err
	}
	for i := range f.items {
		it := &f.items[i]
		if it.ID != id || it.Kind != kind {
			continue
		}
		if patch.Text != nil {
			it.Text = *patch.Text
		}
		if patch.Completed != nil {
			it.Completed = *patch.Completed
		}
		if patch.Person != nil {
			it.Person = *patch.Person
		}
		it.UpdatedAt = f.tick()
		return *it, nil
	}
	return domain.Item{}, domain.ErrNotFound
}

func (f *fakeBackend) DeleteItem(_ context.Context, kind domain.ListKind, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteItem"); err != nil {
		return err
	}
	n := len(f.items)
	f.items = slices.DeleteFunc(f.items, func(it domain.Item) bool { return it.ID == id && it.Kind == kind })
	if len(f.items) == n {
		return domain.ErrNotFound
	}
	return nil
}

func (f *fakeBackend) ListTemplates(_ context.Context, kind domain.ListKind) ([]domain.DefaultItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListTemplates"); err != nil {
		return nil, err
	}
	return slices.Clone(f.templates[kind]), nil
}

// answer is a Confirmer with a fixed reply that records the prompt.
type answer struct {
	yes    bool
	prompt string
}

func (a *answer) Confirm(_ context.Context, prompt string) (bool, error) {
	a.prompt = prompt
	return a.yes, nil
}
