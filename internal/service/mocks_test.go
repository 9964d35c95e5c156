package service_test

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)
	rename  func(ctx context.Context, ownerID, id uuid.UUID, name string) (domain.Trip, error)
	delete  func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, ownerID, id)
}
func (m *mockTripRepo) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	return m.list(ctx, ownerID)
}
func (m *mockTripRepo) Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (domain.Trip, error) {
	return m.rename(ctx, ownerID, id, name)
}
func (m *mockTripRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// tripExists returns a trip repo whose GetByID always succeeds.
func tripExists() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, ownerID, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: id, OwnerID: ownerID, Name: "Travel 1"}, nil
		},
	}
}

type mockItemRepo struct {
	create      func(ctx context.Context, item domain.Item) (domain.Item, error)
	createBatch func(ctx context.Context, kind domain.ListKind, items []domain.Item) ([]domain.Item, error)
	listByTrip  func(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, tripID uuid.UUID) ([]domain.Item, error)
	update      func(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error)
	delete      func(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error
}

func (m *mockItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	return m.create(ctx, item)
}
func (m *mockItemRepo) CreateBatch(ctx context.Context, kind domain.ListKind, items []domain.Item) ([]domain.Item, error) {
	return m.createBatch(ctx, kind, items)
}
func (m *mockItemRepo) ListByTrip(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, tripID uuid.UUID) ([]domain.Item, error) {
	return m.listByTrip(ctx, ownerID, kind, tripID)
}
func (m *mockItemRepo) Update(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error) {
	return m.update(ctx, ownerID, kind, id, patch)
}
func (m *mockItemRepo) Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error {
	return m.delete(ctx, ownerID, kind, id)
}

var _ repo.ItemRepo = (*mockItemRepo)(nil)

type mockTemplateRepo struct {
	list   func(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind) ([]domain.DefaultItem, error)
	create func(ctx context.Context, tpl domain.DefaultItem) (domain.DefaultItem, error)
	delete func(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error
}

func (m *mockTemplateRepo) List(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind) ([]domain.DefaultItem, error) {
	return m.list(ctx, ownerID, kind)
}
func (m *mockTemplateRepo) Create(ctx context.Context, tpl domain.DefaultItem) (domain.DefaultItem, error) {
	return m.create(ctx, tpl)
}
func (m *mockTemplateRepo) Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error {
	return m.delete(ctx, ownerID, kind, id)
}

var _ repo.TemplateRepo = (*mockTemplateRepo)(nil)

type mockExplorerRepo struct {
	browse func(ctx context.Context, ownerID uuid.UUID, collection string, p domain.PaginationParams) ([]map[string]any, int, error)
}

func (m *mockExplorerRepo) Browse(ctx context.Context, ownerID uuid.UUID, collection string, p domain.PaginationParams) ([]map[string]any, int, error) {
	return m.browse(ctx, ownerID, collection, p)
}

var _ repo.ExplorerRepo = (*mockExplorerRepo)(nil)

type mockImageRepo struct {
	create func(ctx context.Context, img domain.Image) (domain.Image, error)
	list   func(ctx context.Context, limit int) ([]domain.Image, error)
}

func (m *mockImageRepo) Create(ctx context.Context, img domain.Image) (domain.Image, error) {
	return m.create(ctx, img)
}
func (m *mockImageRepo) List(ctx context.Context, limit int) ([]domain.Image, error) {
	return m.list(ctx, limit)
}

var _ repo.ImageRepo = (*mockImageRepo)(nil)

// memStore is an in-memory service.ObjectStore.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (s *memStore) Put(_ context.Context, key string, r io.Reader) (int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; ok {
		return 0, domain.ErrConflict
	}
	s.objects[key] = b
	return int64(len(b)), nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *memStore) PublicURL(key string) string {
	return "http://media.test/" + key
}

var _ service.ObjectStore = (*memStore)(nil)
