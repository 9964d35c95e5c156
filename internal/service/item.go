package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/metrics"
	"github.com/pkordes/travel-planner/internal/repo"
)

// ItemService implements business logic for the four per-trip lists.
// It holds the trip repo because inserting requires verifying the parent
// trip belongs to the caller.
type ItemService struct {
	trips repo.TripRepo
	items repo.ItemRepo
}

// NewItemService constructs an ItemService backed by the provided repos.
func NewItemService(trips repo.TripRepo, items repo.ItemRepo) *ItemService {
	return &ItemService{trips: trips, items: items}
}

// Create validates the item, verifies the parent trip, then persists.
// Returns domain.ErrValidation for blank text or an unknown kind and
// domain.ErrNotFound if the trip does not exist.
func (s *ItemService) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	item, err := normalizeItem(item)
	if err != nil {
		return domain.Item{}, err
	}
	if _, err := s.trips.GetByID(ctx, item.OwnerID, item.TripID); err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	result, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	metrics.ItemMutations.WithLabelValues(string(item.Kind), "create").Inc()
	return result, nil
}

// CreateBatch inserts items of one kind into tripID in a single batch.
// Every item is validated before anything is written.
func (s *ItemService) CreateBatch(ctx context.Context, ownerID, tripID uuid.UUID, kind domain.ListKind, items []domain.Item) ([]domain.Item, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown list kind %q", domain.ErrValidation, kind)
	}
	batch := make([]domain.Item, 0, len(items))
	for i, item := range items {
		item.OwnerID, item.TripID, item.Kind = ownerID, tripID, kind
		n, err := normalizeItem(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		batch = append(batch, n)
	}
	if _, err := s.trips.GetByID(ctx, ownerID, tripID); err != nil {
		return nil, fmt.Errorf("service.ItemService.CreateBatch: %w", err)
	}
	result, err := s.items.CreateBatch(ctx, kind, batch)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.CreateBatch: %w", err)
	}
	metrics.ItemMutations.WithLabelValues(string(kind), "create").Add(float64(len(result)))
	return result, nil
}

// ListByTrip returns one list of a trip, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItemService) ListByTrip(ctx context.Context, ownerID, tripID uuid.UUID, kind domain.ListKind) ([]domain.Item, error) {
	items, err := s.items.ListByTrip(ctx, ownerID, kind, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.ListByTrip: %w", err)
	}
	if items == nil {
		return []domain.Item{}, nil
	}
	return items, nil
}

// Update applies a partial update. Returns domain.ErrValidation for an
// empty patch, blank text, or a person on a kind that has none.
func (s *ItemService) Update(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error) {
	if err := validatePatch(kind, patch); err != nil {
		return domain.Item{}, err
	}
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		patch.Text = &text
	}
	result, err := s.items.Update(ctx, ownerID, kind, id, patch)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Update: %w", err)
	}
	metrics.ItemMutations.WithLabelValues(string(kind), "update").Inc()
	return result, nil
}

// Delete removes one item unconditionally.
func (s *ItemService) Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown list kind %q", domain.ErrValidation, kind)
	}
	if err := s.items.Delete(ctx, ownerID, kind, id); err != nil {
		return fmt.Errorf("service.ItemService.Delete: %w", err)
	}
	metrics.ItemMutations.WithLabelValues(string(kind), "delete").Inc()
	return nil
}

// normalizeItem trims text and drops person from kinds that do not carry one.
func normalizeItem(item domain.Item) (domain.Item, error) {
	if !item.Kind.Valid() {
		return domain.Item{}, fmt.Errorf("%w: unknown list kind %q", domain.ErrValidation, item.Kind)
	}
	item.Text = strings.TrimSpace(item.Text)
	if item.Text == "" {
		return domain.Item{}, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}
	item.Person = strings.TrimSpace(item.Person)
	if !item.Kind.HasPerson() {
		item.Person = ""
	}
	return item, nil
}

func validatePatch(kind domain.ListKind, patch domain.ItemPatch) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown list kind %q", domain.ErrValidation, kind)
	}
	if patch.Empty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	if patch.Text != nil && strings.TrimSpace(*patch.Text) == "" {
		return fmt.Errorf("%w: text must not be blank", domain.ErrValidation)
	}
	if patch.Person != nil && !kind.HasPerson() {
		return fmt.Errorf("%w: %s items have no person", domain.ErrValidation, kind)
	}
	return nil
}
