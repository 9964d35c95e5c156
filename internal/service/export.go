package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// ExportService assembles a flat export of every list of one trip.
type ExportService struct {
	trips repo.TripRepo
	items repo.ItemRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, items repo.ItemRepo) *ExportService {
	return &ExportService{trips: trips, items: items}
}

// Export returns one ExportRow per item of tripID, lists in ListKinds order.
// Returns domain.ErrNotFound if the trip does not belong to ownerID.
func (s *ExportService) Export(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, ownerID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, kind := range domain.ListKinds {
		items, err := s.items.ListByTrip(ctx, ownerID, kind, tripID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %s: %w", kind, err)
		}
		for _, it := range items {
			person := "-"
			if kind.HasPerson() && it.Person != "" {
				person = it.Person
			}
			rows = append(rows, domain.ExportRow{
				TripID:    trip.ID.String(),
				TripName:  trip.Name,
				Kind:      kind,
				Text:      it.Text,
				Person:    person,
				Completed: it.Completed,
				CreatedAt: it.CreatedAt,
			})
		}
	}
	return rows, nil
}
