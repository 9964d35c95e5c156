// Package service contains the business logic for the travel planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip owned by ownerID.
// Returns domain.ErrValidation if the name is blank.
func (s *TripService) Create(ctx context.Context, ownerID uuid.UUID, name string) (domain.Trip, error) {
	name, err := validateTripName(name)
	if err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, domain.Trip{OwnerID: ownerID, Name: name})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip owned by ownerID.
func (s *TripService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the owner's trips, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Rename validates and applies a new trip name. Items are keyed by trip id,
// so a rename never detaches them.
func (s *TripService) Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (domain.Trip, error) {
	name, err := validateTripName(name)
	if err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Rename(ctx, ownerID, id, name)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Rename: %w", err)
	}
	return result, nil
}

// Delete removes a trip. Its items are removed by the schema.
func (s *TripService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

func validateTripName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return name, nil
}
