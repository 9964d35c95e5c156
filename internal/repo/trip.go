package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/metrics"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the Postgres implementation.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip owned by ownerID.
	// Returns domain.ErrNotFound if no such trip exists.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error)

	// List returns the owner's trips ordered newest first.
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)

	// Rename sets the name of an existing trip and returns the updated record.
	// Returns domain.ErrNotFound if no such trip exists.
	Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (domain.Trip, error)

	// Delete removes a trip. Its items go with it (ON DELETE CASCADE).
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, owner_id, name, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	defer metrics.ObserveDBLatency(ctx, "trips.create", time.Now())

	const q = `
		INSERT INTO trips (owner_id, name)
		VALUES (@owner_id, @name)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"owner_id": trip.OwnerID,
		"name":     trip.Name,
	})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, scoped to its owner.
func (r *pgTripRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Trip, error) {
	defer metrics.ObserveDBLatency(ctx, "trips.get", time.Now())

	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns the owner's trips, most recently created first.
func (r *pgTripRepo) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	defer metrics.ObserveDBLatency(ctx, "trips.list", time.Now())

	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

// Rename overwrites the trip name and bumps updated_at.
func (r *pgTripRepo) Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (domain.Trip, error) {
	defer metrics.ObserveDBLatency(ctx, "trips.rename", time.Now())

	const q = `
		UPDATE trips
		SET name       = @name,
		    updated_at = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":       id,
		"owner_id": ownerID,
		"name":     name,
	})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Rename: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key, scoped to its owner.
func (r *pgTripRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	defer metrics.ObserveDBLatency(ctx, "trips.delete", time.Now())

	const q = `DELETE FROM trips WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t     domain.Trip
		id    pgtype.UUID
		owner pgtype.UUID
	)

	err := s.Scan(&id, &owner, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = fromPG(id)
	t.OwnerID = fromPG(owner)
	return t, nil
}
