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

// ItemRepo defines the persistence operations shared by the four list
// collections. The kind argument selects the collection.
type ItemRepo interface {
	// Create inserts one item and returns the persisted record.
	Create(ctx context.Context, item domain.Item) (domain.Item, error)

	// CreateBatch inserts items of one kind in a single round trip.
	// Either every row is inserted or none is.
	CreateBatch(ctx context.Context, kind domain.ListKind, items []domain.Item) ([]domain.Item, error)

	// ListByTrip returns the items of one kind scoped to tripID, newest first.
	ListByTrip(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, tripID uuid.UUID) ([]domain.Item, error)

	// Update applies the non-nil fields of patch and returns the updated record.
	// Returns domain.ErrNotFound if no such item exists.
	Update(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error)

	// Delete removes one item. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error
}

// itemTable describes the collection backing a list kind.
type itemTable struct {
	name   string
	person bool
}

var itemTables = map[domain.ListKind]itemTable{
	domain.KindTodo:     {name: "todo_items"},
	domain.KindPacking:  {name: "packing_items", person: true},
	domain.KindShop:     {name: "shop_items"},
	domain.KindPlanning: {name: "planning_items"},
}

func itemTableFor(kind domain.ListKind) (itemTable, error) {
	t, ok := itemTables[kind]
	if !ok {
		return itemTable{}, fmt.Errorf("%w: unknown list kind %q", domain.ErrValidation, kind)
	}
	return t, nil
}

// columns returns the select list. Collections without a person column
// project an empty string so every kind scans the same way.
func (t itemTable) columns() string {
	person := "''"
	if t.person {
		person = "person"
	}
	return "id, trip_id, owner_id, text, completed, " + person + ", created_at, updated_at"
}

func (t itemTable) insertSQL() string {
	if t.person {
		return fmt.Sprintf(`
			INSERT INTO %s (trip_id, owner_id, text, completed, person)
			VALUES (@trip_id, @owner_id, @text, @completed, @person)
			RETURNING %s`, t.name, t.columns())
	}
	return fmt.Sprintf(`
		INSERT INTO %s (trip_id, owner_id, text, completed)
		VALUES (@trip_id, @owner_id, @text, @completed)
		RETURNING %s`, t.name, t.columns())
}

func insertArgs(item domain.Item) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":   item.TripID,
		"owner_id":  item.OwnerID,
		"text":      item.Text,
		"completed": item.Completed,
		"person":    item.Person,
	}
}

// pgItemRepo is the Postgres implementation of ItemRepo.
type pgItemRepo struct {
	db db
}

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{db: db}
}

func (r *pgItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	defer metrics.ObserveDBLatency(ctx, "items.create", time.Now())

	t, err := itemTableFor(item.Kind)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Create: %w", err)
	}

	result, err := scanItem(r.db.QueryRow(ctx, t.insertSQL(), insertArgs(item)), item.Kind)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) CreateBatch(ctx context.Context, kind domain.ListKind, items []domain.Item) ([]domain.Item, error) {
	defer metrics.ObserveDBLatency(ctx, "items.create_batch", time.Now())

	t, err := itemTableFor(kind)
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.CreateBatch: %w", err)
	}
	if len(items) == 0 {
		return []domain.Item{}, nil
	}

	// Queued statements share one Sync, so outside an explicit transaction
	// Postgres runs them as a single implicit transaction.
	batch := &pgx.Batch{}
	q := t.insertSQL()
	for _, item := range items {
		batch.Queue(q, insertArgs(item))
	}

	br := r.db.SendBatch(ctx, batch)
	out := make([]domain.Item, 0, len(items))
	for range items {
		item, err := scanItem(br.QueryRow(), kind)
		if err != nil {
			_ = br.Close()
			return nil, fmt.Errorf("repo.ItemRepo.CreateBatch: %w", err)
		}
		out = append(out, item)
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.CreateBatch: close: %w", err)
	}
	return out, nil
}

func (r *pgItemRepo) ListByTrip(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, tripID uuid.UUID) ([]domain.Item, error) {
	defer metrics.ObserveDBLatency(ctx, "items.list", time.Now())

	t, err := itemTableFor(kind)
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByTrip: %w", err)
	}

	q := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE trip_id = @trip_id AND owner_id = @owner_id
		ORDER BY created_at DESC, id`, t.columns(), t.name)

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("repo.ItemRepo.ListByTrip: scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByTrip: rows: %w", err)
	}
	return items, nil
}

func (r *pgItemRepo) Update(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error) {
	defer metrics.ObserveDBLatency(ctx, "items.update", time.Now())

	t, err := itemTableFor(kind)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Update: %w", err)
	}

	person := ""
	if t.person {
		person = "person = COALESCE(@person, person),"
	}
	q := fmt.Sprintf(`
		UPDATE %s
		SET text       = COALESCE(@text, text),
		    completed  = COALESCE(@completed, completed),
		    %s
		    updated_at = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING %s`, t.name, person, t.columns())

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":        id,
		"owner_id":  ownerID,
		"text":      patch.Text,
		"completed": patch.Completed,
		"person":    patch.Person,
	})
	result, err := scanItem(row, kind)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error {
	defer metrics.ObserveDBLatency(ctx, "items.delete", time.Now())

	t, err := itemTableFor(kind)
	if err != nil {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", err)
	}

	q := fmt.Sprintf(`DELETE FROM %s WHERE id = @id AND owner_id = @owner_id`, t.name)
	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanItem maps a row selected with itemTable.columns into a domain.Item.
func scanItem(s scanner, kind domain.ListKind) (domain.Item, error) {
	var (
		item               domain.Item
		id, trip, ownerRaw pgtype.UUID
	)

	err := s.Scan(&id, &trip, &ownerRaw, &item.Text, &item.Completed, &item.Person, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Item{}, domain.ErrNotFound
		}
		return domain.Item{}, err
	}

	item.ID = fromPG(id)
	item.TripID = fromPG(trip)
	item.OwnerID = fromPG(ownerRaw)
	item.Kind = kind
	return item, nil
}
