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

// TemplateRepo defines persistence for default-item templates. Only kinds
// for which domain.ListKind.HasTemplates is true have a collection.
type TemplateRepo interface {
	// List returns the owner's templates of one kind, oldest first, which is
	// the order they are copied into a new trip.
	List(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind) ([]domain.DefaultItem, error)

	// Create inserts a template and returns the persisted record.
	Create(ctx context.Context, tpl domain.DefaultItem) (domain.DefaultItem, error)

	// Delete removes a template. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error
}

var templateTables = map[domain.ListKind]itemTable{
	domain.KindTodo:    {name: "default_todo_items"},
	domain.KindPacking: {name: "default_packing_items", person: true},
}

func templateTableFor(kind domain.ListKind) (itemTable, error) {
	t, ok := templateTables[kind]
	if !ok {
		return itemTable{}, fmt.Errorf("%w: list kind %q has no templates", domain.ErrValidation, kind)
	}
	return t, nil
}

func (t itemTable) templateColumns() string {
	person := "''"
	if t.person {
		person = "person"
	}
	return "id, owner_id, text, " + person + ", created_at"
}

type pgTemplateRepo struct {
	db db
}

// NewTemplateRepo constructs a TemplateRepo backed by the provided db connection.
func NewTemplateRepo(db db) TemplateRepo {
	return &pgTemplateRepo{db: db}
}

func (r *pgTemplateRepo) List(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind) ([]domain.DefaultItem, error) {
	defer metrics.ObserveDBLatency(ctx, "templates.list", time.Now())

	t, err := templateTableFor(kind)
	if err != nil {
		return nil, fmt.Errorf("repo.TemplateRepo.List: %w", err)
	}

	q := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = @owner_id
		ORDER BY created_at ASC, id`, t.templateColumns(), t.name)

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TemplateRepo.List: %w", err)
	}
	defer rows.Close()

	var out []domain.DefaultItem
	for rows.Next() {
		tpl, err := scanTemplate(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("repo.TemplateRepo.List: scan: %w", err)
		}
		out = append(out, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TemplateRepo.List: rows: %w", err)
	}
	return out, nil
}

func (r *pgTemplateRepo) Create(ctx context.Context, tpl domain.DefaultItem) (domain.DefaultItem, error) {
	defer metrics.ObserveDBLatency(ctx, "templates.create", time.Now())

	t, err := templateTableFor(tpl.Kind)
	if err != nil {
		return domain.DefaultItem{}, fmt.Errorf("repo.TemplateRepo.Create: %w", err)
	}

	var q string
	if t.person {
		q = fmt.Sprintf(`
			INSERT INTO %s (owner_id, text, person)
			VALUES (@owner_id, @text, @person)
			RETURNING %s`, t.name, t.templateColumns())
	} else {
		q = fmt.Sprintf(`
			INSERT INTO %s (owner_id, text)
			VALUES (@owner_id, @text)
			RETURNING %s`, t.name, t.templateColumns())
	}

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"owner_id": tpl.OwnerID,
		"text":     tpl.Text,
		"person":   tpl.Person,
	})
	result, err := scanTemplate(row, tpl.Kind)
	if err != nil {
		return domain.DefaultItem{}, fmt.Errorf("repo.TemplateRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTemplateRepo) Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error {
	defer metrics.ObserveDBLatency(ctx, "templates.delete", time.Now())

	t, err := templateTableFor(kind)
	if err != nil {
		return fmt.Errorf("repo.TemplateRepo.Delete: %w", err)
	}

	q := fmt.Sprintf(`DELETE FROM %s WHERE id = @id AND owner_id = @owner_id`, t.name)
	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TemplateRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TemplateRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanTemplate(s scanner, kind domain.ListKind) (domain.DefaultItem, error) {
	var (
		tpl       domain.DefaultItem
		id, owner pgtype.UUID
	)
	if err := s.Scan(&id, &owner, &tpl.Text, &tpl.Person, &tpl.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultItem{}, domain.ErrNotFound
		}
		return domain.DefaultItem{}, err
	}
	tpl.ID = fromPG(id)
	tpl.OwnerID = fromPG(owner)
	tpl.Kind = kind
	return tpl, nil
}
