package planner

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
)

// Status values of a projected row.
const (
	StatusComplete   = "Complete"
	StatusIncomplete = "Incomplete"
)

// NoPerson fills the person column for rows without one.
const NoPerson = "-"

// Row is one item of any list in the uniform overview shape.
type Row struct {
	ID        uuid.UUID
	Kind      domain.ListKind
	Task      string
	Person    string
	Status    string
	Completed bool
}

type projectConfig struct {
	planning bool
}

// ProjectOption adjusts Project.
type ProjectOption func(*projectConfig)

// WithPlanning appends planning items after the shop items. Without it
// the planning list is left out of the overview.
func WithPlanning() ProjectOption {
	return func(c *projectConfig) { c.planning = true }
}

// Project flattens lists into rows: todo items, then packing, then shop,
// each in list order.
func Project(lists Lists, opts ...ProjectOption) []Row {
	var cfg projectConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	kinds := []domain.ListKind{domain.KindTodo, domain.KindPacking, domain.KindShop}
	if cfg.planning {
		kinds = append(kinds, domain.KindPlanning)
	}

	rows := make([]Row, 0, len(lists.Todo)+len(lists.Packing)+len(lists.Shop)+len(lists.Planning))
	for _, kind := range kinds {
		for _, it := range lists.Get(kind) {
			rows = append(rows, projectItem(kind, it))
		}
	}
	return rows
}

func projectItem(kind domain.ListKind, it domain.Item) Row {
	person := NoPerson
	if kind.HasPerson() && it.Person != "" {
		person = it.Person
	}
	return Row{
		ID:        it.ID,
		Kind:      kind,
		Task:      it.Text,
		Person:    person,
		Status:    statusOf(it.Completed),
		Completed: it.Completed,
	}
}

func statusOf(completed bool) string {
	if completed {
		return StatusComplete
	}
	return StatusIncomplete
}

// ItemUpdater is the write the overview needs.
type ItemUpdater interface {
	UpdateItem(ctx context.Context, kind domain.ListKind, id uuid.UUID, patch domain.ItemPatch) (domain.Item, error)
}

// Overview is the projected table with in-place status toggling.
type Overview struct {
	backend ItemUpdater
	opts    []ProjectOption

	mu   sync.Mutex
	rows []Row
}

// NewOverview projects lists with opts.
func NewOverview(b ItemUpdater, lists Lists, opts ...ProjectOption) *Overview {
	return &Overview{backend: b, opts: opts, rows: Project(lists, opts...)}
}

// Rows returns a copy of the current rows.
func (o *Overview) Rows() []Row {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.rows)
}

// Reset re-projects after the source lists changed.
func (o *Overview) Reset(lists Lists) {
	rows := Project(lists, o.opts...)
	o.mu.Lock()
	o.rows = rows
	o.mu.Unlock()
}

// ToggleStatus flips the row's completion in the list its kind names and,
// once the server acknowledges, patches only that row.
func (o *Overview) ToggleStatus(ctx context.Context, id uuid.UUID) (Row, error) {
	o.mu.Lock()
	i := slices.IndexFunc(o.rows, func(r Row) bool { return r.ID == id })
	if i < 0 {
		o.mu.Unlock()
		return Row{}, fmt.Errorf("planner.Overview.ToggleStatus: %w: row %s", domain.ErrNotFound, id)
	}
	row := o.rows[i]
	o.mu.Unlock()

	done := !row.Completed
	if _, err := o.backend.UpdateItem(ctx, row.Kind, row.ID, domain.ItemPatch{Completed: &done}); err != nil {
		return Row{}, fmt.Errorf("planner.Overview.ToggleStatus: %w", err)
	}

	row.Completed = done
	row.Status = statusOf(done)

	o.mu.Lock()
	defer o.mu.Unlock()
	if i := slices.IndexFunc(o.rows, func(r Row) bool { return r.ID == id }); i >= 0 {
		o.rows[i] = row
	}
	return row, nil
}
