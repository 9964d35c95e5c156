package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/metrics"
)

// ExplorerCollections is every collection the explorer may browse. The
// names double as table names, so only values from this list reach SQL.
var ExplorerCollections = []string{
	"trips",
	"todo_items",
	"packing_items",
	"shop_items",
	"planning_items",
	"default_todo_items",
	"default_packing_items",
}

// ExplorerRepo reads raw rows from any whitelisted collection for the
// browsing view. Rows are returned as column-name maps.
type ExplorerRepo interface {
	// Browse returns one page of the owner's rows in collection, oldest
	// first, plus the total row count. Unknown collections yield
	// domain.ErrValidation.
	Browse(ctx context.Context, ownerID uuid.UUID, collection string, p domain.PaginationParams) ([]map[string]any, int, error)
}

type pgExplorerRepo struct {
	db db
}

// NewExplorerRepo constructs an ExplorerRepo backed by the provided db connection.
func NewExplorerRepo(db db) ExplorerRepo {
	return &pgExplorerRepo{db: db}
}

func knownCollection(name string) bool {
	for _, c := range ExplorerCollections {
		if c == name {
			return true
		}
	}
	return false
}

func (r *pgExplorerRepo) Browse(ctx context.Context, ownerID uuid.UUID, collection string, p domain.PaginationParams) ([]map[string]any, int, error) {
	defer metrics.ObserveDBLatency(ctx, "explorer.browse", time.Now())

	if !knownCollection(collection) {
		return nil, 0, fmt.Errorf("repo.ExplorerRepo.Browse: %w: unknown collection %q", domain.ErrValidation, collection)
	}

	var total int
	countQ := fmt.Sprintf(`SELECT count(*) FROM %s WHERE owner_id = @owner_id`, collection)
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"owner_id": ownerID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ExplorerRepo.Browse: count: %w", err)
	}

	q := fmt.Sprintf(`
		SELECT *
		FROM %s
		WHERE owner_id = @owner_id
		ORDER BY created_at ASC, id
		LIMIT @limit OFFSET @offset`, collection)

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ExplorerRepo.Browse: %w", err)
	}

	out, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ExplorerRepo.Browse: collect: %w", err)
	}
	for _, row := range out {
		normalizeRow(row)
	}
	return out, total, nil
}

// normalizeRow rewrites uuid columns, which pgx decodes as [16]byte, into
// their canonical string form so the rows encode readably as JSON.
func normalizeRow(row map[string]any) {
	for k, v := range row {
		if b, ok := v.([16]byte); ok {
			row[k] = uuid.UUID(b).String()
		}
	}
}
