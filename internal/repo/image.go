package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/metrics"
)

// ImageRepo records metadata for objects written to the image store.
type ImageRepo interface {
	// Create records an uploaded object. Returns domain.ErrConflict if the
	// key is already taken.
	Create(ctx context.Context, img domain.Image) (domain.Image, error)

	// List returns up to limit images ordered by creation time ascending.
	// The listing is bucket-wide, not per owner.
	List(ctx context.Context, limit int) ([]domain.Image, error)
}

type pgImageRepo struct {
	db db
}

// NewImageRepo constructs an ImageRepo backed by the provided db connection.
func NewImageRepo(db db) ImageRepo {
	return &pgImageRepo{db: db}
}

const imageColumns = `id, owner_id, key, content_type, size, created_at`

func (r *pgImageRepo) Create(ctx context.Context, img domain.Image) (domain.Image, error) {
	defer metrics.ObserveDBLatency(ctx, "images.create", time.Now())

	const q = `
		INSERT INTO images (owner_id, key, content_type, size)
		VALUES (@owner_id, @key, @content_type, @size)
		RETURNING ` + imageColumns

	result, err := scanImage(r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"owner_id":     img.OwnerID,
		"key":          img.Key,
		"content_type": img.ContentType,
		"size":         img.Size,
	}))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Image{}, fmt.Errorf("repo.ImageRepo.Create: %w: key %q exists", domain.ErrConflict, img.Key)
		}
		return domain.Image{}, fmt.Errorf("repo.ImageRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgImageRepo) List(ctx context.Context, limit int) ([]domain.Image, error) {
	defer metrics.ObserveDBLatency(ctx, "images.list", time.Now())

	const q = `
		SELECT ` + imageColumns + `
		FROM images
		ORDER BY created_at ASC, id
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.ImageRepo.List: %w", err)
	}
	defer rows.Close()

	var out []domain.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ImageRepo.List: scan: %w", err)
		}
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ImageRepo.List: rows: %w", err)
	}
	return out, nil
}

func scanImage(s scanner) (domain.Image, error) {
	var (
		img       domain.Image
		id, owner pgtype.UUID
	)
	if err := s.Scan(&id, &owner, &img.Key, &img.ContentType, &img.Size, &img.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Image{}, domain.ErrNotFound
		}
		return domain.Image{}, err
	}
	img.ID = fromPG(id)
	img.OwnerID = fromPG(owner)
	return img, nil
}
