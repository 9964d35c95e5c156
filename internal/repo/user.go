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

// UserRepo defines persistence for accounts and password-reset tokens.
type UserRepo interface {
	// Create inserts a user. Returns domain.ErrConflict if the email
	// (case-insensitive) is already registered.
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)

	// GetByID returns domain.ErrNotFound if no user has that id.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail matches case-insensitively. Returns domain.ErrNotFound on a miss.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// EnsureByEmail returns the user with that email, creating a
	// password-less account if none exists. Used by OAuth sign-in.
	EnsureByEmail(ctx context.Context, email string) (domain.User, error)

	// SetPassword replaces the stored password hash.
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// CreateReset stores a hashed reset token for userID.
	CreateReset(ctx context.Context, tokenHash string, userID uuid.UUID, expiresAt time.Time) error

	// ConsumeReset deletes an unexpired reset token and returns its user.
	// Returns domain.ErrNotFound if the token is unknown or expired.
	ConsumeReset(ctx context.Context, tokenHash string) (uuid.UUID, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, email, password_hash, created_at`

func (r *pgUserRepo) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	defer metrics.ObserveDBLatency(ctx, "users.create", time.Now())

	const q = `
		INSERT INTO users (email, password_hash)
		VALUES (@email, @password_hash)
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email, "password_hash": passwordHash}))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w: email already registered", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return u, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	defer metrics.ObserveDBLatency(ctx, "users.get", time.Now())

	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`
	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return u, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	defer metrics.ObserveDBLatency(ctx, "users.get_by_email", time.Now())

	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower(@email)`
	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return u, nil
}

func (r *pgUserRepo) EnsureByEmail(ctx context.Context, email string) (domain.User, error) {
	defer metrics.ObserveDBLatency(ctx, "users.ensure", time.Now())

	// The no-op DO UPDATE makes RETURNING yield the existing row on conflict.
	const q = `
		INSERT INTO users (email)
		VALUES (@email)
		ON CONFLICT ((lower(email))) DO UPDATE SET email = users.email
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.EnsureByEmail: %w", err)
	}
	return u, nil
}

func (r *pgUserRepo) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	defer metrics.ObserveDBLatency(ctx, "users.set_password", time.Now())

	const q = `UPDATE users SET password_hash = @password_hash WHERE id = @id`
	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "password_hash": passwordHash})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.SetPassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.SetPassword: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgUserRepo) CreateReset(ctx context.Context, tokenHash string, userID uuid.UUID, expiresAt time.Time) error {
	defer metrics.ObserveDBLatency(ctx, "resets.create", time.Now())

	const q = `
		INSERT INTO password_resets (token_hash, user_id, expires_at)
		VALUES (@token_hash, @user_id, @expires_at)`
	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"token_hash": tokenHash,
		"user_id":    userID,
		"expires_at": expiresAt,
	})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.CreateReset: %w", err)
	}
	return nil
}

func (r *pgUserRepo) ConsumeReset(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	defer metrics.ObserveDBLatency(ctx, "resets.consume", time.Now())

	const q = `
		DELETE FROM password_resets
		WHERE token_hash = @token_hash AND expires_at > now()
		RETURNING user_id`

	var id pgtype.UUID
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token_hash": tokenHash}).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("repo.UserRepo.ConsumeReset: %w", domain.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("repo.UserRepo.ConsumeReset: %w", err)
	}
	return fromPG(id), nil
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)
	if err := s.Scan(&id, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	u.ID = fromPG(id)
	return u, nil
}
