// Package auth implements account sign-up and sign-in, password resets,
// OpenID Connect login, and the signed session cookie that carries the
// signed-in user between requests.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

const (
	minPasswordLen = 6
	// bcrypt reads at most 72 bytes of input.
	maxPasswordLen = 72
	resetTTL       = time.Hour
)

// ResetDelivery hands a password-reset token to the account holder.
type ResetDelivery func(ctx context.Context, user domain.User, token string)

// Service encapsulates the authentication flows.
type Service struct {
	users    repo.UserRepo
	provider IdentityProvider
	deliver  ResetDelivery
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithIdentityProvider enables OAuth sign-in.
func WithIdentityProvider(p IdentityProvider) Option {
	return func(s *Service) { s.provider = p }
}

// WithResetDelivery replaces the default delivery, which logs the token.
func WithResetDelivery(d ResetDelivery) Option {
	return func(s *Service) { s.deliver = d }
}

// NewService constructs a Service backed by users.
func NewService(users repo.UserRepo, opts ...Option) *Service {
	s := &Service{users: users, deliver: logDelivery, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func logDelivery(ctx context.Context, user domain.User, token string) {
	slog.InfoContext(ctx, "password reset token issued", "user_id", user.ID)
	slog.DebugContext(ctx, "password reset token", "user_id", user.ID, "token", token)
}

// SignUp creates an account with an email and password.
// Returns domain.ErrValidation for bad input and domain.ErrConflict if the
// email is taken.
func (s *Service) SignUp(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return domain.User{}, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth.Service.SignUp: hash: %w", err)
	}
	u, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth.Service.SignUp: %w", err)
	}
	return u, nil
}

// SignIn checks credentials. Any mismatch yields domain.ErrUnauthorized
// without revealing whether the email exists.
func (s *Service) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("auth.Service.SignIn: %w: invalid credentials", domain.ErrUnauthorized)
		}
		return domain.User{}, fmt.Errorf("auth.Service.SignIn: %w", err)
	}
	if !CheckPassword(u.PasswordHash, password) {
		return domain.User{}, fmt.Errorf("auth.Service.SignIn: %w: invalid credentials", domain.ErrUnauthorized)
	}
	return u, nil
}

// User looks up the account behind a session.
func (s *Service) User(ctx context.Context, id uuid.UUID) (domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth.Service.User: %w", err)
	}
	return u, nil
}

// RequestPasswordReset issues a one-hour reset token for email and hands it
// to the delivery hook. Unknown emails succeed silently.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("auth.Service.RequestPasswordReset: %w", err)
	}

	token, err := randomToken()
	if err != nil {
		return fmt.Errorf("auth.Service.RequestPasswordReset: %w", err)
	}
	if err := s.users.CreateReset(ctx, hashToken(token), u.ID, s.now().Add(resetTTL)); err != nil {
		return fmt.Errorf("auth.Service.RequestPasswordReset: %w", err)
	}
	s.deliver(ctx, u, token)
	return nil
}

// ConfirmPasswordReset consumes token and sets a new password.
// An unknown, used, or expired token yields domain.ErrUnauthorized.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth.Service.ConfirmPasswordReset: hash: %w", err)
	}

	userID, err := s.users.ConsumeReset(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("auth.Service.ConfirmPasswordReset: %w: invalid or expired token", domain.ErrUnauthorized)
		}
		return fmt.Errorf("auth.Service.ConfirmPasswordReset: %w", err)
	}
	if err := s.users.SetPassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("auth.Service.ConfirmPasswordReset: %w", err)
	}
	return nil
}

// OAuthEnabled reports whether an identity provider is configured.
func (s *Service) OAuthEnabled() bool {
	return s.provider != nil
}

// OAuthURL returns the provider's sign-in URL and the state nonce the
// callback must echo.
func (s *Service) OAuthURL() (url, state string, err error) {
	if s.provider == nil {
		return "", "", fmt.Errorf("auth.Service.OAuthURL: %w: oauth sign-in is not configured", domain.ErrNotFound)
	}
	state, err = randomToken()
	if err != nil {
		return "", "", fmt.Errorf("auth.Service.OAuthURL: %w", err)
	}
	return s.provider.AuthCodeURL(state), state, nil
}

// OAuthCallback redeems code and returns the matching account, creating
// one on first sign-in.
func (s *Service) OAuthCallback(ctx context.Context, code string) (domain.User, error) {
	if s.provider == nil {
		return domain.User{}, fmt.Errorf("auth.Service.OAuthCallback: %w: oauth sign-in is not configured", domain.ErrNotFound)
	}
	email, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth.Service.OAuthCallback: %w: %v", domain.ErrUnauthorized, err)
	}
	u, err := s.users.EnsureByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth.Service.OAuthCallback: %w", err)
	}
	return u, nil
}

func validateCredentials(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	return validatePassword(password)
}

func validatePassword(password string) error {
	switch {
	case len(password) < minPasswordLen:
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	case len(password) > maxPasswordLen:
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordLen)
	}
	return nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
