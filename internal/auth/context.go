package auth

import (
	"context"

	"github.com/pkordes/travel-planner/internal/domain"
)

type contextKey string

const contextKeyUser contextKey = "user"

// WithUser returns a copy of ctx carrying the signed-in user.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}

// UserFromContext returns the signed-in user, if any.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(contextKeyUser).(domain.User)
	return u, ok
}
