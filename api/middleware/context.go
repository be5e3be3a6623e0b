package middleware

import (
	"context"

	"github.com/angelmondragon/caffeineveins/internal/users"
)

type contextKey string

const ctxUser contextKey = "current_user"

// UserFromContext returns the identity placed by Auth.
func UserFromContext(ctx context.Context) (users.User, bool) {
	if ctx == nil {
		return users.User{}, false
	}
	u, ok := ctx.Value(ctxUser).(users.User)
	return u, ok
}

// WithUser injects the current user into the context.
func WithUser(ctx context.Context, user users.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUser, user)
}
