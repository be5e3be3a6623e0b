package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/caffeineveins/api/middleware"
	"github.com/angelmondragon/caffeineveins/internal/shop"
	"github.com/angelmondragon/caffeineveins/internal/users"
	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
)

// SessionProvider hands out the per-user session the handlers act through.
type SessionProvider interface {
	Session(user users.User) (*shop.Session, error)
}

// Pinger exposes the readiness check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

func sessionFor(r *http.Request, provider SessionProvider) (*shop.Session, error) {
	if provider == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable")
	}
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return provider.Session(user)
}
