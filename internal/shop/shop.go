// Package shop wires the catalog, the order ledger and per-user carts
// together. Everything is built once in New and handed out explicitly.
package shop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/caffeineveins/internal/cart"
	"github.com/angelmondragon/caffeineveins/internal/catalog"
	"github.com/angelmondragon/caffeineveins/internal/orders"
	"github.com/angelmondragon/caffeineveins/internal/persistence"
	"github.com/angelmondragon/caffeineveins/internal/users"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
	"github.com/angelmondragon/caffeineveins/pkg/metrics"
	"go.uber.org/multierr"
)

type Params struct {
	Gateway *persistence.Gateway
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
	// Now and NewOrderID override the clock and order id source; tests only.
	Now        func() time.Time
	NewOrderID func() string
}

type Shop struct {
	gateway *persistence.Gateway
	catalog *catalog.Store
	ledger  *orders.Ledger
	logg    *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func New(p Params) (*Shop, error) {
	if p.Gateway == nil {
		return nil, fmt.Errorf("persistence gateway required")
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}

	store, err := catalog.NewStore(p.Gateway, p.Logger, catalog.Options{Now: p.Now})
	if err != nil {
		return nil, err
	}
	ledger, err := orders.NewLedger(p.Gateway, p.Logger, orders.Options{
		Now:     p.Now,
		NewID:   p.NewOrderID,
		Metrics: p.Metrics,
	})
	if err != nil {
		return nil, err
	}

	return &Shop{
		gateway:  p.Gateway,
		catalog:  store,
		ledger:   ledger,
		logg:     p.Logger,
		sessions: make(map[string]*Session),
	}, nil
}

// Bootstrap hydrates the catalog and the ledger. Both always end up usable;
// the returned error lists what had to fall back to defaults.
func (s *Shop) Bootstrap(ctx context.Context) error {
	var errs error
	products, err := s.catalog.Load(ctx)
	errs = multierr.Append(errs, err)
	history, err := s.ledger.Load(ctx)
	errs = multierr.Append(errs, err)

	ctx = s.logg.WithFields(ctx, map[string]any{"products": len(products), "orders": len(history)})
	if errs != nil {
		s.logg.Warn(ctx, "shop started with fallback data")
		return errs
	}
	s.logg.Info(ctx, "shop ready")
	return nil
}

// Session returns the session for user, creating it on first use. The cart
// belongs to the session, so every call for the same user sees the same cart.
func (s *Shop) Session(user users.User) (*Session, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[user.Key()]
	if !ok {
		sess = &Session{shop: s, user: user, cart: cart.New()}
		s.sessions[user.Key()] = sess
		return sess, nil
	}
	// roles can change between tokens; the cart and the first-seen username stay
	sess.setRole(user.Role)
	return sess, nil
}

func (s *Shop) Catalog() *catalog.Store {
	return s.catalog
}

func (s *Shop) Ledger() *orders.Ledger {
	return s.ledger
}

// Ping reports whether the storage substrate is reachable.
func (s *Shop) Ping(ctx context.Context) error {
	return s.gateway.Ping(ctx)
}

func (s *Shop) Close() error {
	return s.gateway.Close()
}
