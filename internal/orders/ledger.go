// Package orders is the durable history of placed orders, newest first.
package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/caffeineveins/internal/cart"
	"github.com/angelmondragon/caffeineveins/internal/persistence"
	"github.com/angelmondragon/caffeineveins/pkg/enums"
	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
	"github.com/angelmondragon/caffeineveins/pkg/metrics"
	"github.com/google/uuid"
)

type orderGateway interface {
	LoadOrders(ctx context.Context) ([]persistence.OrderRecord, bool, error)
	SaveOrders(ctx context.Context, records []persistence.OrderRecord) error
}

// Options tweaks a Ledger; the zero value is fine.
type Options struct {
	Now     func() time.Time
	NewID   func() string
	Metrics *metrics.StoreMetrics
}

type Ledger struct {
	gateway orderGateway
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
	now     func() time.Time
	newID   func() string

	// writeMu is held across persist so saves of the history never overlap.
	writeMu sync.Mutex

	mu     sync.RWMutex
	orders []Order
}

func NewLedger(gateway orderGateway, logg *logger.Logger, opts Options) (*Ledger, error) {
	if gateway == nil {
		return nil, fmt.Errorf("order gateway required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Ledger{
		gateway: gateway,
		logg:    logg,
		metrics: opts.Metrics,
		now:     opts.Now,
		newID:   opts.NewID,
	}, nil
}

// Load hydrates the history. Nothing stored means no orders yet. Unreadable
// data leaves the ledger empty in memory, untouched in storage, and the cause
// is returned for reporting.
func (l *Ledger) Load(ctx context.Context) ([]Order, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	records, found, err := l.gateway.LoadOrders(ctx)
	if err != nil {
		l.logg.Error(ctx, "order history unreadable; starting empty", err)
		l.replace(nil)
		return l.Orders(), err
	}
	if !found {
		l.replace(nil)
		return l.Orders(), nil
	}

	orders := make([]Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, fromRecord(rec))
	}
	l.replace(orders)
	l.logg.Info(l.logg.WithField(ctx, "orders", len(orders)), "order history loaded")
	return l.Orders(), nil
}

// Place records a pending order for the given lines and persists the history.
// Zero lines is a validation error and nothing is written.
func (l *Ledger) Place(ctx context.Context, customerName string, items []cart.Item) (Order, error) {
	if len(items) == 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "cannot place an order with an empty cart")
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	order := Order{
		ID:           l.newID(),
		Total:        cart.Total(items),
		Status:       enums.OrderStatusPending,
		Date:         l.now().UTC(),
		CustomerName: customerName,
	}
	for _, item := range items {
		order.Items = append(order.Items, item.Clone())
	}

	next := append([]Order{order}, l.Orders()...)
	ctx = l.logg.WithOrderID(ctx, order.ID)
	if err := l.commit(ctx, next); err != nil {
		return Order{}, err
	}

	l.metrics.IncOrderPlaced()
	l.logg.Info(l.logg.WithFields(ctx, map[string]any{
		"customer": customerName,
		"items":    len(order.Items),
		"total":    order.Total.String(),
	}), "order placed")
	return order.Clone(), nil
}

// PlaceFromCart moves the cart into a new order. The cart is cleared if and
// only if the order was persisted.
func (l *Ledger) PlaceFromCart(ctx context.Context, customerName string, c *cart.Cart) (Order, error) {
	if c == nil {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is required")
	}
	var placed Order
	err := c.Checkout(func(items []cart.Item) error {
		order, err := l.Place(ctx, customerName, items)
		if err != nil {
			return err
		}
		placed = order
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return placed, nil
}

// UpdateStatus overwrites the status of order id. It does not require the
// order to be pending; overwriting a finished order is allowed and logged.
// An unknown id is a no-op without a write and reports found=false.
func (l *Ledger) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (Order, bool, error) {
	if !status.IsValid() {
		return Order{}, false, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	current := l.Orders()
	idx := indexOf(current, id)
	if idx < 0 {
		return Order{}, false, nil
	}

	ctx = l.logg.WithOrderID(ctx, id)
	previous := current[idx].Status
	if previous.IsTerminal() && previous != status {
		l.logg.Warn(l.logg.WithFields(ctx, map[string]any{
			"from": previous.String(),
			"to":   status.String(),
		}), "overwriting status of a finished order")
	}
	current[idx].Status = status

	if err := l.commit(ctx, current); err != nil {
		return Order{}, true, err
	}
	l.metrics.IncStatusChange(status)
	return current[idx].Clone(), true, nil
}

// Orders returns a deep copy of the history, newest first.
func (l *Ledger) Orders() []Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneAll(l.orders)
}

func (l *Ledger) Get(id string) (Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx := indexOf(l.orders, id)
	if idx < 0 {
		return Order{}, false
	}
	return l.orders[idx].Clone(), true
}

func (l *Ledger) commit(ctx context.Context, next []Order) error {
	if err := l.gateway.SaveOrders(ctx, toRecords(next)); err != nil {
		l.logg.Error(ctx, "failed to persist order history", err)
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "could not persist orders")
		}
		return err
	}
	l.replace(next)
	return nil
}

func (l *Ledger) replace(orders []Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders = orders
}

func indexOf(orders []Order, id string) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
