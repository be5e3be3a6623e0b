// Package persistence is the only code that talks to the storage substrate.
// The catalog and the order history are each one JSON blob; every load reads
// the whole blob and every save rewrites it.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
	"github.com/angelmondragon/caffeineveins/pkg/kvstore"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
	"github.com/angelmondragon/caffeineveins/pkg/metrics"
	"golang.org/x/sync/semaphore"
)

type Gateway struct {
	store   kvstore.Store
	logg    *logger.Logger
	metrics *metrics.StoreMetrics

	mu    sync.Mutex
	locks map[string]*semaphore.Weighted
}

func NewGateway(store kvstore.Store, logg *logger.Logger, m *metrics.StoreMetrics) (*Gateway, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Gateway{
		store:   store,
		logg:    logg,
		metrics: m,
		locks:   make(map[string]*semaphore.Weighted),
	}, nil
}

// LoadProducts returns found=false when nothing was ever stored.
func (g *Gateway) LoadProducts(ctx context.Context) ([]ProductRecord, bool, error) {
	return load[ProductRecord](ctx, g, KeyProducts)
}

func (g *Gateway) SaveProducts(ctx context.Context, records []ProductRecord) error {
	return save(ctx, g, KeyProducts, records)
}

// LoadOrders returns found=false when nothing was ever stored.
func (g *Gateway) LoadOrders(ctx context.Context) ([]OrderRecord, bool, error) {
	return load[OrderRecord](ctx, g, KeyOrders)
}

func (g *Gateway) SaveOrders(ctx context.Context, records []OrderRecord) error {
	return save(ctx, g, KeyOrders, records)
}

func (g *Gateway) Ping(ctx context.Context) error {
	return g.store.Ping(ctx)
}

func (g *Gateway) Close() error {
	return g.store.Close()
}

func load[T any](ctx context.Context, g *Gateway, key string) ([]T, bool, error) {
	raw, found, err := g.store.Get(ctx, key)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read "+key)
	}
	// an empty blob never held a list; treat it like a first run
	if !found || raw == "" {
		return nil, false, nil
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		g.metrics.IncCorruptLoad(key)
		return nil, true, pkgerrors.Wrap(pkgerrors.CodeCorrupted, err, "parse "+key)
	}
	// "[]" decodes to an empty non-nil slice; only a literal null leaves it nil
	if records == nil {
		g.metrics.IncCorruptLoad(key)
		return nil, true, pkgerrors.New(pkgerrors.CodeCorrupted, "parse "+key+": stored value is not a list")
	}
	return records, true, nil
}

func save[T any](ctx context.Context, g *Gateway, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode "+key)
	}

	lock := g.lockFor(key)
	if err := lock.Acquire(ctx, 1); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "waiting to persist "+key)
	}
	defer lock.Release(1)

	start := time.Now()
	err = g.store.Set(ctx, key, string(payload))
	g.metrics.ObservePersist(key, time.Since(start), err)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "could not persist "+key)
	}

	g.logg.Debug(g.logg.WithFields(ctx, map[string]any{"key": key, "records": len(records), "bytes": len(payload)}), "blob persisted")
	return nil
}

// lockFor serializes full-blob writes per key so an older snapshot can never land after a newer one.
func (g *Gateway) lockFor(key string) *semaphore.Weighted {
	g.mu.Lock()
	defer g.mu.Unlock()
	lock, ok := g.locks[key]
	if !ok {
		lock = semaphore.NewWeighted(1)
		g.locks[key] = lock
	}
	return lock
}
