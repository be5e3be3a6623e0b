package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
	"github.com/angelmondragon/caffeineveins/pkg/instance"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLeaseTTL = 10 * time.Minute

// ErrLeaseHeld is returned when another process owns the writer lease.
var ErrLeaseHeld = pkgerrors.New(pkgerrors.CodeStateConflict, "another process holds the writer lease")

// leaseStore defines the operations used by WriterLease.
type leaseStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// WriterLease keeps a shared substrate down to a single writing process.
// The owner token is the instance id plus a fresh UUID per acquisition.
type WriterLease struct {
	client leaseStore
	key    string
	ttl    time.Duration

	mu    sync.Mutex
	owner string
}

// NewWriterLease constructs a Redis-backed lease.
func NewWriterLease(client leaseStore, key string, ttl time.Duration) (*WriterLease, error) {
	if client == nil {
		return nil, errors.New("redis client required for lease")
	}
	if key == "" {
		return nil, errors.New("lease key is required")
	}
	if ttl <= 0 {
		ttl = defaultLeaseTTL
	}
	return &WriterLease{client: client, key: key, ttl: ttl}, nil
}

// Acquire tries to own the lease for the configured TTL.
func (l *WriterLease) Acquire(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acquireLocked(ctx)
}

func (l *WriterLease) acquireLocked(ctx context.Context) (bool, error) {
	owner := instance.GetID() + ":" + uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, owner, l.ttl)
	if err != nil {
		return false, fmt.Errorf("setnx: %w", err)
	}
	if ok {
		l.owner = owner
	}
	return ok, nil
}

// Ensure confirms the lease is still ours and extends it. A lease that expired
// without anyone else taking it is re-acquired.
func (l *WriterLease) Ensure(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	value, err := l.client.Get(ctx, l.key)
	switch {
	case errors.Is(err, redis.Nil):
		ok, err := l.acquireLocked(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return ErrLeaseHeld
		}
		return nil
	case err != nil:
		return fmt.Errorf("read lease owner: %w", err)
	}

	if l.owner == "" || value != l.owner {
		return ErrLeaseHeld
	}
	if _, err := l.client.Expire(ctx, l.key, l.ttl); err != nil {
		return fmt.Errorf("extend lease: %w", err)
	}
	return nil
}

// Release frees the lease only if the owner value still matches.
func (l *WriterLease) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.owner == "" {
		return nil
	}
	value, err := l.client.Get(ctx, l.key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			l.owner = ""
			return nil
		}
		return fmt.Errorf("read lease owner: %w", err)
	}
	if value != l.owner {
		l.owner = ""
		return nil
	}
	if err := l.client.Del(ctx, l.key); err != nil {
		return fmt.Errorf("delete lease: %w", err)
	}
	l.owner = ""
	return nil
}
