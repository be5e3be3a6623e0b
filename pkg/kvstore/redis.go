package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
)

const writerLeaseScope = "writer"

// redisClient is the slice of pkg/redis.Client the Redis backend needs.
type redisClient interface {
	leaseStore
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
	KVKey(name string) string
	LeaseKey(scope string) string
}

// Redis stores each blob under a namespaced string key. Writes require the
// writer lease so two processes never interleave full-blob saves.
type Redis struct {
	client redisClient
	lease  *WriterLease
}

// NewRedis builds the backend and takes the writer lease. It fails with
// ErrLeaseHeld when another process is already writing to the namespace.
func NewRedis(ctx context.Context, client redisClient, leaseTTL time.Duration) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	lease, err := NewWriterLease(client, client.LeaseKey(writerLeaseScope), leaseTTL)
	if err != nil {
		return nil, err
	}
	ok, err := lease.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire writer lease: %w", err)
	}
	if !ok {
		return nil, ErrLeaseHeld
	}
	return &Redis{client: client, lease: lease}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.client.KVKey(key))
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.lease.Ensure(ctx); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.client.KVKey(key), value, 0); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.lease.Ensure(ctx); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.client.KVKey(key)); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Heartbeat extends the writer lease so an idle writer keeps it.
func (r *Redis) Heartbeat(ctx context.Context) error {
	return r.lease.Ensure(ctx)
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// Close releases the writer lease before closing the connection.
func (r *Redis) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	releaseErr := r.lease.Release(ctx)
	closeErr := r.client.Close()
	return multierr.Combine(releaseErr, closeErr)
}
