package kvstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// fakeRedis shares one keyspace between clients to model two processes.
type fakeRedis struct {
	data    map[string]string
	setErr  error
	closed  bool
	expires int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = fmt.Sprint(value)
	return true, nil
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	value, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeRedis) Expire(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.expires++
	_, ok := f.data[key]
	return ok, nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeRedis) Ping(context.Context) error { return nil }

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func (f *fakeRedis) KVKey(name string) string     { return "cv:kv:" + name }
func (f *fakeRedis) LeaseKey(scope string) string { return "cv:lease:" + scope }

func TestRedisStore(t *testing.T) {
	fake := newFakeRedis()
	store, err := NewRedis(context.Background(), fake, time.Minute)
	require.NoError(t, err)

	exerciseStore(t, store)
	require.Contains(t, fake.data, "cv:kv:orders", "blobs live under the namespaced kv key")
	require.Positive(t, fake.expires, "writes extend the lease")
}

func TestRedisStoreSecondWriterIsRejected(t *testing.T) {
	shared := newFakeRedis()
	first, err := NewRedis(context.Background(), shared, time.Minute)
	require.NoError(t, err)

	_, err = NewRedis(context.Background(), shared, time.Minute)
	require.ErrorIs(t, err, ErrLeaseHeld)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	require.NoError(t, first.Close())
	require.True(t, shared.closed)
	require.NotContains(t, shared.data, "cv:lease:writer", "close releases the lease")

	second, err := NewRedis(context.Background(), shared, time.Minute)
	require.NoError(t, err)
	require.NoError(t, second.Set(context.Background(), "products", "[]"))
}

func TestRedisStoreStopsWritingWhenLeaseIsStolen(t *testing.T) {
	shared := newFakeRedis()
	store, err := NewRedis(context.Background(), shared, time.Minute)
	require.NoError(t, err)

	shared.data["cv:lease:writer"] = "someone-else"
	err = store.Set(context.Background(), "products", "[]")
	require.ErrorIs(t, err, ErrLeaseHeld)
	require.NotContains(t, shared.data, "cv:kv:products")
}

func TestRedisStoreReacquiresExpiredLease(t *testing.T) {
	shared := newFakeRedis()
	store, err := NewRedis(context.Background(), shared, time.Minute)
	require.NoError(t, err)

	delete(shared.data, "cv:lease:writer")
	require.NoError(t, store.Set(context.Background(), "orders", "[]"))
	require.Contains(t, shared.data, "cv:lease:writer")
}

func TestRedisStoreWrapsSetFailure(t *testing.T) {
	shared := newFakeRedis()
	store, err := NewRedis(context.Background(), shared, time.Minute)
	require.NoError(t, err)

	shared.setErr = errors.New("connection reset")
	err = store.Set(context.Background(), "orders", "[]")
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection reset")
}

func TestWriterLeaseReleaseIgnoresForeignOwner(t *testing.T) {
	shared := newFakeRedis()
	lease, err := NewWriterLease(shared, "cv:lease:writer", 0)
	require.NoError(t, err)

	require.NoError(t, lease.Release(context.Background()), "release without acquire is a no-op")

	ok, err := lease.Acquire(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	shared.data["cv:lease:writer"] = "other"
	require.NoError(t, lease.Release(context.Background()))
	require.Equal(t, "other", shared.data["cv:lease:writer"])

	_, err = NewWriterLease(nil, "k", time.Second)
	require.Error(t, err)
	_, err = NewWriterLease(shared, "", time.Second)
	require.Error(t, err)
}

func TestRedisHeartbeatRenewsLease(t *testing.T) {
	t.Setenv("CAFFEINEVEINS_INSTANCE_ID", "api-7")
	fake := newFakeRedis()
	store, err := NewRedis(context.Background(), fake, time.Minute)
	require.NoError(t, err)

	var hb Heartbeater = store
	require.NoError(t, hb.Heartbeat(context.Background()))
	require.Equal(t, 1, fake.expires)
	require.Regexp(t, `^api-7:`, fake.data["cv:lease:writer"], "owner token carries the instance id")

	delete(fake.data, "cv:lease:writer")
	require.NoError(t, hb.Heartbeat(context.Background()), "an expired lease is taken again")
	require.Contains(t, fake.data, "cv:lease:writer")
}
