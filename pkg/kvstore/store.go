// Package kvstore is the durable substrate under the persistence gateway: named
// string blobs with get/set/remove and no guarantees across keys.
package kvstore

import "context"

// Store holds string blobs by key. Get reports found=false for an absent key
// rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Heartbeater is implemented by backends holding a lease that must be renewed
// while the process is idle.
type Heartbeater interface {
	Heartbeat(ctx context.Context) error
}
