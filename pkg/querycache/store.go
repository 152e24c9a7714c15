package querycache

import (
	"context"
	"time"
)

// Store is an optional persistent backing for cache entries, letting warm
// state survive process restarts. Entries are stored as raw JSON with their
// write time; staleness is still judged by the cache on load.
type Store interface {
	Load(ctx context.Context, key string) (raw []byte, updatedAt time.Time, ok bool, err error)
	Save(ctx context.Context, key string, raw []byte, updatedAt time.Time, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
