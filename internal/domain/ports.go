package domain

import "context"

// SearchRepository is the document-store port. Save has upsert semantics
// keyed by SearchID: a prior record under the same id is replaced
// atomically. FindBySearchID returns ErrNotFound when no record exists;
// both operations report transport faults as ErrStoreUnavailable.
type SearchRepository interface {
	Save(ctx context.Context, s Search) (Search, error)
	FindBySearchID(ctx context.Context, searchID string) (Search, error)
}

// SearchPublisher is the event-bus port. Publish blocks until the bus has
// durably accepted the record (keyed by SearchID so per-id order is
// preserved) or fails with ErrPublish.
type SearchPublisher interface {
	Publish(ctx context.Context, s Search) error
}

// Cache is a read-through cache for query results. Misses are (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
