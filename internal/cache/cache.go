package cache

import "context"

// TTLMissing is the store's own sentinel for "no such key", surfaced
// unchanged so callers can distinguish a miss from a key without expiry
// (TTLNoExpiry).
const (
	TTLMissing  int64 = -2
	TTLNoExpiry int64 = -1
)

// Entry is the result of a single cache lookup: the stored value and its
// remaining TTL in seconds. A miss is Entry{Value: "", TTL: TTLMissing}.
type Entry struct {
	Value string
	TTL   int64
}

// TokenCache is the TTL-keyed store used by the issuer for cache-aside
// token reuse. Entries are write-once-then-expire; the only update is a
// full overwrite by a later Save.
type TokenCache interface {
	// Save unconditionally overwrites key with value and an explicit TTL.
	Save(ctx context.Context, key, value string, ttlSeconds int64) error

	// Get fetches the value and its remaining TTL in one round trip.
	// A missing key yields Entry{Value: "", TTL: TTLMissing} without error.
	Get(ctx context.Context, key string) (Entry, error)
}
