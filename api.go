package slidecache

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// Cache is the distributed byte cache. Get reports (value, ok, err) where
// ok=false with a nil error is a miss. The blocking forms are thin wrappers
// over the Context forms with context.Background().
type Cache interface {
	// Get returns the payload stored under key and, when the entry carries
	// a sliding policy, resets its remote TTL.
	Get(key string) ([]byte, bool, error)
	GetContext(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key with the expiration policies in opts.
	// The write is a single atomic server-side operation.
	Set(key string, value []byte, opts *EntryOptions) error
	SetContext(ctx context.Context, key string, value []byte, opts *EntryOptions) error

	// Refresh extends the TTL of an entry with a sliding policy without
	// retrieving the payload. No-op for absolute-only entries.
	Refresh(key string) error
	RefreshContext(ctx context.Context, key string) error

	// Remove deletes the entry. Removing a missing key is not an error.
	Remove(key string) error
	RemoveContext(ctx context.Context, key string) error

	// FindKeys returns every key matching the glob-style pattern, with the
	// instance prefix stripped. The result is deduplicated and unordered.
	FindKeys(pattern string) ([]string, error)
	FindKeysContext(ctx context.Context, pattern string) ([]string, error)

	// Close releases the shared connection. Safe to call repeatedly.
	Close() error
	CloseContext(ctx context.Context) error
}

// NewClientFunc overrides connection creation (custom pools, tests).
// The cache owns the returned connection and closes it on Close.
type NewClientFunc func(ctx context.Context) (Conn, error)

// Options configure the cache. One of Config, URL or NewClient must be set;
// the first non-nil in that order wins when dialing.
type Options struct {
	// Config is the structured client configuration. Takes precedence over
	// URL when both are supplied.
	Config *goredis.Options

	// URL is a connection string, e.g. "redis://:pass@host:6379/2",
	// parsed with goredis.ParseURL.
	URL string

	// NewClient replaces the built-in dialing entirely.
	NewClient NewClientFunc

	// InstanceName is prepended to every key so multiple logical caches can
	// share one backend. Empty disables prefixing. The name is used as-is;
	// include a trailing separator if you want one ("sessions:").
	InstanceName string

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks

	// ScanCount is the per-batch size hint for FindKeys. 0 => 1000.
	ScanCount int64
}

// New builds a Cache. No connection is made until the first operation.
func New(opts Options) (Cache, error) {
	return newCache(opts)
}
