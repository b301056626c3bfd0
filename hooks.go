package slidecache

import "time"

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// The shared backend connection was established. Fires once per
	// successful dial (so again after Close or a failed first attempt).
	Connected()

	// A read or Refresh found a sliding policy and pushed a new TTL.
	// ttl is the window that was applied.
	Refreshed(key string, ttl time.Duration)

	// One SCAN batch completed. cursor is the continuation token the
	// backend returned (0 means the enumeration finished).
	ScanBatch(pattern string, returned int, cursor uint64)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Connected()                      {}
func (NopHooks) Refreshed(string, time.Duration) {}
func (NopHooks) ScanBatch(string, int, uint64)   {}
