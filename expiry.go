package slidecache

import "time"

// EntryOptions describe when an entry stops being valid. Both policies are
// optional and compose: with both set, the entry dies at the absolute
// deadline no matter how often it is touched, and earlier if it sits idle
// past the sliding window.
type EntryOptions struct {
	// AbsoluteExpiration pins a fixed instant after which the entry is
	// invalid. Must be strictly after the time of the write.
	AbsoluteExpiration *time.Time

	// AbsoluteFromNow sets the absolute expiration relative to the write
	// time. Overrides AbsoluteExpiration when both are set.
	AbsoluteFromNow time.Duration

	// SlidingExpiration expires the entry after this duration of
	// inactivity. Each Get/Refresh restarts the window.
	SlidingExpiration time.Duration
}

// NoExpiration stores an entry that never expires through this client's
// policies (the backend may still evict under memory pressure).
var NoExpiration = &EntryOptions{}

// absoluteExpiration resolves the absolute deadline for an entry written at
// creation. A fixed instant is validated first even when a relative duration
// will override it; the relative form always wins.
func absoluteExpiration(creation time.Time, opts *EntryOptions) (*time.Time, error) {
	if opts.AbsoluteExpiration != nil && !opts.AbsoluteExpiration.After(creation) {
		return nil, &ExpirationError{Creation: creation, Absolute: *opts.AbsoluteExpiration}
	}
	abs := opts.AbsoluteExpiration
	if opts.AbsoluteFromNow > 0 {
		t := creation.Add(opts.AbsoluteFromNow)
		abs = &t
	}
	return abs, nil
}

// totalTTL is the relative TTL handed to the backend at write time:
// min(time to absolute, sliding window) when both policies are set,
// whichever is set when only one is, 0 (no TTL) when neither.
func totalTTL(creation time.Time, abs *time.Time, opts *EntryOptions) time.Duration {
	switch {
	case abs != nil && opts.SlidingExpiration > 0:
		if rel := abs.Sub(creation); rel < opts.SlidingExpiration {
			return rel
		}
		return opts.SlidingExpiration
	case abs != nil:
		return abs.Sub(creation)
	case opts.SlidingExpiration > 0:
		return opts.SlidingExpiration
	}
	return 0
}

// refreshTTL is the TTL re-applied on a touch. Zero means "do not touch the
// remote TTL": without a sliding window the TTL set at write time is already
// final, and reissuing it would change observable expiration timing.
func refreshTTL(now time.Time, abs *time.Time, sliding time.Duration) time.Duration {
	if sliding <= 0 {
		return 0
	}
	if abs != nil {
		if rel := abs.Sub(now); rel < sliding {
			return rel
		}
	}
	return sliding
}
