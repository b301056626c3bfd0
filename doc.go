// Package slidecache is a Redis-backed distributed cache for opaque byte
// payloads with two independent, composable expiration policies: an absolute
// deadline and a sliding inactivity window. Expiry is enforced server-side
// via the key TTL; every read of an entry with a sliding policy pushes the
// TTL forward without re-transmitting the payload.
//
// Entries live in a Redis hash per key:
//
//	<instance><key> -> { absexp, sldexp, data }
//
// written atomically by a server-side script together with the derived TTL
// (min of time-to-absolute and sliding window). An optional instance name
// prefixes every key so multiple logical caches can share one backend.
//
// Every operation has a blocking form and a context form with identical
// semantics; the blocking form runs against context.Background(). The shared
// connection is dialed lazily on first use, by exactly one caller even under
// concurrent first access, and a failed dial is retried on the next call.
//
//	cache, err := slidecache.New(slidecache.Options{
//		URL:          "redis://localhost:6379/0",
//		InstanceName: "sessions:",
//	})
//	...
//	err = cache.SetContext(ctx, "u:1", payload, &slidecache.EntryOptions{
//		SlidingExpiration: 20 * time.Minute,
//	})
//
// For typed values, wrap the cache with the typed package and a codec.
package slidecache
