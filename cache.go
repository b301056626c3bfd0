package slidecache

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/semaphore"

	"github.com/unkn0wn-root/slidecache/internal/wire"
)

const defaultScanCount = 1000

var (
	setScript   = goredis.NewScript(wire.SetScript)
	hmGetScript = goredis.NewScript(wire.HMGetScript)
)

type cache struct {
	prefix    string
	cfg       *goredis.Options
	url       string
	newClient NewClientFunc
	scanCount int64

	log   Logger
	hooks Hooks

	// shared connection: the only mutable shared state. conn is nil until
	// the first successful dial; connMu guards creation and teardown.
	connMu *semaphore.Weighted
	conn   atomic.Pointer[Conn]
	closed atomic.Bool

	now func() time.Time // injectable for expiration tests
}

var _ Cache = (*cache)(nil)

func newCache(opts Options) (*cache, error) {
	if opts.Config == nil && opts.URL == "" && opts.NewClient == nil {
		return nil, ErrNoConfig
	}
	c := &cache{
		prefix:    opts.InstanceName,
		cfg:       opts.Config,
		url:       opts.URL,
		newClient: opts.NewClient,
		connMu:    semaphore.NewWeighted(1),
		now:       time.Now,
	}
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.scanCount = coalesce[int64](opts.ScanCount, defaultScanCount)
	return c, nil
}

func (c *cache) prefixed(key string) string { return c.prefix + key }

// ---- facade: blocking wrappers ----

func (c *cache) Get(key string) ([]byte, bool, error) {
	return c.GetContext(context.Background(), key)
}

func (c *cache) Set(key string, value []byte, opts *EntryOptions) error {
	return c.SetContext(context.Background(), key, value, opts)
}

func (c *cache) Refresh(key string) error {
	return c.RefreshContext(context.Background(), key)
}

func (c *cache) Remove(key string) error {
	return c.RemoveContext(context.Background(), key)
}

func (c *cache) FindKeys(pattern string) ([]string, error) {
	return c.FindKeysContext(context.Background(), pattern)
}

// ---- entry store ----

func (c *cache) SetContext(ctx context.Context, key string, value []byte, opts *EntryOptions) error {
	if key == "" {
		return ErrEmptyKey
	}
	if value == nil {
		return ErrNilValue
	}
	if opts == nil {
		return ErrNilOptions
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	creation := c.now()
	abs, err := absoluteExpiration(creation, opts)
	if err != nil {
		return err
	}
	ttl := totalTTL(creation, abs, opts)

	conn, err := c.connect(ctx)
	if err != nil {
		return err
	}

	absArg, sldArg, ttlArg := wire.NotPresent, wire.NotPresent, wire.NotPresent
	if abs != nil {
		absArg = wire.TicksFromTime(*abs)
	}
	if opts.SlidingExpiration > 0 {
		sldArg = wire.TicksFromDuration(opts.SlidingExpiration)
	}
	if ttl > 0 {
		ttlArg = int64(ttl / time.Second)
	}

	if err := setScript.Run(ctx, conn, []string{c.prefixed(key)}, absArg, sldArg, value, ttlArg).Err(); err != nil {
		return fmt.Errorf("slidecache: set %q: %w", key, err)
	}
	c.log.Debug("entry written", Fields{"key": key, "ttl_s": ttlArg})
	return nil
}

func (c *cache) GetContext(ctx context.Context, key string) ([]byte, bool, error) {
	return c.getAndRefresh(ctx, key, true)
}

func (c *cache) RefreshContext(ctx context.Context, key string) error {
	_, _, err := c.getAndRefresh(ctx, key, false)
	return err
}

// getAndRefresh fetches the entry metadata (and the payload when wantValue)
// in one scripted round trip, then, if a sliding policy is recorded, pushes
// the remote TTL forward in a second round trip. The refresh is not atomic
// with the read; it only moves the TTL window, never stored data.
func (c *cache) getAndRefresh(ctx context.Context, key string, wantValue bool) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	conn, err := c.connect(ctx)
	if err != nil {
		return nil, false, err
	}

	fields := []any{wire.FieldAbsExp, wire.FieldSldExp}
	if wantValue {
		fields = append(fields, wire.FieldData)
	}
	res, err := hmGetScript.Run(ctx, conn, []string{c.prefixed(key)}, fields...).Slice()
	if err != nil {
		return nil, false, fmt.Errorf("slidecache: get %q: %w", key, err)
	}
	if len(res) < 2 {
		return nil, false, nil // truncated reply, treat as miss
	}

	abs, sliding, err := decodeMetadata(res)
	if err != nil {
		return nil, false, fmt.Errorf("slidecache: entry %q: %w", key, err)
	}

	if sliding > 0 {
		ttl := refreshTTL(c.now(), abs, sliding)
		if err := conn.Expire(ctx, c.prefixed(key), ttl).Err(); err != nil {
			return nil, false, fmt.Errorf("slidecache: refresh %q: %w", key, err)
		}
		c.hooks.Refreshed(key, ttl)
		c.log.Debug("ttl refreshed", Fields{"key": key, "ttl": ttl})
	}

	if wantValue && len(res) >= 3 {
		if b, ok := valueBytes(res[2]); ok {
			return b, true, nil
		}
	}
	return nil, false, nil
}

func (c *cache) RemoveContext(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	conn, err := c.connect(ctx)
	if err != nil {
		return err
	}
	if err := conn.Del(ctx, c.prefixed(key)).Err(); err != nil {
		return fmt.Errorf("slidecache: remove %q: %w", key, err)
	}
	return nil
}

// decodeMetadata turns the first two HMGET cells into the recorded policies.
// The wire sentinel and missing fields both decode as "policy absent".
func decodeMetadata(res []any) (abs *time.Time, sliding time.Duration, err error) {
	absTicks, ok, err := wire.ParseField(res[0])
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", wire.FieldAbsExp, err)
	}
	if ok {
		t := wire.TimeFromTicks(absTicks)
		abs = &t
	}
	sldTicks, ok, err := wire.ParseField(res[1])
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", wire.FieldSldExp, err)
	}
	if ok {
		sliding = wire.DurationFromTicks(sldTicks)
	}
	return abs, sliding, nil
}

func valueBytes(v any) ([]byte, bool) {
	switch vv := v.(type) {
	case nil:
		return nil, false
	case string:
		return []byte(vv), true
	case []byte:
		return vv, true
	}
	return nil, false
}

// ---- key pattern scanner ----

// FindKeysContext walks the keyspace with the cursor-based SCAN protocol:
// batches of at most scanCount keys, the returned cursor feeding the next
// request, done when the cursor comes back 0. The backend may return a key
// more than once across batches (rehash during the walk); the set coalesces
// duplicates. Cancellation is checked before every batch and aborts without
// returning a partial result.
func (c *cache) FindKeysContext(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	conn, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	match := c.prefix + pattern
	seen := make(map[string]struct{})
	var cursor uint64
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		keys, next, err := conn.Scan(ctx, cursor, match, c.scanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("slidecache: scan %q: %w", pattern, err)
		}
		for _, k := range keys {
			seen[k] = struct{}{}
		}
		c.hooks.ScanBatch(pattern, len(keys), next)
		if next == 0 {
			break
		}
		cursor = next
	}

	out := make([]string, 0, len(seen))
	for k := range seen {
		if c.prefix != "" {
			k = strings.TrimPrefix(k, c.prefix)
		}
		out = append(out, k)
	}
	c.log.Debug("pattern scan done", Fields{"pattern": pattern, "keys": len(out)})
	return out, nil
}
