package slidecache

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Conn is the backend capability set the cache consumes: server-side script
// evaluation for the atomic entry reads/writes, cursor scans for pattern
// search, TTL refresh and deletes. Satisfied by goredis.UniversalClient, so
// single-node, sentinel and cluster clients all plug in.
type Conn interface {
	goredis.Scripter
	Ping(ctx context.Context) *goredis.StatusCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *goredis.ScanCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Close() error
}

var _ Conn = (goredis.UniversalClient)(nil)

// connect returns the shared connection, dialing on first use. The fast path
// is a single atomic load with no synchronization. The slow path serializes
// through a weight-1 semaphore so blocking and context callers contend on
// the same lock, re-checks under it, and honors ctx while waiting. A failed
// dial leaves the handle unset; the next call retries.
func (c *cache) connect(ctx context.Context) (Conn, error) {
	if conn := c.conn.Load(); conn != nil {
		return *conn, nil
	}
	if err := c.connMu.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.connMu.Release(1)

	if c.closed.Load() {
		return nil, ErrClosed
	}
	if conn := c.conn.Load(); conn != nil {
		return *conn, nil
	}

	conn, err := c.dial(ctx)
	if err != nil {
		c.log.Error("backend connect failed", Fields{"err": err})
		return nil, err
	}
	c.conn.Store(&conn)
	c.log.Info("backend connected", Fields{"instance": c.prefix})
	c.hooks.Connected()
	return conn, nil
}

func (c *cache) dial(ctx context.Context) (Conn, error) {
	if c.newClient != nil {
		return c.newClient(ctx)
	}
	opt := c.cfg
	if opt == nil {
		parsed, err := goredis.ParseURL(c.url)
		if err != nil {
			return nil, err
		}
		opt = parsed
	}
	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *cache) Close() error { return c.CloseContext(context.Background()) }

// CloseContext releases the shared connection exactly once. It takes the
// connect lock so an in-flight dial finishes (or fails) before the handle is
// torn down; later operations return ErrClosed.
func (c *cache) CloseContext(ctx context.Context) error {
	if err := c.connMu.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.connMu.Release(1)

	if c.closed.Swap(true) {
		return nil
	}
	if conn := c.conn.Swap(nil); conn != nil {
		if err := (*conn).Close(); err != nil {
			return err
		}
	}
	return nil
}
