// Package typed layers a codec over the byte cache so callers work with
// concrete Go values instead of raw payloads. The wrapper adds nothing to
// the expiration semantics; encode/decode happen before and after the same
// operations the byte facade exposes.
package typed

import (
	"context"

	"github.com/unkn0wn-root/slidecache"
	"github.com/unkn0wn-root/slidecache/codec"
)

// Cache wraps a slidecache.Cache with a Codec[V].
type Cache[V any] struct {
	c  slidecache.Cache
	cd codec.Codec[V]
}

func New[V any](c slidecache.Cache, cd codec.Codec[V]) *Cache[V] {
	return &Cache[V]{c: c, cd: cd}
}

// Get returns the decoded value. ok=false with nil error is a miss; a decode
// failure is an error, not a miss, since the entry is still live remotely.
func (t *Cache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	b, ok, err := t.c.GetContext(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := t.cd.Decode(b)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func (t *Cache[V]) Set(ctx context.Context, key string, v V, opts *slidecache.EntryOptions) error {
	b, err := t.cd.Encode(v)
	if err != nil {
		return err
	}
	return t.c.SetContext(ctx, key, b, opts)
}

func (t *Cache[V]) Refresh(ctx context.Context, key string) error {
	return t.c.RefreshContext(ctx, key)
}

func (t *Cache[V]) Remove(ctx context.Context, key string) error {
	return t.c.RemoveContext(ctx, key)
}
