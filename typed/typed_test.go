package typed

import (
	"context"
	"testing"
	"time"

	"github.com/unkn0wn-root/slidecache"
	"github.com/unkn0wn-root/slidecache/codec"
)

// stubCache is an in-memory slidecache.Cache capturing the last Set options.
type stubCache struct {
	m        map[string][]byte
	lastOpts *slidecache.EntryOptions
	removed  []string
}

var _ slidecache.Cache = (*stubCache)(nil)

func newStub() *stubCache { return &stubCache{m: make(map[string][]byte)} }

func (s *stubCache) GetContext(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := s.m[key]
	return b, ok, nil
}

func (s *stubCache) SetContext(_ context.Context, key string, value []byte, opts *slidecache.EntryOptions) error {
	s.m[key] = value
	s.lastOpts = opts
	return nil
}

func (s *stubCache) RefreshContext(context.Context, string) error { return nil }

func (s *stubCache) RemoveContext(_ context.Context, key string) error {
	delete(s.m, key)
	s.removed = append(s.removed, key)
	return nil
}

func (s *stubCache) FindKeysContext(context.Context, string) ([]string, error) { return nil, nil }

func (s *stubCache) Get(key string) ([]byte, bool, error) {
	return s.GetContext(context.Background(), key)
}
func (s *stubCache) Set(key string, v []byte, o *slidecache.EntryOptions) error {
	return s.SetContext(context.Background(), key, v, o)
}
func (s *stubCache) Refresh(key string) error { return s.RefreshContext(context.Background(), key) }
func (s *stubCache) Remove(key string) error { return s.RemoveContext(context.Background(), key) }
func (s *stubCache) FindKeys(p string) ([]string, error) {
	return s.FindKeysContext(context.Background(), p)
}
func (s *stubCache) Close() error { return nil }
func (s *stubCache) CloseContext(context.Context) error { return nil }

type session struct {
	User  string `json:"user" msgpack:"user"`
	Score int    `json:"score" msgpack:"score"`
}

func TestTypedRoundTrip(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	tc := New[session](stub, codec.JSON[session]{})

	want := session{User: "ada", Score: 7}
	opts := &slidecache.EntryOptions{SlidingExpiration: time.Minute}
	if err := tc.Set(ctx, "s:1", want, opts); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if stub.lastOpts != opts {
		t.Fatalf("entry options not forwarded")
	}

	got, ok, err := tc.Get(ctx, "s:1")
	if err != nil || !ok || got != want {
		t.Fatalf("Get: ok=%v err=%v got=%+v", ok, err, got)
	}

	// Miss stays a miss, no error.
	if _, ok, err := tc.Get(ctx, "s:2"); ok || err != nil {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}

	if err := tc.Remove(ctx, "s:1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(stub.removed) != 1 || stub.removed[0] != "s:1" {
		t.Fatalf("remove not forwarded: %v", stub.removed)
	}
}

func TestTypedDecodeErrorIsError(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	stub.m["bad"] = []byte("{not json")

	tc := New[session](stub, codec.JSON[session]{})
	if _, ok, err := tc.Get(ctx, "bad"); ok || err == nil {
		t.Fatalf("expected decode error, got ok=%v err=%v", ok, err)
	}
}

func TestTypedMsgpackCodec(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	tc := New[session](stub, codec.Msgpack[session]{})

	want := session{User: "lin", Score: 3}
	if err := tc.Set(ctx, "m:1", want, slidecache.NoExpiration); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := tc.Get(ctx, "m:1")
	if err != nil || !ok || got != want {
		t.Fatalf("Get: ok=%v err=%v got=%+v", ok, err, got)
	}
}
