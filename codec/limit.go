package codec

import "fmt"

// Limit wraps another codec and rejects oversized payloads at Decode time
// before the inner codec runs. Encode passes through unchanged. A shared
// backend can hand back entries written by anyone; the limit caps how much
// a hostile or buggy writer can make this process allocate.
// MaxDecode <= 0 disables the check.
type Limit[V any] struct {
	Inner     Codec[V]
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }
func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
