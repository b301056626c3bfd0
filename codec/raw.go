package codec

// Bytes is the identity codec for []byte values. Useful when the caller
// already holds raw payloads and only wants the typed wrapper's surface.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String converts to and from []byte with no validation; assumes UTF-8 by
// convention.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
