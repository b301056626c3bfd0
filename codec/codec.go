// Package codec provides pluggable (de)serialization of typed values into
// the opaque byte payload slot of the cache. The cache itself never
// interprets payloads; codecs live entirely on the caller side of the wire.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
