// Package codec provides value serialization for the bundled regioncache
// engine. Cached functions return any, so codecs work on any; a decoded value
// comes back as the codec's generic decoding of the stored bytes (for Msgpack
// and JSON that means generic container/number types, not the original
// concrete Go type).
package codec

// Codec encodes/decodes cached values to []byte for storage.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(b []byte) (any, error)
}
