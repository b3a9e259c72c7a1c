// Package codec provides pluggable value serialization for typed partition
// views. A Codec turns the host's value type into the opaque payload the
// provider stores and back.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
