package redimap

import (
	"context"

	"github.com/unkn0wn-root/redimap/codec"
)

// Typed is an opt-in typed view over a Partition. Every value runs through
// a codec.Codec[V]; the encoded bytes become the partition's opaque text
// payload. The string API stays primary - Typed is a convenience for hosts
// that keep one value type per partition.
type Typed[V any] struct {
	pt *Partition
	c  codec.Codec[V]
}

func NewTyped[V any](pt *Partition, c codec.Codec[V]) Typed[V] {
	return Typed[V]{pt: pt, c: c}
}

func (t Typed[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, ok, err := t.pt.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := t.c.Decode([]byte(raw))
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func (t Typed[V]) Set(ctx context.Context, key string, v V) error {
	b, err := t.c.Encode(v)
	if err != nil {
		return err
	}
	return t.pt.Set(ctx, key, string(b))
}

// Entries decodes every present pair. A value that no longer decodes is an
// error, not a skip; typed callers asked for guarantees the opaque API
// does not give.
func (t Typed[V]) Entries(ctx context.Context) (map[string]V, error) {
	entries, err := t.pt.Entries(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]V, len(entries))
	for _, e := range entries {
		v, err := t.c.Decode([]byte(e.Value))
		if err != nil {
			return nil, err
		}
		out[e.Key] = v
	}
	return out, nil
}
