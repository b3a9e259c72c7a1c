package redimap

import (
	"context"

	"github.com/unkn0wn-root/redimap/internal/util"
)

// Partition addresses one (keyspace, storage) mapping. All record and
// scan operations live here. A Partition implements View, which is what
// scan callbacks receive.
type Partition struct {
	p        *Provider
	keyspace string
	storage  string
}

var _ View = (*Partition)(nil)

func (pt *Partition) Keyspace() string { return pt.keyspace }
func (pt *Partition) Storage() string  { return pt.storage }

// Get returns the record for key. A missing record is ("", false, nil),
// never an error.
func (pt *Partition) Get(ctx context.Context, key string) (string, bool, error) {
	if err := pt.p.check(); err != nil {
		return "", false, err
	}
	v, ok, err := pt.p.st.Get(ctx, pt.keyspace, pt.storage, key)
	if err != nil {
		pt.p.hooks.StoreError("get", err)
	}
	return v, ok, err
}

// Set stores an opaque text record under key.
func (pt *Partition) Set(ctx context.Context, key, value string) error {
	if err := pt.p.check(); err != nil {
		return err
	}
	if err := pt.p.st.Set(ctx, pt.keyspace, pt.storage, key, value); err != nil {
		pt.p.hooks.StoreError("set", err)
		return err
	}
	return nil
}

// Delete removes one or more records in a single batched call and returns
// how many existed. Duplicate keys in the input count once.
func (pt *Partition) Delete(ctx context.Context, keys ...string) (int64, error) {
	if err := pt.p.check(); err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	n, err := pt.p.st.Del(ctx, pt.keyspace, pt.storage, util.Dedup(keys)...)
	if err != nil {
		pt.p.hooks.StoreError("del", err)
	}
	return n, err
}

// Has reports whether a record exists for key.
func (pt *Partition) Has(ctx context.Context, key string) (bool, error) {
	if err := pt.p.check(); err != nil {
		return false, err
	}
	ok, err := pt.p.st.Exists(ctx, pt.keyspace, pt.storage, key)
	if err != nil {
		pt.p.hooks.StoreError("exists", err)
	}
	return ok, err
}

// Size returns the number of keys currently enumerable in the partition.
func (pt *Partition) Size(ctx context.Context) (int, error) {
	keys, err := pt.enumerate(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// Keys enumerates the partition's record keys. Order is store-defined.
func (pt *Partition) Keys(ctx context.Context) ([]string, error) {
	return pt.enumerate(ctx)
}

// Values returns every present record value, fetched with one batched
// call regardless of the performance mode.
func (pt *Partition) Values(ctx context.Context) ([]string, error) {
	entries, err := pt.Entries(ctx)
	if err != nil || entries == nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out, nil
}

// Entries returns every present (key, value) pair, fetched with one
// batched call regardless of the performance mode.
func (pt *Partition) Entries(ctx context.Context) ([]Entry, error) {
	keys, err := pt.enumerate(ctx)
	if err != nil || len(keys) == 0 {
		return nil, err
	}
	return pt.fetchBatch(ctx, keys)
}

// Clear deletes every key in the partition with one batched call. It
// reports whether the partition had any keys to delete.
func (pt *Partition) Clear(ctx context.Context) (bool, error) {
	keys, err := pt.enumerate(ctx)
	if err != nil {
		return false, err
	}
	if len(keys) == 0 {
		return false, nil
	}
	n, err := pt.p.st.Del(ctx, pt.keyspace, pt.storage, keys...)
	if err != nil {
		pt.p.hooks.StoreError("del", err)
		return false, err
	}
	pt.p.hooks.PartitionCleared(pt.keyspace, pt.storage, n)
	pt.p.log.Debug("partition cleared", Fields{"keyspace": pt.keyspace, "storage": pt.storage, "removed": n})
	return true, nil
}
