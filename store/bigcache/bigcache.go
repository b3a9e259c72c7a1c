// Package bigcache backs a redimap store with an in-process bigcache
// instance. State is not shared across processes (Shared reports false);
// it exists for single-instance deployments and tests that want real
// eviction pressure without a redis.
//
// bigcache has no pattern scan and no multi-get, so Keys walks the entry
// iterator and MGet degrades to one lookup per key inside the process.
package bigcache

import (
	"context"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/redimap/keycodec"
	"github.com/unkn0wn-root/redimap/store"
)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited

	// Prefix is an optional global key prefix segment.
	Prefix string
	// Sep overrides the key field separator (default ":").
	Sep string
}

// Store implements store.Store over an embedded bigcache.
type Store struct {
	c     *bc.BigCache
	codec keycodec.Flat
}

var _ store.Store = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c, codec: keycodec.Flat{Prefix: cfg.Prefix, Sep: cfg.Sep}}, nil
}

// Connect is a no-op; the cache is ready once constructed.
func (s *Store) Connect(context.Context) error { return nil }

func (s *Store) Shared() bool { return false }

func (s *Store) Get(_ context.Context, keyspace, storage, key string) (string, bool, error) {
	k, err := s.codec.Encode(keyspace, storage, key)
	if err != nil {
		return "", false, err
	}
	b, err := s.c.Get(k)
	if err == bc.ErrEntryNotFound {
		return "", false, nil // miss
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (s *Store) Set(_ context.Context, keyspace, storage, key, value string) error {
	k, err := s.codec.Encode(keyspace, storage, key)
	if err != nil {
		return err
	}
	return s.c.Set(k, []byte(value))
}

func (s *Store) Del(_ context.Context, keyspace, storage string, keys ...string) (int64, error) {
	var n int64
	for _, key := range keys {
		k, err := s.codec.Encode(keyspace, storage, key)
		if err != nil {
			return n, err
		}
		switch err := s.c.Delete(k); err {
		case nil:
			n++
		case bc.ErrEntryNotFound:
			// already gone
		default:
			return n, err
		}
	}
	return n, nil
}

func (s *Store) Exists(ctx context.Context, keyspace, storage, key string) (bool, error) {
	_, ok, err := s.Get(ctx, keyspace, storage, key)
	return ok, err
}

// Keys walks every cache entry and keeps the ones decoding into this
// partition. Linear in the cache size; bigcache offers nothing narrower.
func (s *Store) Keys(_ context.Context, keyspace, storage string) ([]string, error) {
	var out []string
	it := s.c.Iterator()
	for it.SetNext() {
		info, err := it.Value()
		if err != nil {
			continue // entry evicted mid-iteration
		}
		ks, st, key, err := s.codec.Decode(info.Key())
		if err != nil || ks != keyspace || st != storage {
			continue
		}
		out = append(out, key)
	}
	return out, nil
}

func (s *Store) MGet(ctx context.Context, keyspace, storage string, keys []string) ([]*string, error) {
	out := make([]*string, len(keys))
	for i, key := range keys {
		v, ok, err := s.Get(ctx, keyspace, storage, key)
		if err != nil {
			return nil, err
		}
		if ok {
			vv := v
			out[i] = &vv
		}
	}
	return out, nil
}

func (s *Store) Close(context.Context) error {
	return s.c.Close()
}
