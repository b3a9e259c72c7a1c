// Package redisflat backs a redimap store with one redis string key per
// record. The triple is concatenated into the key itself and partitions
// are enumerated with a KEYS pattern scan.
//
// This layout only works against a single redis instance. On a cluster
// the flat keys of one partition hash to different slots: KEYS runs on
// one arbitrary node and returns a subset, and MGET cannot cross slots.
// New rejects cluster configurations; cluster deployments use
// store/redishash, whose one-key-per-partition layout is slot-safe.
package redisflat

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/redimap/keycodec"
	"github.com/unkn0wn-root/redimap/store"
)

var (
	ErrNoClient = errors.New("redisflat: no client and no addresses configured")
	// ErrCluster rejects cluster topologies: the flat layout cannot be
	// enumerated correctly across slots. Use store/redishash instead.
	ErrCluster = errors.New("redisflat: cluster mode not supported, use store/redishash")
)

type Config struct {
	// Client is an existing go-redis client. When nil, one is built from
	// the connection parameters below. Passing a cluster client here is
	// the caller's mistake; see the package doc.
	Client goredis.UniversalClient
	// CloseClient releases the client on Close. Set it only if this store
	// exclusively owns the client. Clients built from Addrs are always
	// owned.
	CloseClient bool

	// Connection parameters, used when Client is nil. Exactly one address
	// (go-redis treats multiple addresses as a cluster; New rejects that).
	Addrs    []string
	Username string
	Password string
	DB       int

	// Prefix is an optional global key prefix segment.
	Prefix string
	// Sep overrides the key field separator (default ":").
	Sep string
}

// Store implements store.Store over flat redis string keys.
type Store struct {
	rdb         goredis.UniversalClient
	codec       keycodec.Flat
	closeClient bool
}

var _ store.Store = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	rdb := cfg.Client
	closeClient := cfg.CloseClient
	if rdb == nil {
		if len(cfg.Addrs) == 0 {
			return nil, ErrNoClient
		}
		if len(cfg.Addrs) > 1 {
			return nil, ErrCluster
		}
		rdb = goredis.NewUniversalClient(&goredis.UniversalOptions{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		closeClient = true
	}
	return &Store{
		rdb:         rdb,
		codec:       keycodec.Flat{Prefix: cfg.Prefix, Sep: cfg.Sep},
		closeClient: closeClient,
	}, nil
}

// Connect pings the server once. go-redis dials lazily; the ping makes a
// dead backend fail here instead of on the first record operation.
func (s *Store) Connect(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Shared() bool { return true }

func (s *Store) Get(ctx context.Context, keyspace, storage, key string) (string, bool, error) {
	k, err := s.codec.Encode(keyspace, storage, key)
	if err != nil {
		return "", false, err
	}
	v, err := s.rdb.Get(ctx, k).Result()
	if err == goredis.Nil {
		return "", false, nil // miss
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, keyspace, storage, key, value string) error {
	k, err := s.codec.Encode(keyspace, storage, key)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, k, value, 0).Err()
}

func (s *Store) Del(ctx context.Context, keyspace, storage string, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	flat := make([]string, len(keys))
	for i, key := range keys {
		k, err := s.codec.Encode(keyspace, storage, key)
		if err != nil {
			return 0, err
		}
		flat[i] = k
	}
	return s.rdb.Del(ctx, flat...).Result()
}

func (s *Store) Exists(ctx context.Context, keyspace, storage, key string) (bool, error) {
	k, err := s.codec.Encode(keyspace, storage, key)
	if err != nil {
		return false, err
	}
	n, err := s.rdb.Exists(ctx, k).Result()
	return n > 0, err
}

// Keys pattern-scans the partition prefix and decodes hits back to logical
// keys. Undecodable hits are foreign writes under our prefix; they are
// skipped rather than surfaced.
func (s *Store) Keys(ctx context.Context, keyspace, storage string) ([]string, error) {
	pattern, err := s.codec.Pattern(keyspace, storage)
	if err != nil {
		return nil, err
	}
	flat, err := s.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(flat))
	for _, fk := range flat {
		ks, st, key, err := s.codec.Decode(fk)
		if err != nil || ks != keyspace || st != storage {
			continue
		}
		out = append(out, key)
	}
	return out, nil
}

func (s *Store) MGet(ctx context.Context, keyspace, storage string, keys []string) ([]*string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	flat := make([]string, len(keys))
	for i, key := range keys {
		k, err := s.codec.Encode(keyspace, storage, key)
		if err != nil {
			return nil, err
		}
		flat[i] = k
	}
	vals, err := s.rdb.MGet(ctx, flat...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*string, len(keys))
	for i, v := range vals {
		switch vv := v.(type) {
		case nil:
			// absent slot
		case string:
			out[i] = &vv
		case []byte:
			str := string(vv)
			out[i] = &str
		default:
			str := fmt.Sprint(vv)
			out[i] = &str
		}
	}
	return out, nil
}

// Close releases the underlying client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Store) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
