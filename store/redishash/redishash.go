// Package redishash backs a redimap store with one redis hash per
// (keyspace, storage) partition. Record keys are hash fields, so member
// enumeration is HKEYS on a single key instead of a pattern scan, and a
// partition never spans cluster slots.
package redishash

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/redimap/keycodec"
	"github.com/unkn0wn-root/redimap/store"
)

var ErrNoClient = errors.New("redishash: no client and no addresses configured")

type Config struct {
	// Client is an existing go-redis client. When nil, one is built from
	// the connection parameters below.
	Client      goredis.UniversalClient
	CloseClient bool

	// Connection parameters, used when Client is nil.
	Addrs    []string
	Username string
	Password string
	DB       int
	Cluster  bool

	// Prefix is an optional global key prefix segment.
	Prefix string
	// Sep overrides the key field separator (default ":").
	Sep string
}

// Store implements store.Store over redis hashes.
type Store struct {
	rdb         goredis.UniversalClient
	codec       keycodec.Hash
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
		uo := &goredis.UniversalOptions{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
		if cfg.Cluster {
			rdb = goredis.NewClusterClient(uo.Cluster())
		} else {
			rdb = goredis.NewUniversalClient(uo)
		}
		closeClient = true
	}
	return &Store{
		rdb:         rdb,
		codec:       keycodec.Hash{Prefix: cfg.Prefix, Sep: cfg.Sep},
		closeClient: closeClient,
	}, nil
}

func (s *Store) Connect(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Shared() bool { return true }

func (s *Store) Get(ctx context.Context, keyspace, storage, key string) (string, bool, error) {
	pk, err := s.partition(keyspace, storage, key)
	if err != nil {
		return "", false, err
	}
	v, err := s.rdb.HGet(ctx, pk, key).Result()
	if err == goredis.Nil {
		return "", false, nil // miss
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, keyspace, storage, key, value string) error {
	pk, err := s.partition(keyspace, storage, key)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, pk, key, value).Err()
}

func (s *Store) Del(ctx context.Context, keyspace, storage string, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	pk, err := s.codec.PartitionKey(keyspace, storage)
	if err != nil {
		return 0, err
	}
	for _, key := range keys {
		if err := s.codec.ValidateKey(key); err != nil {
			return 0, err
		}
	}
	return s.rdb.HDel(ctx, pk, keys...).Result()
}

func (s *Store) Exists(ctx context.Context, keyspace, storage, key string) (bool, error) {
	pk, err := s.partition(keyspace, storage, key)
	if err != nil {
		return false, err
	}
	return s.rdb.HExists(ctx, pk, key).Result()
}

// Keys lists the partition's hash fields. No decoding is needed; fields
// are the logical keys themselves.
func (s *Store) Keys(ctx context.Context, keyspace, storage string) ([]string, error) {
	pk, err := s.codec.PartitionKey(keyspace, storage)
	if err != nil {
		return nil, err
	}
	return s.rdb.HKeys(ctx, pk).Result()
}

func (s *Store) MGet(ctx context.Context, keyspace, storage string, keys []string) ([]*string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	pk, err := s.codec.PartitionKey(keyspace, storage)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		if err := s.codec.ValidateKey(key); err != nil {
			return nil, err
		}
	}
	vals, err := s.rdb.HMGet(ctx, pk, keys...).Result()
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

func (s *Store) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

func (s *Store) partition(keyspace, storage, key string) (string, error) {
	pk, err := s.codec.PartitionKey(keyspace, storage)
	if err != nil {
		return "", err
	}
	if err := s.codec.ValidateKey(key); err != nil {
		return "", err
	}
	return pk, nil
}
