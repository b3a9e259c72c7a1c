package bigcache

import (
	"context"
	"sort"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{LifeWindow: 5 * time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestRoundTripAndPartitionIsolation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if s.Shared() {
		t.Fatalf("embedded store must not report shared state")
	}

	if err := s.Set(ctx, "user", "s1", "a", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "user", "s1", "b", "2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "user", "s2", "a", "other"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, ok, err := s.Get(ctx, "user", "s1", "a")
	if err != nil || !ok || v != "1" {
		t.Fatalf("Get: v=%q ok=%v err=%v", v, ok, err)
	}
	if _, ok, _ := s.Get(ctx, "user", "s1", "ghost"); ok {
		t.Fatalf("Get ghost should miss")
	}

	keys, err := s.Keys(ctx, "user", "s1")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Keys = %v, want [a b]", keys)
	}

	vals, err := s.MGet(ctx, "user", "s1", []string{"a", "ghost", "b"})
	if err != nil {
		t.Fatalf("MGet: %v", err)
	}
	if vals[0] == nil || *vals[0] != "1" || vals[1] != nil || vals[2] == nil || *vals[2] != "2" {
		t.Fatalf("MGet = %v", vals)
	}

	n, err := s.Del(ctx, "user", "s1", "a", "ghost")
	if err != nil || n != 1 {
		t.Fatalf("Del: n=%d err=%v", n, err)
	}
	if ok, _ := s.Exists(ctx, "user", "s1", "a"); ok {
		t.Fatalf("record survived delete")
	}
	// Sibling partition untouched.
	if v, ok, _ := s.Get(ctx, "user", "s2", "a"); !ok || v != "other" {
		t.Fatalf("sibling partition affected: v=%q ok=%v", v, ok)
	}
}
