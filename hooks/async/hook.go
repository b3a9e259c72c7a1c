// Package asynchook decouples hook sinks from the provider's hot paths.
// Events are handed to a bounded queue and delivered by worker goroutines;
// when the queue is full the event is dropped rather than blocking a scan.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    AbsentSkipEvery: 10, // sample: ~every 10th absent-skip
//	})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	provider, _ := redimap.New(redimap.Options{
//	    Store: st,
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/redimap"
)

type Hooks struct {
	inner redimap.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ redimap.Hooks = (*Hooks)(nil)

func New(inner redimap.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) AbsentSkipped(ks, st, key string) {
	h.try(func() { h.inner.AbsentSkipped(ks, st, key) })
}
func (h *Hooks) SweepApplied(ks, st string, deleted int64) {
	h.try(func() { h.inner.SweepApplied(ks, st, deleted) })
}
func (h *Hooks) PartitionCleared(ks, st string, removed int64) {
	h.try(func() { h.inner.PartitionCleared(ks, st, removed) })
}
func (h *Hooks) StoreError(op string, err error) {
	h.try(func() { h.inner.StoreError(op, err) })
}
