package redimap

import (
	"context"
	"sync/atomic"

	"github.com/unkn0wn-root/redimap/store"
)

// Provider is a mapping-of-mappings cache over one store backend. It owns
// the backend connection; Namespace triples and records have no lifecycle
// of their own beyond the backend's persistence (nothing is cached
// locally).
type Provider struct {
	st    store.Store
	log   Logger
	hooks Hooks

	compat Compat
	mode   atomic.Uint32
	ready  atomic.Bool
}

// Init establishes the store connection. It must be called before any
// record or scan operation; a dead backend fails here, not silently later.
// No retry or reconnection happens at this layer.
func (p *Provider) Init(ctx context.Context) error {
	if err := p.st.Connect(ctx); err != nil {
		p.hooks.StoreError("connect", err)
		return err
	}
	p.ready.Store(true)
	p.log.Info("store connected", Fields{"shared": p.st.Shared(), "mode": p.Mode().String()})
	return nil
}

// Close releases the store connection.
func (p *Provider) Close(ctx context.Context) error {
	return p.st.Close(ctx)
}

// Capabilities reports the provider's static capability descriptor.
func (p *Provider) Capabilities() Capabilities {
	return Capabilities{Compat: p.compat, SharedCache: p.st.Shared()}
}

// Mode returns the current performance mode.
func (p *Provider) Mode() Mode { return Mode(p.mode.Load()) }

// SetMode switches the scan fetch strategy at runtime. Scans already in
// flight keep the mode they sampled at their first round-trip.
func (p *Provider) SetMode(m Mode) { p.mode.Store(uint32(m)) }

// Partition returns the handle for one (keyspace, storage) partition.
// Handles are cheap; they carry no state beyond the address.
func (p *Provider) Partition(keyspace, storage string) *Partition {
	return &Partition{p: p, keyspace: keyspace, storage: storage}
}

func (p *Provider) check() error {
	if !p.ready.Load() {
		return ErrNotInitialized
	}
	return nil
}
