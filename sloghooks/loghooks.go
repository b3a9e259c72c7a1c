package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/redimap"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all. Absent-skips fire once per
	// vanished key per scan, which adds up under heavy churn.
	AbsentSkipEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	absentCtr atomic.Uint64
}

var _ redimap.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) AbsentSkipped(keyspace, storage, key string) {
	if h.l == nil || !sample(h.opts.AbsentSkipEvery, &h.absentCtr) {
		return
	}
	h.l.Debug("redimap.absent_skipped",
		"keyspace", keyspace,
		"storage", storage,
		"key", h.redact(key))
}

func (h *Hooks) SweepApplied(keyspace, storage string, deleted int64) {
	if h.l == nil {
		return
	}
	h.l.Info("redimap.sweep_applied",
		"keyspace", keyspace,
		"storage", storage,
		"deleted", deleted)
}

func (h *Hooks) PartitionCleared(keyspace, storage string, removed int64) {
	if h.l == nil {
		return
	}
	h.l.Info("redimap.partition_cleared",
		"keyspace", keyspace,
		"storage", storage,
		"removed", removed)
}

func (h *Hooks) StoreError(op string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("redimap.store_error",
		"op", op,
		"err", err)
}
