// Package promhooks exports scan events as prometheus counters.
package promhooks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/unkn0wn-root/redimap"
)

type Hooks struct {
	absentSkipped *prometheus.CounterVec
	sweepDeleted  *prometheus.CounterVec
	cleared       *prometheus.CounterVec
	storeErrors   *prometheus.CounterVec
}

var _ redimap.Hooks = (*Hooks)(nil)

// New registers the counters with reg (DefaultRegisterer when nil).
func New(reg prometheus.Registerer) *Hooks {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Hooks{
		absentSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "redimap_scan_absent_skipped_total",
			Help: "Keys that vanished between enumeration and value fetch.",
		}, []string{"keyspace", "storage"}),
		sweepDeleted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "redimap_sweep_deleted_total",
			Help: "Records deleted by Sweep.",
		}, []string{"keyspace", "storage"}),
		cleared: f.NewCounterVec(prometheus.CounterOpts{
			Name: "redimap_partition_cleared_total",
			Help: "Records deleted by Clear.",
		}, []string{"keyspace", "storage"}),
		storeErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "redimap_store_errors_total",
			Help: "Primitive store calls that failed, by operation.",
		}, []string{"op"}),
	}
}

func (h *Hooks) AbsentSkipped(keyspace, storage, _ string) {
	h.absentSkipped.WithLabelValues(keyspace, storage).Inc()
}

func (h *Hooks) SweepApplied(keyspace, storage string, deleted int64) {
	h.sweepDeleted.WithLabelValues(keyspace, storage).Add(float64(deleted))
}

func (h *Hooks) PartitionCleared(keyspace, storage string, removed int64) {
	h.cleared.WithLabelValues(keyspace, storage).Add(float64(removed))
}

func (h *Hooks) StoreError(op string, _ error) {
	h.storeErrors.WithLabelValues(op).Inc()
}
