// Package metrics exposes the engine's runtime counters as Prometheus
// collectors: buffer pool hit/miss/occupancy/wait-timeout counts, lock
// wait/timeout counts, transaction commit/rollback counts, and recovery
// undo counts.
// These are raw resource metrics, not a query cost model, so they stay
// in scope even though the spec's Non-goals exclude cost-based
// optimization (see SPEC_FULL.md §3).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector the engine updates directly, plus the
// prometheus.Registerer they're registered against.
type Registry struct {
	reg *prometheus.Registry

	BufferHits     prometheus.Counter
	BufferMisses   prometheus.Counter
	BufferPinned   prometheus.Gauge
	BufferWaits    prometheus.Counter
	BufferTimeouts prometheus.Counter
	LockWaits      prometheus.Counter
	LockTimeouts   prometheus.Counter
	TxCommits      prometheus.Counter
	TxRollbacks    prometheus.Counter
	RecoveryUndos  prometheus.Counter
}

// New creates a fresh registry with all collectors registered.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		BufferHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quilldb_buffer_hits_total",
			Help: "Pin requests satisfied by an already-bound buffer.",
		}),
		BufferMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quilldb_buffer_misses_total",
			Help: "Pin requests that required rebinding a buffer slot.",
		}),
		BufferPinned: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quilldb_buffer_pinned",
			Help: "Buffers in the pool currently pinned by at least one transaction.",
		}),
		BufferWaits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quilldb_buffer_waits_total",
			Help: "Pin requests that had to wait for a buffer slot to free up.",
		}),
		BufferTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quilldb_buffer_timeouts_total",
			Help: "Pin requests that aborted after exceeding the buffer wait timeout.",
		}),
		LockWaits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quilldb_lock_waits_total",
			Help: "Lock requests that had to wait for a conflicting holder.",
		}),
		LockTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quilldb_lock_timeouts_total",
			Help: "Lock requests that aborted after exceeding the wait timeout.",
		}),
		TxCommits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quilldb_tx_commits_total",
			Help: "Transactions that committed.",
		}),
		TxRollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quilldb_tx_rollbacks_total",
			Help: "Transactions that rolled back.",
		}),
		RecoveryUndos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quilldb_recovery_undo_records_total",
			Help: "SETINT/SETSTRING log records undone during rollback or restart recovery.",
		}),
	}

	reg.MustRegister(
		r.BufferHits, r.BufferMisses, r.BufferPinned,
		r.BufferWaits, r.BufferTimeouts,
		r.LockWaits, r.LockTimeouts,
		r.TxCommits, r.TxRollbacks, r.RecoveryUndos,
	)
	return r
}

// Handler returns the HTTP handler that serves this registry's metrics in
// the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Noop returns a fresh registry built exactly as New builds it, for use
// by components constructed without a metrics listener (tests).
func Noop() *Registry {
	return New()
}
