// Package metrics defines and registers all custom Prometheus metrics for the
// AIQB preorder API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry on import; the router exposes
// them at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "preorder"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersSubmittedTotal counts successfully submitted preorders.
// Label:
//   - payment_method: "cod", "esewa", "khalti", …
var OrdersSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total number of preorders accepted, by payment method.",
	},
	[]string{"payment_method"},
)

// ValidationFailuresTotal counts submissions rejected by form validation.
// Label:
//   - field: the first field that failed ("phone", "email", …)
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of submissions rejected, by first failing field.",
	},
	[]string{"field"},
)

// RemoteWriteFailuresTotal counts best-effort remote backend writes that
// failed and degraded to local-only persistence.
// Label:
//   - operation: "create_order", "reconcile"
var RemoteWriteFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_write_failures_total",
		Help:      "Total number of failed remote backend writes, by operation.",
	},
	[]string{"operation"},
)

// ── Reconciler metrics ────────────────────────────────────────────────────────

// OrdersReconciledTotal counts reconciliation outcomes.
// Label:
//   - result: "synced", "already_remote", "failed", "skipped_inflight"
var OrdersReconciledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_reconciled_total",
		Help:      "Total number of reconciliation attempts, by result.",
	},
	[]string{"result"},
)

// ReconcileQueueDepth tracks the current number of orders waiting in each
// reconciler worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReconcileQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reconcile_queue_depth",
		Help:      "Current number of orders pending in each reconciler worker channel.",
	},
	[]string{"worker_id"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// ToastsEmittedTotal counts toasts pushed to clients.
// Label:
//   - kind: "success", "error", "warning", "info"
var ToastsEmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "toasts_emitted_total",
		Help:      "Total number of toast notifications emitted, by kind.",
	},
	[]string{"kind"},
)
