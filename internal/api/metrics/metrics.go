// Package metrics defines the custom Prometheus metrics of the QC portal. It
// is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto and exposed by the echoprometheus handler on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "qc"

// ── Record metrics ────────────────────────────────────────────────────────────

// TestRecordsCreatedTotal counts created test records.
// Label:
//   - status: the derived pass/fail status ("Pass", "Fail", "Pending Review")
var TestRecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "test_records_created_total",
		Help:      "Total number of test records created, by derived status.",
	},
	[]string{"status"},
)

// TestRecordsUpdatedTotal counts successful record updates.
var TestRecordsUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "test_records_updated_total",
		Help:      "Total number of test record updates.",
	},
)

// SignaturesTotal counts signing attempts.
// Label:
//   - result: "signed", "rejected" (credential or policy), or "error"
var SignaturesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signatures_total",
		Help:      "Total number of electronic signature attempts, by result.",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditWriteFailuresTotal counts audit appends that failed after their
// mutation and were handed to the reconciler.
// Label:
//   - action: audit verb (e.g. "CREATE", "SIGN")
var AuditWriteFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of audit writes that failed after a successful mutation.",
	},
	[]string{"action"},
)

// AuditReconcileTotal counts reconciliation outcomes.
// Label:
//   - result: "written", "failed", or "dropped" (queue full)
var AuditReconcileTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_reconcile_total",
		Help:      "Total number of audit reconciliation outcomes.",
	},
	[]string{"result"},
)

// AuditReconcileQueueDepth tracks the entries waiting in each reconciler worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditReconcileQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_reconcile_queue_depth",
		Help:      "Current number of audit entries pending in each reconciler worker.",
	},
	[]string{"worker_id"},
)

// SignatureDuration measures the signing protocol end to end, including the
// deliberately slow credential check.
var SignatureDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "signature_duration_seconds",
		Help:      "Duration of the electronic signature protocol.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
