// Package metrics defines and registers all custom Prometheus metrics for
// the commerce API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "commerce"

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutSessionsTotal counts hosted checkout sessions opened.
// Label:
//   - discounted: "true" when a coupon was applied, else "false"
var CheckoutSessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_sessions_total",
		Help:      "Total number of hosted checkout sessions created.",
	},
	[]string{"discounted"},
)

// OrdersReconciledTotal counts reconciliation outcomes.
// Label:
//   - result: "created", "duplicate", or "error"
var OrdersReconciledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_reconciled_total",
		Help:      "Total number of checkout reconciliations, by result.",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected credentials at the session boundary.
// Label:
//   - reason: "missing_token", "invalid_token", or "bad_login"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authentication failures, by reason.",
	},
	[]string{"reason"},
)
