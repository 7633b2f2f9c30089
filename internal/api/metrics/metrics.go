// Package metrics defines and registers all custom Prometheus metrics for
// the Click Shop API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at init; the /metrics route is
// wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clickshop"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - role: the role claim of the resulting session ("none" when unresolved)
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by resolved role and result.",
	},
	[]string{"role", "result"},
)

// StaffChallengesTotal counts staff access-code challenge events.
// Label:
//   - result: "opened", "verified", "rejected"
var StaffChallengesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "staff_challenges_total",
		Help:      "Total number of staff access-code challenge events, by result.",
	},
	[]string{"result"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// StockAdjustmentsTotal counts stock delta requests.
// Label:
//   - result: "applied", "rejected" (insufficient stock), "error"
var StockAdjustmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_adjustments_total",
		Help:      "Total number of stock adjustment requests, by result.",
	},
	[]string{"result"},
)

// SearchAssistsTotal counts search-assist requests.
// Label:
//   - result: "hit" (products matched), "miss", "error"
var SearchAssistsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_assists_total",
		Help:      "Total number of search-assist requests, by result.",
	},
	[]string{"result"},
)

// SearchAssistDuration measures the full search-assist round trip including
// the external suggestion call.
var SearchAssistDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_assist_duration_seconds",
		Help:      "Duration of search-assist requests end-to-end.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrderStatusUpdatesTotal counts status changes applied to orders.
// Label:
//   - status: the status the order was moved to
var OrderStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_updates_total",
		Help:      "Total number of order status updates, by target status.",
	},
	[]string{"status"},
)
