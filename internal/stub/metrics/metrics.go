// Package metrics defines the stub server's Prometheus metrics. It is
// the single source of truth for metric names, labels, and help strings.
//
// Call MustRegister once per registry before the server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "infocast"

// BroadcastsCreatedTotal counts created broadcasts.
// Label:
//   - type: the broadcast type (e.g. "announcement")
var BroadcastsCreatedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcasts_created_total",
		Help:      "Total number of broadcasts created, by type.",
	},
	[]string{"type"},
)

// BroadcastsDeletedTotal counts deleted broadcasts.
var BroadcastsDeletedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcasts_deleted_total",
		Help:      "Total number of broadcasts deleted.",
	},
)

// BroadcastViewsTotal counts single-broadcast fetches (each bumps the
// view counter).
var BroadcastViewsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_views_total",
		Help:      "Total number of broadcast detail views served.",
	},
)

// AuthFailuresTotal counts rejected authentications.
// Label:
//   - reason: short failure description (e.g. "invalid_token")
var AuthFailuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// MustRegister registers every metric with the given registry.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		BroadcastsCreatedTotal,
		BroadcastsDeletedTotal,
		BroadcastViewsTotal,
		AuthFailuresTotal,
	)
}
