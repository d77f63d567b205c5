// Package metrics defines the custom Prometheus metrics for the timetrack
// API. It is the single source of truth for metric names, labels, and help
// strings; registration happens at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timetrack"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts accounts created via registration or by
// managers/admins.
// Label:
//   - role: the role of the created account
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// UsersDeletedTotal counts user deletions (each includes a timelog cascade).
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)

// TimelogsCreatedTotal counts created timelogs.
var TimelogsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timelogs_created_total",
		Help:      "Total number of timelogs created.",
	},
)

// TimelogsDeletedTotal counts individually deleted timelogs (cascade
// deletions are not included).
var TimelogsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timelogs_deleted_total",
		Help:      "Total number of timelogs deleted individually.",
	},
)

// ExportsTotal counts generated export documents.
// Label:
//   - mode: "self_only" or "full"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of export documents generated, by report mode.",
	},
	[]string{"mode"},
)
