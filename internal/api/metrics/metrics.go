// Package metrics defines and registers all custom Prometheus metrics for the
// admin API. It is the single source of truth for metric names, labels, and
// help strings; request-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "adminapi"

// SignupsTotal counts sign-up attempts.
// Label:
//   - outcome: "ok" or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of sign-up attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SigninsTotal counts sign-in attempts.
// Label:
//   - outcome: "ok", "denied" (bad credentials), or "throttled"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ThemeUpdatesTotal counts theme configuration keys upserted by admins.
var ThemeUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "theme_updates_total",
		Help:      "Total number of theme configuration keys upserted.",
	},
)

// RoleMutationsTotal counts bulk role changes applied by admins.
// Labels:
//   - action: "assign" or "revoke"
//   - role: "admin" or "user"
var RoleMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_mutations_total",
		Help:      "Total number of role assignments and revocations applied.",
	},
	[]string{"action", "role"},
)

// UploadBytesTotal counts bytes accepted by the upload endpoints.
// Label:
//   - kind: "avatar" or "file"
var UploadBytesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_bytes_total",
		Help:      "Total bytes accepted by the upload endpoints, by kind.",
	},
	[]string{"kind"},
)
