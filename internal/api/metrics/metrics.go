// Package metrics defines and registers all custom Prometheus metrics for
// the fishmart gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fishgate"

// AuthAttemptsTotal counts credential exchanges against the backend.
// Labels:
//   - kind: "login", "signup", or "rider_login"
//   - result: "ok", "rejected", or "unavailable"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of credential exchanges, by kind and result.",
	},
	[]string{"kind", "result"},
)

// SessionResolutionsTotal counts boot-time credential resolutions.
// Label:
//   - outcome: "anonymous", "authenticated", or "unavailable". A stored
//     token the backend refuses resolves as "anonymous".
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session credential resolutions, by outcome.",
	},
	[]string{"outcome"},
)

// GateDecisionsTotal counts access gate evaluations.
// Label:
//   - decision: "allow", "redirect_login", "redirect_home", or "defer"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions, by decision.",
	},
	[]string{"decision"},
)

// LoginRateLimitedTotal counts auth requests refused by the rate limiter.
var LoginRateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_rate_limited_total",
		Help:      "Total number of auth requests rejected by the rate limiter.",
	},
)
