package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const outcomeAuthorized = "authorized"

// authDecisions counts every authentication decision.
// Labels:
//   - group: caller-supplied x-group-name (normalized)
//   - outcome: "authorized", "missing_credentials", "invalid_key", "invalid_group"
var authDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_decisions_total",
		Help: "Total number of authentication decisions by group and outcome",
	},
	[]string{"group", "outcome"},
)
