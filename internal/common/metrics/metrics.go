// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of backend requests issued",
		},
		[]string{"backend", "operation"},
	)

	GatewayRequestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_request_failures_total",
			Help: "Total number of failed backend requests by error kind",
		},
		[]string{"backend", "operation", "kind"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gateway_request_duration_seconds",
			Help: "Duration of backend requests in seconds",
		},
		[]string{"backend", "operation"},
	)

	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Total number of chat turns by outcome",
		},
		[]string{"backend", "outcome"},
	)
)
