// Package metrics collects Prometheus metrics for Canvas API traffic and
// tool dispatch. A nil *Collector is valid and records nothing, so wiring
// stays optional.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	apiRequests  *prometheus.CounterVec
	apiDuration  *prometheus.HistogramVec
	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
}

// NewCollector registers the metric families on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		apiRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "canvas",
				Name:      "api_requests_total",
				Help:      "Total Canvas API requests by operation and status code",
			},
			[]string{"op", "code"},
		),
		apiDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "canvas",
				Name:      "api_request_duration_seconds",
				Help:      "Canvas API request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		toolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "canvas",
				Name:      "tool_calls_total",
				Help:      "Total tool invocations by tool and outcome",
			},
			[]string{"tool", "outcome"},
		),
		toolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "canvas",
				Name:      "tool_call_duration_seconds",
				Help:      "Tool invocation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
	}
}

// APIRequest records one Canvas API request. code is the HTTP status code,
// or "error" when no response arrived.
func (c *Collector) APIRequest(op, code string, d time.Duration) {
	if c == nil {
		return
	}
	c.apiRequests.WithLabelValues(op, code).Inc()
	c.apiDuration.WithLabelValues(op).Observe(d.Seconds())
}

// ToolCall records one tool dispatch. outcome is data, empty or failure.
func (c *Collector) ToolCall(tool, outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.toolCalls.WithLabelValues(tool, outcome).Inc()
	c.toolDuration.WithLabelValues(tool).Observe(d.Seconds())
}
