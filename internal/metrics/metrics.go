package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ChatCompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_chat_completions_total",
			Help: "Total number of chat completion attempts by outcome.",
		},
		[]string{"outcome"},
	)

	ChatRateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_chat_rate_limited_total",
			Help: "Total number of chat requests rejected by the local rate limit.",
		},
	)

	UpstreamRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_upstream_request_duration_seconds",
			Help:    "Completion service call duration in seconds.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ChatCompletionsTotal,
		ChatRateLimitedTotal,
		UpstreamRequestDuration,
	)
}
