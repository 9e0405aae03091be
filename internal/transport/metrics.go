package transport

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	clientRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ollamakit",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total number of requests sent to the model server",
		},
		[]string{"endpoint", "method", "status"},
	)
	clientRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ollamakit",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Time until the model server answered (headers for streams)",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)
	streamFragmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ollamakit",
			Subsystem: "client",
			Name:      "stream_fragments_total",
			Help:      "Text fragments yielded from streaming responses",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(clientRequestsTotal, clientRequestDuration, streamFragmentsTotal)
}

func observeRequest(endpoint, method, status string, dur time.Duration) {
	clientRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	clientRequestDuration.WithLabelValues(endpoint, method, status).Observe(dur.Seconds())
}

// CountFragment records one yielded stream fragment for endpoint.
func CountFragment(endpoint string) {
	streamFragmentsTotal.WithLabelValues(endpoint).Inc()
}
