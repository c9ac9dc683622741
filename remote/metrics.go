package remote

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts backend requests by resource, method and status code.
// A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics registers the client collectors with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webark",
			Subsystem: "remote",
			Name:      "requests_total",
			Help:      "Requests sent to the content backend.",
		}, []string{"resource", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "webark",
			Subsystem: "remote",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests sent to the content backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "method"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(resource, method string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(resource, method, statusLabel(code)).Inc()
	m.latency.WithLabelValues(resource, method).Observe(d.Seconds())
}
