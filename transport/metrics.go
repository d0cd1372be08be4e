package transport

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// signMetrics tracks signing outcomes and latency. A nil *signMetrics is
// a no-op so the RoundTripper works without a registerer.
type signMetrics struct {
	signs    *prometheus.CounterVec
	duration prometheus.Histogram
}

func newSignMetrics(reg prometheus.Registerer) *signMetrics {
	m := &signMetrics{
		signs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "authv4",
			Subsystem: "transport",
			Name:      "sign_requests_total",
			Help:      "Total number of outbound requests signed, partitioned by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "authv4",
			Subsystem: "transport",
			Name:      "sign_duration_seconds",
			Help:      "Histogram of time spent producing request signatures.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.signs, m.duration)
	return m
}

func (m *signMetrics) observe(err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.signs.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}
