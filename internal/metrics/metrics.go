// Package metrics holds the prometheus collectors for catalog traffic and
// for the API server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "catalogdash"

// Upstream tracks requests to the remote catalog, one observation per attempt.
type Upstream struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewUpstream(reg prometheus.Registerer) *Upstream {
	u := &Upstream{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "requests_total",
			Help:      "Requests sent to the catalog API by path and status code.",
		}, []string{"path", "code"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "request_duration_seconds",
			Help:      "Catalog API latency by path.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 40},
		}, []string{"path"}),
	}
	if reg != nil {
		reg.MustRegister(u.Requests, u.Duration)
	}
	return u
}

// HTTP tracks requests served by the API.
type HTTP struct {
	Duration *prometheus.HistogramVec
}

func NewHTTP(reg prometheus.Registerer) *HTTP {
	h := &HTTP{
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "API request latency by method, route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "code"}),
	}
	if reg != nil {
		reg.MustRegister(h.Duration)
	}
	return h
}
