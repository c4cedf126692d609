package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instruments for the viewer. Each Server owns
// its own registry so tests can build servers side by side without duplicate
// registration panics.
type metrics struct {
	registry *prometheus.Registry

	pages          *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
	upstreamErrors *prometheus.CounterVec
	proxyDenied    prometheus.Counter
	duration       *prometheus.HistogramVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		pages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tokview",
			Name:      "pages_total",
			Help:      "Entity pages served, by resource kind.",
		}, []string{"kind"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tokview",
			Name:      "fallbacks_total",
			Help:      "Pages served with a fallback entity because extraction or resolution missed.",
		}, []string{"kind"}),
		upstreamErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tokview",
			Name:      "upstream_errors_total",
			Help:      "Upstream fetch failures, by resource kind.",
		}, []string{"kind"}),
		proxyDenied: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tokview",
			Name:      "proxy_denied_total",
			Help:      "Media proxy requests rejected by the CDN allow-list.",
		}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tokview",
			Name:      "request_duration_seconds",
			Help:      "Wall time spent handling entity page requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
}
