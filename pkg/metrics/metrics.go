// Package metrics collects Prometheus metrics for a single lookup run. A CLI
// process is too short-lived to be scraped, so the registry is written out in
// the node_exporter textfile format when a path is configured.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Lookup outcomes recorded by ObserveLookup.
const (
	OutcomeSuccess    = "success"
	OutcomeNotFound   = "not_found"
	OutcomeHTTPError  = "http_error"
	OutcomeIncomplete = "incomplete"
	OutcomeError      = "error"
)

// Metrics owns a private registry so nothing leaks into the global one.
type Metrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	lookups         *prometheus.CounterVec
	lookupDuration  prometheus.Histogram
}

// New creates and registers the lookup metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scorecard",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of requests sent to the rating provider.",
			Buckets:   DefaultBuckets,
		}, []string{"code", "method"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scorecard",
			Name:      "lookups_total",
			Help:      "Number of domain lookups by outcome.",
		}, []string{"outcome"}),
		lookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scorecard",
			Name:      "lookup_duration_seconds",
			Help:      "End-to-end duration of a domain lookup.",
			Buckets:   DefaultBuckets,
		}),
	}
	m.registry.MustRegister(m.requestDuration, m.lookups, m.lookupDuration)

	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// InstrumentRoundTripper wraps next so every upstream request is timed.
func (m *Metrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return promhttp.InstrumentRoundTripperDuration(m.requestDuration, next)
}

// ObserveLookup records one finished lookup.
func (m *Metrics) ObserveLookup(outcome string, took time.Duration) {
	m.lookups.WithLabelValues(outcome).Inc()
	m.lookupDuration.Observe(took.Seconds())
}

// WriteTextfile atomically writes all collected metrics to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("could not write metrics textfile: %w", err)
	}

	return nil
}
