// Package prom implements the observability hook interfaces with Prometheus
// collectors.
//
// Register the collector once at startup:
//
//	m := prom.New(prometheus.DefaultRegisterer)
//	m.Install()
//
// Every metric is prefixed with "evekit_".
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/evekit/pkg/errors"
	"github.com/matzehuels/evekit/pkg/observability"
)

// Metrics collects dispatch, HTTP, cache and key-load metrics.
// It is safe for concurrent use.
type Metrics struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	dispatchInFlight prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	keyLoads *prometheus.CounterVec
}

var (
	_ observability.DispatchHooks = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.KeyHooks      = (*Metrics)(nil)
)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		dispatchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evekit_dispatch_total",
			Help: "Total number of dispatches by outcome code",
		}, []string{"code"}),
		dispatchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "evekit_dispatch_duration_seconds",
			Help:    "Duration of dispatches in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"code"}),
		dispatchInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "evekit_dispatch_in_flight",
			Help: "Number of dispatches currently running",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evekit_http_requests_total",
			Help: "Total number of HTTP responses by host and status",
		}, []string{"method", "host", "status_code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "evekit_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "host"}),
		httpErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evekit_http_errors_total",
			Help: "Total number of HTTP requests that failed without a response",
		}, []string{"method", "host"}),
		cacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evekit_cache_hits_total",
			Help: "Total number of cache hits",
		}, []string{"key_type"}),
		cacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evekit_cache_misses_total",
			Help: "Total number of cache misses",
		}, []string{"key_type"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evekit_cache_written_bytes_total",
			Help: "Total number of bytes written to the cache",
		}, []string{"key_type"}),
		keyLoads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evekit_key_loads_total",
			Help: "Total number of remote key-info loads by outcome",
		}, []string{"outcome"}),
	}
}

// Install registers m as the global dispatch, HTTP, cache and key hooks.
func (m *Metrics) Install() {
	observability.SetDispatchHooks(m)
	observability.SetHTTPHooks(m)
	observability.SetCacheHooks(m)
	observability.SetKeyHooks(m)
}

func (m *Metrics) OnDispatchStart(context.Context, string, string) {
	m.dispatchInFlight.Inc()
}

func (m *Metrics) OnDispatchComplete(_ context.Context, _, _ string, d time.Duration, err error) {
	m.dispatchInFlight.Dec()
	code := outcomeCode(err)
	m.dispatchTotal.WithLabelValues(code).Inc()
	m.dispatchDuration.WithLabelValues(code).Observe(d.Seconds())
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, host, _ string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, host, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, host).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, host, _ string, _ error) {
	m.httpErrors.WithLabelValues(method, host).Inc()
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheHits.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheMisses.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnKeyLoad(_ context.Context, _ int64, valid bool, _ time.Duration, err error) {
	outcome := "valid"
	switch {
	case err != nil:
		outcome = "error"
	case !valid:
		outcome = "rejected"
	}
	m.keyLoads.WithLabelValues(outcome).Inc()
}

func outcomeCode(err error) string {
	if err == nil {
		return "ok"
	}
	if code := errors.GetCode(err); code != "" {
		return string(code)
	}
	return string(errors.ErrCodeUnexpected)
}
