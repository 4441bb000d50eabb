package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Load results used as the "result" label.
const (
	ResultOK            = "ok"
	ResultRetrieval     = "retrieval_error"
	ResultMalformed     = "malformed"
	ResultInvalidWindow = "invalid_window"
	ResultError         = "error"
)

// Metrics holds the Prometheus collectors for pipeline loads.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	LoadsTotal   *prometheus.CounterVec
	LoadDuration prometheus.Histogram
	Bars         prometheus.Gauge
	LastSuccess  prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		LoadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trendlens_loads_total",
			Help: "Pipeline loads by result",
		}, []string{"result"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trendlens_load_duration_seconds",
			Help:    "Wall time of a full load (fetch, parse, indicators)",
			Buckets: prometheus.DefBuckets,
		}),
		Bars: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trendlens_bars",
			Help: "Bars in the latest successful load",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trendlens_last_success_timestamp_seconds",
			Help: "Unix time of the latest successful load",
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.LoadsTotal, m.LoadDuration, m.Bars, m.LastSuccess)
	return m
}

// ObserveLoad records the outcome of one load.
func (m *Metrics) ObserveLoad(result string, d time.Duration, bars int) {
	if m == nil {
		return
	}
	m.LoadsTotal.WithLabelValues(result).Inc()
	m.LoadDuration.Observe(d.Seconds())
	if result == ResultOK {
		m.Bars.Set(float64(bars))
		m.LastSuccess.Set(float64(time.Now().Unix()))
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
