package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the bankdomain service host. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	// Parse results by error kind ("valid" on success)
	ParseOutcome *prometheus.CounterVec

	// Batch check latency
	BatchLatency prometheus.Histogram

	// Catalog reloads by result: "ok", "error"
	CatalogReloads *prometheus.CounterVec

	// Banks in the catalog currently served
	CatalogBanks prometheus.Gauge
}

// New registers all service metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ParseOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bankdomain_parse_outcomes_total",
			Help: "Total parsed account numbers by outcome kind",
		}, []string{"kind"}),

		BatchLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankdomain_batch_duration_seconds",
			Help:    "Duration of batch account number checks",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),

		CatalogReloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bankdomain_catalog_reloads_total",
			Help: "Total catalog reload attempts by result",
		}, []string{"result"}),

		CatalogBanks: f.NewGauge(prometheus.GaugeOpts{
			Name: "bankdomain_catalog_banks",
			Help: "Number of banks in the active catalog",
		}),
	}
}

// IncrementOutcome records one parse result.
func (m *Metrics) IncrementOutcome(kind string) {
	if m != nil {
		m.ParseOutcome.WithLabelValues(kind).Inc()
	}
}

// ObserveBatchLatency records the duration of one batch check.
func (m *Metrics) ObserveBatchLatency(d time.Duration) {
	if m != nil {
		m.BatchLatency.Observe(d.Seconds())
	}
}

// IncrementReload records a catalog reload attempt.
func (m *Metrics) IncrementReload(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.CatalogReloads.WithLabelValues(result).Inc()
}

// SetCatalogBanks records the size of the active catalog.
func (m *Metrics) SetCatalogBanks(n int) {
	if m != nil {
		m.CatalogBanks.Set(float64(n))
	}
}
