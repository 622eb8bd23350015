// Package metrics provides Prometheus metrics for the quotation services
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog search metrics
	CatalogSearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotation_catalog_searches_total",
			Help: "Total number of price catalog searches",
		},
		[]string{"status"},
	)

	CatalogSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quotation_catalog_search_duration_seconds",
			Help:    "Time taken to answer a price catalog search",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quotation_catalog_candidates",
			Help:    "Number of candidates returned per search",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	// Persistence metrics
	QuotationsSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotation_saves_total",
			Help: "Total number of quotation save attempts",
		},
		[]string{"status"},
	)

	QuotationItemsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quotation_items_saved_total",
			Help: "Total number of line items persisted",
		},
	)

	SaveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quotation_save_duration_seconds",
			Help:    "Time taken to persist a quotation",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Export metrics
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotation_exports_total",
			Help: "Total number of quotation exports",
		},
		[]string{"format", "status"},
	)
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordSearch records one catalog search.
func RecordSearch(candidates int, duration time.Duration, err error) {
	CatalogSearchesTotal.WithLabelValues(status(err)).Inc()
	CatalogSearchDuration.Observe(duration.Seconds())
	if err == nil {
		CatalogCandidates.Observe(float64(candidates))
	}
}

// RecordSave records one quotation save.
func RecordSave(items int, duration time.Duration, err error) {
	QuotationsSavedTotal.WithLabelValues(status(err)).Inc()
	SaveDuration.Observe(duration.Seconds())
	if err == nil {
		QuotationItemsSaved.Add(float64(items))
	}
}

// RecordExport records one document export.
func RecordExport(format string, err error) {
	ExportsTotal.WithLabelValues(format, status(err)).Inc()
}
