package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Skip reasons recorded on BrandsSkipped
const (
	SkipNoProducts   = "no_products"
	SkipNoAnchors    = "no_anchor_categories"
	SkipNoCandidates = "no_candidates"
	SkipNoResolved   = "no_resolved_brands"
)

var (
	BrandsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "related_brands_brands_processed_total",
			Help: "Total number of brands visited by the artifact builder",
		},
	)

	BrandsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "related_brands_brands_skipped_total",
			Help: "Total number of brands omitted from the artifact, by reason",
		},
		[]string{"reason"},
	)

	BrandsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "related_brands_brands_written_total",
			Help: "Total number of brands recorded in the artifact",
		},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "related_brands_upstream_requests_total",
			Help: "Total number of catalog API requests by endpoint and status code",
		},
		[]string{"endpoint", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "related_brands_upstream_request_duration_seconds",
			Help:    "Duration of catalog API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	RunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "related_brands_last_run_duration_seconds",
			Help: "Duration of the last artifact build in seconds",
		},
	)

	LastRunSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "related_brands_last_run_success_timestamp_seconds",
			Help: "Unix time of the last successful artifact build",
		},
	)
)

// WriteTextfile dumps the default registry for the node_exporter textfile collector
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
