// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Predictions counts Predict calls by outcome ("exact", "fallback" or
	// an engine error code).
	Predictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weddingplanner_predictions_total",
			Help: "Total number of theme predictions by outcome",
		},
		[]string{"outcome"},
	)

	// PredictLatency measures Predict latency, snapshot loading included.
	PredictLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weddingplanner_predict_latency_seconds",
			Help:    "Theme prediction latency in seconds",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.25},
		},
	)

	// PredictionConfidence records the confidence of successful predictions.
	PredictionConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weddingplanner_prediction_confidence",
			Help:    "Confidence score of successful predictions",
			Buckets: []float64{0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 0.99, 1},
		},
	)

	// SnapshotRebuilds counts rule snapshot rebuilds by result.
	SnapshotRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weddingplanner_snapshot_rebuilds_total",
			Help: "Total number of rule snapshot rebuilds",
		},
		[]string{"result"},
	)

	// SnapshotBuildDuration measures how long loading and indexing the rule tables takes.
	SnapshotBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weddingplanner_snapshot_build_seconds",
			Help:    "Rule snapshot build duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	// SnapshotRules exposes the rule count of the current snapshot.
	SnapshotRules = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "weddingplanner_snapshot_rules",
			Help: "Number of colour rules in the current snapshot",
		},
	)

	// SuggestCache counts response cache lookups by result ("hit" or "miss").
	SuggestCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weddingplanner_suggest_cache_total",
			Help: "Suggestion response cache lookups",
		},
		[]string{"result"},
	)

	// Invalidations counts rule-table invalidation broadcasts by direction.
	Invalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weddingplanner_invalidations_total",
			Help: "Rule table invalidation messages published or received",
		},
		[]string{"direction"},
	)

	// RateLimited counts requests rejected by the per-client rate limiter.
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weddingplanner_rate_limited_total",
			Help: "Requests rejected with 429 by the rate limiter",
		},
	)
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
