package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// news sentiment service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec // labels: outcome={success,invalid_input}
	RequestDuration prometheus.Histogram

	// Classification metrics.
	ItemsClassified *prometheus.CounterVec // labels: source={rule,transformer,fallback,empty}

	// Feed retrieval metrics.
	FeedFetchDuration prometheus.Histogram
	FeedEntries       prometheus.Histogram
	FeedErrors        prometheus.Counter

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeEnabled  prometheus.Gauge

	// Sentiment model API metrics.
	ClassifierRequests    *prometheus.CounterVec // labels: outcome={success,error}
	ClassifierAPIDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news_sentiment",
			Name:      "requests_total",
			Help:      "News queries by outcome.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "news_sentiment",
			Name:      "request_duration_seconds",
			Help:      "Duration of a complete resolve-fetch-classify cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		ItemsClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news_sentiment",
			Name:      "items_classified_total",
			Help:      "Classified headlines by classification source.",
		}, []string{"source"}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "news_sentiment",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Feed retrieval and parse duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FeedEntries: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "news_sentiment",
			Name:      "feed_entries",
			Help:      "Number of entries returned per feed fetch.",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		}),
		FeedErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "news_sentiment",
			Name:      "feed_errors_total",
			Help:      "Feed fetches that failed and degraded to an empty result.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news_sentiment",
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news_sentiment",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "news_sentiment",
			Name:      "geocode_enabled",
			Help:      "1 when reverse geocoding is enabled, 0 otherwise.",
		}),
		ClassifierRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news_sentiment",
			Name:      "classifier_requests_total",
			Help:      "Sentiment model API requests by outcome.",
		}, []string{"outcome"}),
		ClassifierAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "news_sentiment",
			Name:      "classifier_api_duration_seconds",
			Help:      "Sentiment model API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ItemsClassified,
		m.FeedFetchDuration,
		m.FeedEntries,
		m.FeedErrors,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeEnabled,
		m.ClassifierRequests,
		m.ClassifierAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsTotal:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "news_sentiment", Name: "requests_total"}, []string{"outcome"}),
		RequestDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "news_sentiment", Name: "request_duration_seconds"}),
		ItemsClassified:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "news_sentiment", Name: "items_classified_total"}, []string{"source"}),
		FeedFetchDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "news_sentiment", Name: "feed_fetch_duration_seconds"}),
		FeedEntries:           prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "news_sentiment", Name: "feed_entries"}),
		FeedErrors:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "news_sentiment", Name: "feed_errors_total"}),
		GeocodeRequests:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "news_sentiment", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "news_sentiment", Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeEnabled:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "news_sentiment", Name: "geocode_enabled"}),
		ClassifierRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "news_sentiment", Name: "classifier_requests_total"}, []string{"outcome"}),
		ClassifierAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "news_sentiment", Name: "classifier_api_duration_seconds"}),
	}
}
