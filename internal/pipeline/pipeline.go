// Package pipeline orchestrates one location-news query: resolve the
// location, build the feed query, fetch, filter by recency, classify each
// headline, and assemble the bounded result list.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/travelsprite/news-sentiment-service/internal/domain"
	"github.com/travelsprite/news-sentiment-service/internal/observability"
)

// QueryBuilder turns a resolved location into a search query and feed URL.
type QueryBuilder interface {
	BuildQuery(location string) (query, feedURL string)
}

// FeedFetcher retrieves entries from a feed URL in feed order.
type FeedFetcher interface {
	FetchFeed(ctx context.Context, feedURL string) ([]domain.RawEntry, error)
}

// Pipeline wires the location resolver, query builder, feed fetcher, and
// sentiment classifier into one synchronous fetch-and-classify procedure.
// It holds no mutable state between calls.
type Pipeline struct {
	geocoder   domain.Geocoder
	queries    QueryBuilder
	feeds      FeedFetcher
	classifier domain.TextClassifier
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Pipeline with the given capabilities. geocoder may be nil,
// in which case coordinate queries resolve to the fallback place name.
func New(geocoder domain.Geocoder, queries QueryBuilder, feeds FeedFetcher, classifier domain.TextClassifier, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		geocoder:   geocoder,
		queries:    queries,
		feeds:      feeds,
		classifier: classifier,
		clock:      clock,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once the sentiment model capability is wired.
// The service answers with degraded (fallback) classifications without it,
// so it is treated as a readiness failure rather than a hard error.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.classifier == nil {
		return errors.New("sentiment model capability is not loaded")
	}
	return nil
}

// FetchLocationNews runs one query. The only error it returns is
// domain.ErrMissingLocation; every upstream failure degrades to a
// documented fallback value instead.
func (p *Pipeline) FetchLocationNews(ctx context.Context, query domain.LocationQuery) ([]domain.NewsItem, error) {
	start := time.Now()

	if err := query.Validate(); err != nil {
		p.metrics.RequestsTotal.WithLabelValues("invalid_input").Inc()
		return nil, err
	}

	location := query.Location
	if location == "" && query.HasCoordinates() {
		location = domain.ResolvePlace(ctx, *query.Lat, *query.Lon, p.geocoder, p.logger)
	}

	items := p.collectItems(ctx, location, query)

	p.metrics.RequestsTotal.WithLabelValues("success").Inc()
	p.metrics.RequestDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("news query served",
		"location", location,
		"lookback_days", query.LookbackDays,
		"items", len(items),
	)
	return items, nil
}

// collectItems fetches, filters, and classifies entries until MaxResults
// items are assembled. Feed order is preserved; nothing beyond the bound
// is classified.
func (p *Pipeline) collectItems(ctx context.Context, location string, query domain.LocationQuery) []domain.NewsItem {
	items := []domain.NewsItem{}
	if query.MaxResults <= 0 {
		return items
	}

	searchQuery, feedURL := p.queries.BuildQuery(location)

	entries, err := p.feeds.FetchFeed(ctx, feedURL)
	if err != nil {
		// A failed or malformed feed is the same observable outcome as an
		// empty one: no news found.
		p.logger.Warn("feed fetch failed, returning empty result",
			"location", location,
			"query", searchQuery,
			"error", err,
		)
		return items
	}

	cutoff := p.clock.Now().UTC().Add(-time.Duration(query.LookbackDays) * 24 * time.Hour)

	for _, entry := range entries {
		// Entries without a parseable publish time are unknown-but-eligible.
		if entry.Published != nil && entry.Published.Before(cutoff) {
			continue
		}

		sentiment := domain.AnalyzeSentiment(ctx, entry.Title, p.classifier, p.logger)
		p.metrics.ItemsClassified.WithLabelValues(string(sentiment.Source)).Inc()

		items = append(items, domain.NewsItem{
			Headline:  entry.Title,
			Link:      entry.Link,
			Published: entry.Published,
			Sentiment: sentiment.Sentiment,
			Score:     domain.RoundScore(sentiment.Score),
			Source:    sentiment.Source,
		})
		if len(items) >= query.MaxResults {
			break
		}
	}
	return items
}
