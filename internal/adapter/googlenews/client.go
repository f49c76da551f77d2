// Package googlenews builds search queries for and retrieves entries from
// the Google News RSS search endpoint.
package googlenews

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/travelsprite/news-sentiment-service/internal/domain"
	"github.com/travelsprite/news-sentiment-service/internal/observability"
)

// queryTopics is the fixed OR-expansion appended to every location query.
// It biases results toward travel-safety-relevant coverage of the place.
const queryTopics = "(road OR traffic OR weather OR rain OR storm OR heatwave OR cyclone OR flood OR tourist OR tourism OR temple OR beach OR monument OR travel)"

// Client builds feed URLs and fetches entries from a Google News RSS
// search endpoint with a fixed locale.
type Client struct {
	httpClient *http.Client
	baseURL    string
	lang       string // hl parameter
	country    string // gl parameter
	edition    string // ceid parameter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Google News RSS client. The locale parameters are
// fixed per deployment so language and region targeting stay consistent
// regardless of the queried location's own locale.
func NewClient(baseURL, lang, country, edition string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		lang:    lang,
		country: country,
		edition: edition,
		metrics: metrics,
		logger:  logger,
	}
}

// BuildQuery turns a resolved location into a search query and the feed
// URL that serves it.
func (c *Client) BuildQuery(location string) (string, string) {
	query := fmt.Sprintf("%s %s", location, queryTopics)

	params := url.Values{
		"q":    {query},
		"hl":   {c.lang},
		"gl":   {c.country},
		"ceid": {c.edition},
	}
	return query, c.baseURL + "?" + params.Encode()
}

// FetchFeed retrieves and parses the feed at feedURL. Entries come back in
// feed order with titles trimmed and publish times normalized to UTC;
// entries without a parseable publish time carry a nil Published.
func (c *Client) FetchFeed(ctx context.Context, feedURL string) ([]domain.RawEntry, error) {
	start := time.Now()

	fp := gofeed.NewParser()
	fp.Client = c.httpClient

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		c.metrics.FeedErrors.Inc()
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	c.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	c.metrics.FeedEntries.Observe(float64(len(feed.Items)))

	entries := make([]domain.RawEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		var published *time.Time
		if item.PublishedParsed != nil {
			t := item.PublishedParsed.UTC()
			published = &t
		}
		entries = append(entries, domain.RawEntry{
			Title:     strings.TrimSpace(item.Title),
			Link:      item.Link,
			Published: published,
		})
	}
	return entries, nil
}
