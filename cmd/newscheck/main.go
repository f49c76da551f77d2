// Command newscheck runs one location news query against the real
// upstreams and prints the classified items. Useful for verifying the
// resolve → fetch → classify path end to end without standing up the
// server.
//
// Usage:
//
//	go run ./cmd/newscheck -location Goa
//	go run ./cmd/newscheck -lat 15.2993 -lon 74.1240 -days 3 -count 10
//	go run ./cmd/newscheck -location Manali -json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/travelsprite/news-sentiment-service/internal/adapter/googlenews"
	"github.com/travelsprite/news-sentiment-service/internal/adapter/hfinference"
	"github.com/travelsprite/news-sentiment-service/internal/adapter/nominatim"
	"github.com/travelsprite/news-sentiment-service/internal/config"
	"github.com/travelsprite/news-sentiment-service/internal/domain"
	"github.com/travelsprite/news-sentiment-service/internal/observability"
	"github.com/travelsprite/news-sentiment-service/internal/pipeline"
)

func main() {
	location := flag.String("location", "", "location name, e.g. Goa")
	lat := flag.Float64("lat", 0, "latitude (used with -lon when -location is empty)")
	lon := flag.Float64("lon", 0, "longitude (used with -lat when -location is empty)")
	days := flag.Int("days", 2, "lookback window in days")
	count := flag.Int("count", 5, "maximum number of items")
	asJSON := flag.Bool("json", false, "print raw JSON instead of a table")
	flag.Parse()

	if code := run(*location, *lat, *lon, *days, *count, *asJSON); code != 0 {
		os.Exit(code)
	}
}

func run(location string, lat, lon float64, days, count int, asJSON bool) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	geoClient := nominatim.NewClient(cfg.NominatimURL, cfg.GeocodeUserAgent, cfg.NominatimTimeout, metrics, logger)
	geocoder := nominatim.NewCachedGeocoder(geoClient, cfg.GeocodeCacheSize, metrics)
	feeds := googlenews.NewClient(cfg.FeedBaseURL, cfg.FeedLang, cfg.FeedCountry, cfg.FeedEdition, cfg.FeedTimeout, metrics, logger)
	classifier := hfinference.NewClient(cfg.SentimentAPIURL, cfg.SentimentAPIToken, cfg.SentimentTimeout, metrics, logger)

	p := pipeline.New(geocoder, feeds, feeds, classifier, clockwork.NewRealClock(), logger, metrics)

	query := domain.LocationQuery{
		Location:     location,
		LookbackDays: days,
		MaxResults:   count,
	}
	if location == "" {
		query.Lat = &lat
		query.Lon = &lon
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	items, err := p.FetchLocationNews(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: encode items: %v\n", err)
			return 1
		}
		return 0
	}

	if len(items) == 0 {
		fmt.Println("no news found")
		return 0
	}

	for i, item := range items {
		published := "unknown"
		if item.Published != nil {
			published = item.Published.Format(time.RFC3339)
		}
		fmt.Printf("%d. [%s %.3f/%s] %s\n   %s (%s)\n",
			i+1, item.Sentiment, item.Score, item.Source, item.Headline, item.Link, published)
	}
	return 0
}
