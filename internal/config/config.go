package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Nominatim reverse-geocoding configuration.
	GeocodeEnabled   bool
	NominatimURL     string
	NominatimTimeout time.Duration
	GeocodeUserAgent string
	GeocodeCacheSize int

	// Google News feed configuration.
	FeedBaseURL string
	FeedTimeout time.Duration
	FeedLang    string // hl parameter
	FeedCountry string // gl parameter
	FeedEdition string // ceid parameter

	// Sentiment model API configuration.
	SentimentAPIURL   string
	SentimentAPIToken string
	SentimentTimeout  time.Duration

	// Query defaults applied by the HTTP boundary when params are omitted.
	DefaultLookbackDays int
	DefaultMaxResults   int
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	nominatimTimeout, err := parsePositiveDuration("NOMINATIM_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	feedTimeout, err := parsePositiveDuration("FEED_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	sentimentTimeout, err := parsePositiveDuration("SENTIMENT_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	lookbackDays, err := parseNonNegativeInt("DEFAULT_LOOKBACK_DAYS", 2)
	if err != nil {
		return nil, err
	}
	maxResults, err := parseNonNegativeInt("DEFAULT_MAX_RESULTS", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GeocodeEnabled:   envOrDefault("GEOCODE_ENABLED", "true") == "true",
		NominatimURL:     envOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimTimeout: nominatimTimeout,
		GeocodeUserAgent: envOrDefault("GEOCODE_USER_AGENT", "news_fetcher"),
		GeocodeCacheSize: parseGeocodeCacheSize(),

		FeedBaseURL: envOrDefault("FEED_BASE_URL", "https://news.google.com/rss/search"),
		FeedTimeout: feedTimeout,
		FeedLang:    envOrDefault("FEED_LANG", "en-IN"),
		FeedCountry: envOrDefault("FEED_COUNTRY", "IN"),
		FeedEdition: envOrDefault("FEED_EDITION", "IN:en"),

		SentimentAPIURL:   envOrDefault("SENTIMENT_API_URL", "https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"),
		SentimentAPIToken: os.Getenv("SENTIMENT_API_TOKEN"),
		SentimentTimeout:  sentimentTimeout,

		DefaultLookbackDays: lookbackDays,
		DefaultMaxResults:   maxResults,
	}

	if cfg.FeedBaseURL == "" {
		return nil, errors.New("FEED_BASE_URL is required")
	}
	if cfg.SentimentAPIURL == "" {
		return nil, errors.New("SENTIMENT_API_URL is required")
	}
	if cfg.GeocodeEnabled && cfg.NominatimURL == "" {
		return nil, errors.New("GEOCODE_ENABLED is true but NOMINATIM_URL is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseNonNegativeInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseGeocodeCacheSize() int {
	if s := os.Getenv("GEOCODE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
