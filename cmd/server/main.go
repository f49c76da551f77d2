package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/travelsprite/news-sentiment-service/internal/adapter/googlenews"
	"github.com/travelsprite/news-sentiment-service/internal/adapter/hfinference"
	httpadapter "github.com/travelsprite/news-sentiment-service/internal/adapter/http"
	"github.com/travelsprite/news-sentiment-service/internal/adapter/nominatim"
	"github.com/travelsprite/news-sentiment-service/internal/config"
	"github.com/travelsprite/news-sentiment-service/internal/domain"
	"github.com/travelsprite/news-sentiment-service/internal/observability"
	"github.com/travelsprite/news-sentiment-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Reverse geocoding is feature-flagged; without it, coordinate queries
	// resolve to the fallback place name.
	var geocoder domain.Geocoder
	if cfg.GeocodeEnabled {
		client := nominatim.NewClient(cfg.NominatimURL, cfg.GeocodeUserAgent, cfg.NominatimTimeout, metrics, logger)
		geocoder = nominatim.NewCachedGeocoder(client, cfg.GeocodeCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("reverse geocoding enabled", "cache_size", cfg.GeocodeCacheSize, "timeout", cfg.NominatimTimeout)
	} else {
		logger.Info("reverse geocoding disabled, coordinate queries resolve to fallback place")
	}

	feeds := googlenews.NewClient(cfg.FeedBaseURL, cfg.FeedLang, cfg.FeedCountry, cfg.FeedEdition, cfg.FeedTimeout, metrics, logger)
	classifier := hfinference.NewClient(cfg.SentimentAPIURL, cfg.SentimentAPIToken, cfg.SentimentTimeout, metrics, logger)

	p := pipeline.New(geocoder, feeds, feeds, classifier, clockwork.NewRealClock(), logger, metrics)

	defaults := httpadapter.QueryDefaults{
		LookbackDays: cfg.DefaultLookbackDays,
		MaxResults:   cfg.DefaultMaxResults,
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, defaults, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
