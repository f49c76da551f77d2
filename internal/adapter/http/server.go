// Package http exposes the news query endpoint plus health, readiness, and
// metrics routes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/travelsprite/news-sentiment-service/internal/domain"
)

// NewsService answers location news queries.
type NewsService interface {
	FetchLocationNews(ctx context.Context, query domain.LocationQuery) ([]domain.NewsItem, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// QueryDefaults are applied when the caller omits the optional parameters.
type QueryDefaults struct {
	LookbackDays int
	MaxResults   int
}

// Server exposes the news API and operational HTTP endpoints.
type Server struct {
	httpServer *http.Server
	news       NewsService
	defaults   QueryDefaults
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /news, /healthz, /readyz, and
// /metrics routes.
func NewServer(addr string, news NewsService, ready ReadinessChecker, defaults QueryDefaults, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		news:     news,
		defaults: defaults,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /news", s.handleNews)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// apiResponse is the envelope returned on every API route: data holds the
// payload on success and the error message otherwise.
type apiResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, apiResponse{Status: "success", Data: "Welcome to News Sentiment API"})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseNewsQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Status: "error", Data: err.Error()})
		return
	}

	items, err := s.news.FetchLocationNews(r.Context(), query)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrMissingLocation) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, apiResponse{Status: "error", Data: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{Status: "success", Data: items})
}

// parseNewsQuery maps query parameters onto a LocationQuery, applying the
// configured defaults for days and count.
func (s *Server) parseNewsQuery(r *http.Request) (domain.LocationQuery, error) {
	q := r.URL.Query()

	query := domain.LocationQuery{
		Location:     q.Get("location"),
		LookbackDays: s.defaults.LookbackDays,
		MaxResults:   s.defaults.MaxResults,
	}

	if v := q.Get("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.LocationQuery{}, errors.New("invalid lat: must be a number")
		}
		query.Lat = &lat
	}
	if v := q.Get("lon"); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.LocationQuery{}, errors.New("invalid lon: must be a number")
		}
		query.Lon = &lon
	}
	if v := q.Get("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return domain.LocationQuery{}, errors.New("invalid days: must be a non-negative integer")
		}
		query.LookbackDays = days
	}
	if v := q.Get("count"); v != "" {
		count, err := strconv.Atoi(v)
		if err != nil || count < 0 {
			return domain.LocationQuery{}, errors.New("invalid count: must be a non-negative integer")
		}
		query.MaxResults = count
	}

	return query, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
