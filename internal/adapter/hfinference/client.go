// Package hfinference implements the pretrained sentiment model capability
// as a client of a HuggingFace-style text-classification inference API.
package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/travelsprite/news-sentiment-service/internal/domain"
	"github.com/travelsprite/news-sentiment-service/internal/observability"
)

// Client implements domain.TextClassifier over HTTP. The model behind the
// endpoint is treated as opaque: it returns a binary label and a
// confidence score, nothing more is assumed.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string // optional bearer token
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an inference API client for the configured model
// endpoint.
func NewClient(endpoint, token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint: endpoint,
		token:    token,
		metrics:  metrics,
		logger:   logger,
	}
}

// ClassifyText sends text to the inference endpoint and returns the
// highest-scored label.
func (c *Client) ClassifyText(ctx context.Context, text string) (domain.Prediction, error) {
	start := time.Now()

	pred, err := c.doRequest(ctx, text)
	if err != nil {
		c.metrics.ClassifierRequests.WithLabelValues("error").Inc()
		return domain.Prediction{}, err
	}

	c.metrics.ClassifierRequests.WithLabelValues("success").Inc()
	c.metrics.ClassifierAPIDuration.Observe(time.Since(start).Seconds())
	return pred, nil
}

func (c *Client) doRequest(ctx context.Context, text string) (domain.Prediction, error) {
	body, err := json.Marshal(classifyRequest{Inputs: text})
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("classify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return domain.Prediction{}, fmt.Errorf("inference API error: status %d: %s", resp.StatusCode, respBody)
	}

	// Text-classification endpoints return one candidate list per input:
	// [[{"label":"POSITIVE","score":0.99},{"label":"NEGATIVE","score":0.01}]]
	var out [][]scoredLabel
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Prediction{}, fmt.Errorf("decode response: %w", err)
	}
	if len(out) == 0 || len(out[0]) == 0 {
		return domain.Prediction{}, errors.New("empty classifier response")
	}

	best := out[0][0]
	for _, candidate := range out[0][1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}
	return domain.Prediction{Label: best.Label, Confidence: best.Score}, nil
}

// Inference API request/response types.

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

type scoredLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
