package hfinference

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelsprite/news-sentiment-service/internal/observability"
)

func testClient(endpoint, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		endpoint:   endpoint,
		token:      token,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_ClassifyText_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req classifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Traffic flows smoothly on the new bypass", req.Inputs)

		out := [][]scoredLabel{{
			{Label: "POSITIVE", Score: 0.91},
			{Label: "NEGATIVE", Score: 0.09},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(out))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")
	pred, err := c.ClassifyText(context.Background(), "Traffic flows smoothly on the new bypass")
	require.NoError(t, err)

	assert.Equal(t, "POSITIVE", pred.Label)
	assert.Equal(t, 0.91, pred.Confidence)
}

func TestClient_ClassifyText_PicksHighestScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		out := [][]scoredLabel{{
			{Label: "POSITIVE", Score: 0.12},
			{Label: "NEGATIVE", Score: 0.88},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(out))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")
	pred, err := c.ClassifyText(context.Background(), "some text")
	require.NoError(t, err)

	assert.Equal(t, "NEGATIVE", pred.Label)
	assert.Equal(t, 0.88, pred.Confidence)
}

func TestClient_ClassifyText_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hf-test-token", r.Header.Get("Authorization"))
		out := [][]scoredLabel{{{Label: "POSITIVE", Score: 0.9}}}
		require.NoError(t, json.NewEncoder(w).Encode(out))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "hf-test-token")
	_, err := c.ClassifyText(context.Background(), "some text")
	require.NoError(t, err)
}

func TestClient_ClassifyText_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		out := [][]scoredLabel{{{Label: "POSITIVE", Score: 0.9}}}
		require.NoError(t, json.NewEncoder(w).Encode(out))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")
	_, err := c.ClassifyText(context.Background(), "some text")
	require.NoError(t, err)
}

func TestClient_ClassifyText_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"model loading"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")
	_, err := c.ClassifyText(context.Background(), "some text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_ClassifyText_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode([][]scoredLabel{}))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")
	_, err := c.ClassifyText(context.Background(), "some text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty classifier response")
}

func TestClient_ClassifyText_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{
		httpClient: &http.Client{Timeout: 50 * time.Millisecond},
		endpoint:   srv.URL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, err := c.ClassifyText(context.Background(), "some text")
	require.Error(t, err)
}
