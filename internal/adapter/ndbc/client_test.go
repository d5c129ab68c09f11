package ndbc

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/buoy-telemetry-service/internal/observability"
)

func newTestClient(baseURL string) *Client {
	return NewClient(
		baseURL,
		time.Second, time.Second,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetricsForTesting(),
	)
}

func TestFetchCurrentHour(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("#STN  YY MM DD hh mm ATMP\n44025 24 03 05 13 00 12.5\n"))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL).FetchCurrentHour(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "/data/hourly2/hour_07.txt", gotPath)
	assert.Contains(t, body, "44025")
}

func TestFetchStationHistory(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("#YY  MM DD hh mm WTMP\n2024 03 05 13 00 8.5\n"))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL).FetchStationHistory(context.Background(), "44025")
	require.NoError(t, err)
	assert.Equal(t, "/data/realtime2/44025.txt", gotPath)
	assert.Contains(t, body, "WTMP")
}

func TestFetch_Non200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchCurrentHour(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetch_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	for i := 0; i < 5; i++ {
		_, err := client.FetchCurrentHour(context.Background(), 7)
		require.Error(t, err)
	}

	// Breaker is now open; the request fails without reaching the server.
	_, err := client.FetchCurrentHour(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}

func TestFetch_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).FetchCurrentHour(ctx, 7)
	require.Error(t, err)
}
