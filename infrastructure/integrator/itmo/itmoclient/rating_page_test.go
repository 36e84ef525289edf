package itmoclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
)

const samplePage = `<html><body>
<div class="RatingPage_table__item__qMY0F"><p class="RatingPage_table__position__uYWvi">№ <span>1</span></p></div>
</body></html>`

func newTestClient(url string, retries int) *ITMOClient {
	cfg := &config.Config{
		Rating: config.Rating{
			URL:                   url,
			UserAgent:             "rating-bot-test",
			RequestTimeoutSeconds: 5,
			FetchRetries:          retries,
		},
	}

	client := NewClient(cfg).(*ITMOClient)
	client.backOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return client
}

func TestITMOClient_GetRatingPage(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	doc, err := newTestClient(server.URL, 0).GetRatingPage(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "rating-bot-test", userAgent)
	assert.Equal(t, 1, doc.Find(".RatingPage_table__item__qMY0F").Length())
}

func TestITMOClient_GetRatingPage_Errors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		retries       int
		expectedCalls int32
	}{
		{name: "404 não é repetido", status: http.StatusNotFound, retries: 3, expectedCalls: 1},
		{name: "503 sem retentativas", status: http.StatusServiceUnavailable, retries: 0, expectedCalls: 1},
		{name: "503 com retentativas", status: http.StatusServiceUnavailable, retries: 2, expectedCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			doc, err := newTestClient(server.URL, tt.retries).GetRatingPage(context.Background())
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, ErrUnexpectedStatus)
			assert.Equal(t, tt.expectedCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestITMOClient_GetRatingPage_RecoversAfterRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	doc, err := newTestClient(server.URL, 1).GetRatingPage(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestITMOClient_GetRatingPage_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	doc, err := newTestClient(url, 0).GetRatingPage(context.Background())
	assert.Nil(t, doc)
	assert.Error(t, err)
}

func TestITMOClient_GetRatingPage_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc, err := newTestClient(server.URL, 3).GetRatingPage(ctx)
	assert.Nil(t, doc)
	assert.Error(t, err)
}
