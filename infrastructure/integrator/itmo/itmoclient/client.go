package itmoclient

import (
	"context"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
)

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

type Client interface {
	GetRatingPage(ctx context.Context) (*goquery.Document, error)
}

type ITMOClient struct {
	httpClient *http.Client
	config     config.Rating
	backOff    func() backoff.BackOff
}

// NewClient cria o cliente HTTP da página de ranking
func NewClient(cfg *config.Config) Client {
	return &ITMOClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Rating.RequestTimeoutSeconds) * time.Second,
		},
		config:  cfg.Rating,
		backOff: newBackOff,
	}
}
