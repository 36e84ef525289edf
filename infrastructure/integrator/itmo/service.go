// Package itmo integra a página pública de ranking do ITMO
package itmo

import (
	"context"

	"github.com/vfg2006/itmo-rating-bot/infrastructure/integrator/itmo/itmoclient"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
	"github.com/vfg2006/itmo-rating-bot/internal/rating"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type RatingIntegrator interface {
	// FetchSnapshot baixa a página e extrai o snapshot. Erro somente quando a busca falha;
	// uma página fora do layout esperado gera um snapshot zerado.
	FetchSnapshot(ctx context.Context, trackedID string) (domain.RatingSnapshot, error)
}

type ITMOService struct {
	Client    itmoclient.Client
	extractor *rating.Extractor
}

func New(cfg *config.Config, client itmoclient.Client) RatingIntegrator {
	markers := rating.Markers{
		EntryClass:     cfg.Rating.EntryClass,
		PositionClass:  cfg.Rating.PositionClass,
		ContractMarker: cfg.Rating.ContractMarker,
		PaidClass:      cfg.Rating.PaidClass,
		UnpaidClass:    cfg.Rating.UnpaidClass,
	}

	return &ITMOService{
		Client:    client,
		extractor: rating.NewExtractor(markers, rating.Now),
	}
}

func (s *ITMOService) FetchSnapshot(ctx context.Context, trackedID string) (domain.RatingSnapshot, error) {
	doc, err := s.Client.GetRatingPage(ctx)
	if err != nil {
		return domain.RatingSnapshot{}, err
	}

	return s.extractor.Extract(doc, trackedID), nil
}
