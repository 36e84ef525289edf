// Package polling executa o ciclo de consulta: busca, extração, comparação, gravação e publicação
package polling

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/integrator/itmo"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/repository"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
	"github.com/vfg2006/itmo-rating-bot/internal/metrics"
	"github.com/vfg2006/itmo-rating-bot/internal/rating"
	"github.com/vfg2006/itmo-rating-bot/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type Poller interface {
	// RunCycle executa um ciclo completo e devolve o evento gerado. O evento só é
	// publicado para notificação quando algum contador mudou.
	RunCycle(ctx context.Context, trackedID string, trigger domain.PollTrigger) (*domain.PollEvent, error)
	Latest(ctx context.Context) (*domain.RatingSnapshot, error)
}

type Service struct {
	integrator   itmo.RatingIntegrator
	snapshotRepo repository.RatingSnapshotRepository
	metrics      *metrics.Metrics
	events       chan domain.PollEvent
	newRunID     func() (string, error)
	// cycleMutex serializa comparação e gravação: dois ciclos nunca comparam com a mesma base
	cycleMutex sync.Mutex
}

func NewService(
	integrator itmo.RatingIntegrator,
	snapshotRepo repository.RatingSnapshotRepository,
	m *metrics.Metrics,
	cfg *config.Config,
) *Service {
	return &Service{
		integrator:   integrator,
		snapshotRepo: snapshotRepo,
		metrics:      m,
		events:       make(chan domain.PollEvent, cfg.RatingPoll.EventBuffer),
		newRunID:     utils.GenerateRunID,
	}
}

// Events é consumido pelo despachante de notificações
func (s *Service) Events() <-chan domain.PollEvent {
	return s.events
}

func (s *Service) RunCycle(ctx context.Context, trackedID string, trigger domain.PollTrigger) (*domain.PollEvent, error) {
	runID, err := s.newRunID()
	if err != nil {
		logrus.WithError(err).Warn("Erro ao gerar ID do ciclo")
	}

	logger := logrus.WithFields(logrus.Fields{
		"run_id":     runID,
		"trigger":    trigger,
		"tracked_id": trackedID,
	})

	snapshot, err := s.integrator.FetchSnapshot(ctx, trackedID)
	if err != nil {
		s.metrics.ObservePoll(trigger, metrics.OutcomeFetchFailed)
		logger.WithError(err).Error("Erro ao buscar página de ranking, ciclo descartado")
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	snapshot.RunID = runID

	changes, err := s.compareAndAppend(ctx, &snapshot)
	if err != nil {
		s.metrics.ObservePoll(trigger, metrics.OutcomeStoreFailed)
		logger.WithError(err).Error("Erro ao gravar snapshot")
		return nil, err
	}

	s.metrics.ObserveSnapshot(snapshot)

	event := domain.PollEvent{
		RunID:    runID,
		Trigger:  trigger,
		Snapshot: snapshot,
		Changes:  changes,
	}

	logger = logger.WithFields(logrus.Fields{
		"total_people":          snapshot.TotalPeople,
		"contract_count":        snapshot.ContractCount,
		"contract_paid_count":   snapshot.ContractPaidCount,
		"contract_unpaid_count": snapshot.ContractUnpaidCount,
		"changes":               len(changes),
	})

	if changes.IsEmpty() {
		s.metrics.ObservePoll(trigger, metrics.OutcomeUnchanged)
		logger.Info("Ciclo de consulta concluído sem mudanças")
		return &event, nil
	}

	s.metrics.ObservePoll(trigger, metrics.OutcomeChanged)
	logger.Info("Ciclo de consulta detectou mudanças")

	s.publish(ctx, event)

	return &event, nil
}

// compareAndAppend compara com a última base gravada e grava o snapshot. A gravação
// acontece sempre, com ou sem mudança.
func (s *Service) compareAndAppend(ctx context.Context, snapshot *domain.RatingSnapshot) (domain.ChangeSet, error) {
	s.cycleMutex.Lock()
	defer s.cycleMutex.Unlock()

	previous, err := s.snapshotRepo.LastCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	changes := rating.Diff(previous, *snapshot)

	if err := s.snapshotRepo.Append(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreAppend, err)
	}

	return changes, nil
}

func (s *Service) publish(ctx context.Context, event domain.PollEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
		logrus.WithField("run_id", event.RunID).Warn("Contexto encerrado antes de publicar o evento de mudança")
	}
}

func (s *Service) Latest(ctx context.Context) (*domain.RatingSnapshot, error) {
	snapshot, err := s.snapshotRepo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	return snapshot, nil
}
