// Package scheduler contém os serviços de agendamento da consulta ao ranking
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
	"github.com/vfg2006/itmo-rating-bot/internal/rating"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/polling"
)

type RatingPollConfig struct {
	CronSchedule string
	SyncEnabled  bool
	RunOnStart   bool
	TrackedID    string
	// CycleTimeout limita um ciclo agendado (busca com retentativas, gravação e publicação)
	CycleTimeout time.Duration
}

type RatingPollService struct {
	scheduler           *gocron.Scheduler
	poller              polling.Poller
	config              RatingPollConfig
	syncRunning         bool
	// syncMutex também protege ctx
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
	ctx                 context.Context
}

func NewRatingPollService(poller polling.Poller, cfg *config.Config) *RatingPollService {
	pollConfig := RatingPollConfig{
		CronSchedule: cfg.RatingPoll.CronSchedule, // Default: a cada 2 horas
		SyncEnabled:  cfg.RatingPoll.Enabled,
		RunOnStart:   cfg.RatingPoll.RunOnStart,
		TrackedID:    cfg.Rating.TrackedID,
		CycleTimeout: cycleTimeout(cfg.Rating),
	}

	// o horário do cron segue o fuso do ranking, não o da máquina
	scheduler := gocron.NewScheduler(rating.Location)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": pollConfig.CronSchedule,
		"run_on_start":  pollConfig.RunOnStart,
	}).Info("Configuração do agendador de consulta ao ranking carregada")

	return &RatingPollService{
		scheduler: scheduler,
		poller:    poller,
		config:    pollConfig,
		ctx:       context.Background(),
	}
}

// cycleTimeout cobre todas as tentativas de busca mais uma folga para gravação
func cycleTimeout(cfg config.Rating) time.Duration {
	attempts := cfg.FetchRetries + 1
	return time.Duration(cfg.RequestTimeoutSeconds*attempts)*time.Second + 2*time.Minute
}

func (s *RatingPollService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de consulta ao ranking desabilitada por configuração")
		return nil
	}

	s.syncMutex.Lock()
	s.ctx = ctx
	s.syncMutex.Unlock()

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de consulta ao ranking")

	// Agendar a consulta ao ranking
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.PollRating(domain.PollTriggerSchedule); err != nil {
			logrus.WithError(err).Error("Erro na consulta agendada ao ranking")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar consulta ao ranking: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Consulta inicial, sem esperar o primeiro horário do cron
	if s.config.RunOnStart {
		go func() {
			if err := s.PollRating(domain.PollTriggerSchedule); err != nil {
				logrus.WithError(err).Error("Erro na consulta inicial ao ranking")
			}
		}()
	}

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de consulta ao ranking")
		s.scheduler.Stop()
	}()

	return nil
}

// PollRating executa um ciclo com o ID padrão. Ciclos não se sobrepõem: uma
// chamada durante outro ciclo é ignorada.
func (s *RatingPollService) PollRating(trigger domain.PollTrigger) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Consulta ao ranking já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	parent := s.ctx
	s.syncMutex.Unlock()

	var cycleErr error
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.lastSyncError = ""
		if cycleErr != nil {
			s.lastSyncError = cycleErr.Error()
		}
		s.syncMutex.Unlock()
	}()

	ctx, cancel := context.WithTimeout(parent, s.config.CycleTimeout)
	defer cancel()

	logrus.WithField("trigger", trigger).Info("Iniciando consulta ao ranking")

	_, cycleErr = s.poller.RunCycle(ctx, s.config.TrackedID, trigger)
	if cycleErr != nil {
		return cycleErr
	}

	logrus.Info("Consulta ao ranking concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma consulta ao ranking
func (s *RatingPollService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Consulta ao ranking já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando consulta manual ao ranking")
	go func() {
		if err := s.PollRating(domain.PollTriggerManual); err != nil {
			logrus.WithError(err).Error("Erro na consulta manual ao ranking")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *RatingPollService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"tracked_id":             s.config.TrackedID,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}

	if s.config.SyncEnabled {
		if _, next := s.scheduler.NextRun(); !next.IsZero() {
			status["next_sync_at"] = next
		}
	}

	return status
}
