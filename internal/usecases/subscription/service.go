// Package subscription gerencia os chats inscritos e o ID acompanhado por cada um
package subscription

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/repository"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

const maxTrackedIDLength = 20

type Manager interface {
	Register(ctx context.Context, chatID int64) error
	Subscribe(ctx context.Context, chatID int64) error
	Unsubscribe(ctx context.Context, chatID int64) error
	// SetTrackedID define o ID acompanhado pelo chat; vazio volta ao ID padrão
	SetTrackedID(ctx context.Context, chatID int64, trackedID string) error
	// TrackedID retorna o ID do chat ou, se não houver, o ID padrão da configuração
	TrackedID(ctx context.Context, chatID int64) (string, error)
	IsSubscribed(ctx context.Context, chatID int64) (bool, error)
	SubscribedChatIDs(ctx context.Context) ([]int64, error)
	AllChatIDs(ctx context.Context) ([]int64, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

type Service struct {
	subscriberRepo   repository.SubscriberRepository
	snapshotRepo     repository.RatingSnapshotRepository
	defaultTrackedID string
}

func NewService(
	subscriberRepo repository.SubscriberRepository,
	snapshotRepo repository.RatingSnapshotRepository,
	cfg *config.Config,
) *Service {
	return &Service{
		subscriberRepo:   subscriberRepo,
		snapshotRepo:     snapshotRepo,
		defaultTrackedID: cfg.Rating.TrackedID,
	}
}

func (s *Service) Register(ctx context.Context, chatID int64) error {
	if err := s.subscriberRepo.Register(ctx, chatID); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}
	return nil
}

func (s *Service) Subscribe(ctx context.Context, chatID int64) error {
	if err := s.subscriberRepo.SetSubscribed(ctx, chatID, true); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}

	logrus.WithField("chat_id", chatID).Info("Chat inscrito nas notificações")
	return nil
}

func (s *Service) Unsubscribe(ctx context.Context, chatID int64) error {
	if err := s.subscriberRepo.SetSubscribed(ctx, chatID, false); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}

	logrus.WithField("chat_id", chatID).Info("Chat removido das notificações")
	return nil
}

func (s *Service) SetTrackedID(ctx context.Context, chatID int64, trackedID string) error {
	trackedID = strings.TrimSpace(trackedID)
	if trackedID != "" && !validTrackedID(trackedID) {
		return ErrInvalidTrackedID
	}

	if err := s.subscriberRepo.SetTrackedID(ctx, chatID, trackedID); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}

	return nil
}

func (s *Service) TrackedID(ctx context.Context, chatID int64) (string, error) {
	subscriber, err := s.subscriberRepo.GetByChatID(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}

	if subscriber == nil || subscriber.TrackedID == nil || *subscriber.TrackedID == "" {
		return s.defaultTrackedID, nil
	}

	return *subscriber.TrackedID, nil
}

func (s *Service) IsSubscribed(ctx context.Context, chatID int64) (bool, error) {
	subscriber, err := s.subscriberRepo.GetByChatID(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}

	return subscriber != nil && subscriber.Subscribed, nil
}

func (s *Service) SubscribedChatIDs(ctx context.Context) ([]int64, error) {
	chatIDs, err := s.subscriberRepo.ListSubscribedChatIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}
	return chatIDs, nil
}

func (s *Service) AllChatIDs(ctx context.Context) ([]int64, error) {
	chatIDs, err := s.subscriberRepo.ListChatIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}
	return chatIDs, nil
}

func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	totalUsers, err := s.subscriberRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}

	subscribers, err := s.subscriberRepo.CountSubscribed(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}

	snapshots, err := s.snapshotRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}

	stats := &domain.Stats{
		TotalUsers:  totalUsers,
		Subscribers: subscribers,
		Snapshots:   snapshots,
	}

	latest, err := s.snapshotRepo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseOperation, err)
	}

	if latest != nil {
		stats.LastSnapshotAt = &latest.Timestamp
		stats.LastTotalPeople = &latest.TotalPeople
	}

	return stats, nil
}

func validTrackedID(id string) bool {
	if len(id) > maxTrackedIDLength {
		return false
	}

	for _, r := range id {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
