package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/database"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
)

//go:generate mockgen -source=subscriber.go -destination=mocks/mock_subscriber.go -package=mocks

const (
	subscriberTable = "subscribers"
)

type SubscriberRepository interface {
	// Register garante que o chat exista, sem alterar a inscrição
	Register(ctx context.Context, chatID int64) error
	SetSubscribed(ctx context.Context, chatID int64, subscribed bool) error
	SetTrackedID(ctx context.Context, chatID int64, trackedID string) error
	GetByChatID(ctx context.Context, chatID int64) (*domain.Subscriber, error)
	ListSubscribedChatIDs(ctx context.Context) ([]int64, error)
	ListChatIDs(ctx context.Context) ([]int64, error)
	CountAll(ctx context.Context) (int, error)
	CountSubscribed(ctx context.Context) (int, error)
}

type subscriberRepository struct {
	conn database.Conn
	now  func() time.Time
}

func NewSubscriberRepository(conn database.Conn) SubscriberRepository {
	return &subscriberRepository{
		conn: conn,
		now:  time.Now,
	}
}

func (r *subscriberRepository) Register(ctx context.Context, chatID int64) error {
	now := r.now()

	query, args, err := r.conn.Builder().
		Insert(subscriberTable).
		Columns("chat_id", "subscribed", "created_at", "updated_at").
		Values(chatID, false, now, now).
		Suffix("ON CONFLICT (chat_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao registrar chat %d: %w", chatID, err)
	}

	return nil
}

func (r *subscriberRepository) SetSubscribed(ctx context.Context, chatID int64, subscribed bool) error {
	now := r.now()

	query, args, err := r.conn.Builder().
		Insert(subscriberTable).
		Columns("chat_id", "subscribed", "created_at", "updated_at").
		Values(chatID, subscribed, now, now).
		Suffix("ON CONFLICT (chat_id) DO UPDATE SET subscribed = excluded.subscribed, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar inscrição do chat %d: %w", chatID, err)
	}

	return nil
}

func (r *subscriberRepository) SetTrackedID(ctx context.Context, chatID int64, trackedID string) error {
	now := r.now()

	var value interface{}
	if trackedID != "" {
		value = trackedID
	}

	query, args, err := r.conn.Builder().
		Insert(subscriberTable).
		Columns("chat_id", "tracked_id", "subscribed", "created_at", "updated_at").
		Values(chatID, value, false, now, now).
		Suffix("ON CONFLICT (chat_id) DO UPDATE SET tracked_id = excluded.tracked_id, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar ID acompanhado do chat %d: %w", chatID, err)
	}

	return nil
}

func (r *subscriberRepository) GetByChatID(ctx context.Context, chatID int64) (*domain.Subscriber, error) {
	query, args, err := r.conn.Builder().
		Select("chat_id", "tracked_id", "subscribed", "created_at", "updated_at").
		From(subscriberTable).
		Where(squirrel.Eq{"chat_id": chatID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		s         domain.Subscriber
		trackedID sql.NullString
	)

	err = r.conn.QueryRow(ctx, query, args...).Scan(&s.ChatID, &trackedID, &s.Subscribed, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar chat %d: %w", chatID, err)
	}

	if trackedID.Valid {
		s.TrackedID = &trackedID.String
	}

	return &s, nil
}

func (r *subscriberRepository) ListSubscribedChatIDs(ctx context.Context) ([]int64, error) {
	return r.listChatIDs(ctx, squirrel.Eq{"subscribed": true})
}

func (r *subscriberRepository) ListChatIDs(ctx context.Context) ([]int64, error) {
	return r.listChatIDs(ctx, nil)
}

func (r *subscriberRepository) listChatIDs(ctx context.Context, where squirrel.Sqlizer) ([]int64, error) {
	builder := r.conn.Builder().
		Select("chat_id").
		From(subscriberTable).
		OrderBy("chat_id ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	chatIDs := make([]int64, 0)
	for rows.Next() {
		var chatID int64
		if err := rows.Scan(&chatID); err != nil {
			return nil, fmt.Errorf("erro ao escanear chat: %w", err)
		}
		chatIDs = append(chatIDs, chatID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return chatIDs, nil
}

func (r *subscriberRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, nil)
}

func (r *subscriberRepository) CountSubscribed(ctx context.Context) (int, error) {
	return r.count(ctx, squirrel.Eq{"subscribed": true})
}

func (r *subscriberRepository) count(ctx context.Context, where squirrel.Sqlizer) (int, error) {
	builder := r.conn.Builder().
		Select("COUNT(*)").
		From(subscriberTable)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar chats: %w", err)
	}

	return total, nil
}
