// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/database"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
)

//go:generate mockgen -source=rating_snapshot.go -destination=mocks/mock_rating_snapshot.go -package=mocks

const (
	ratingSnapshotTable = "rating_snapshots"
)

var ratingSnapshotColumns = []string{
	"id",
	"run_id",
	"total_people",
	"contract_count",
	"contract_paid_count",
	"contract_unpaid_count",
	"tracked_id",
	"your_position",
	"your_contract_position",
	"your_paid_position",
	"your_unpaid_position",
	"captured_at",
}

// RatingSnapshotRepository é o histórico de snapshots, somente inserção
type RatingSnapshotRepository interface {
	Append(ctx context.Context, snapshot *domain.RatingSnapshot) error
	LastCounters(ctx context.Context) (*domain.Counters, error)
	Latest(ctx context.Context) (*domain.RatingSnapshot, error)
	Count(ctx context.Context) (int, error)
}

type ratingSnapshotRepository struct {
	conn database.Conn
	// serializa Append e LastCounters entre o agendador e as consultas manuais
	mu sync.Mutex
}

func NewRatingSnapshotRepository(conn database.Conn) RatingSnapshotRepository {
	return &ratingSnapshotRepository{
		conn: conn,
	}
}

func (r *ratingSnapshotRepository) Append(ctx context.Context, snapshot *domain.RatingSnapshot) error {
	if snapshot == nil {
		return errors.New("snapshot nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	query, args, err := r.conn.Builder().
		Insert(ratingSnapshotTable).
		Columns(ratingSnapshotColumns[1:]...).
		Values(
			snapshot.RunID,
			snapshot.TotalPeople,
			snapshot.ContractCount,
			snapshot.ContractPaidCount,
			snapshot.ContractUnpaidCount,
			snapshot.TrackedID,
			nullableInt(snapshot.YourPosition),
			nullableInt(snapshot.YourContractPosition),
			nullableInt(snapshot.YourPaidPosition),
			nullableInt(snapshot.YourUnpaidPosition),
			snapshot.Timestamp,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir snapshot: %w", err)
	}

	return nil
}

func (r *ratingSnapshotRepository) LastCounters(ctx context.Context) (*domain.Counters, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query, args, err := r.conn.Builder().
		Select("contract_count", "contract_paid_count", "contract_unpaid_count").
		From(ratingSnapshotTable).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		counters domain.Counters
		paid     sql.NullInt64
		unpaid   sql.NullInt64
	)

	err = r.conn.QueryRow(ctx, query, args...).Scan(&counters.ContractCount, &paid, &unpaid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar últimos contadores: %w", err)
	}

	counters.ContractPaidCount = int(paid.Int64)
	counters.ContractUnpaidCount = int(unpaid.Int64)
	counters.SubtypesMissing = !paid.Valid || !unpaid.Valid

	return &counters, nil
}

func (r *ratingSnapshotRepository) Latest(ctx context.Context) (*domain.RatingSnapshot, error) {
	query, args, err := r.conn.Builder().
		Select(ratingSnapshotColumns...).
		From(ratingSnapshotTable).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot, err := r.scanRatingSnapshotRow(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *ratingSnapshotRepository) Count(ctx context.Context) (int, error) {
	query, args, err := r.conn.Builder().
		Select("COUNT(*)").
		From(ratingSnapshotTable).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar snapshots: %w", err)
	}

	return total, nil
}

func (r *ratingSnapshotRepository) scanRatingSnapshotRow(row squirrel.RowScanner) (*domain.RatingSnapshot, error) {
	var (
		s                                         domain.RatingSnapshot
		paid, unpaid                              sql.NullInt64
		position, contractPos, paidPos, unpaidPos sql.NullInt64
	)

	err := row.Scan(
		&s.ID,
		&s.RunID,
		&s.TotalPeople,
		&s.ContractCount,
		&paid,
		&unpaid,
		&s.TrackedID,
		&position,
		&contractPos,
		&paidPos,
		&unpaidPos,
		&s.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	s.ContractPaidCount = int(paid.Int64)
	s.ContractUnpaidCount = int(unpaid.Int64)
	s.YourPosition = intFromNull(position)
	s.YourContractPosition = intFromNull(contractPos)
	s.YourPaidPosition = intFromNull(paidPos)
	s.YourUnpaidPosition = intFromNull(unpaidPos)

	return &s, nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
