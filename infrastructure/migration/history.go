// Package migration importa os dados legados (histórico em CSV e arquivo de assinantes)
package migration

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/database"
	"github.com/vfg2006/itmo-rating-bot/internal/rating"
	"github.com/vfg2006/itmo-rating-bot/pkg/utils"
)

const (
	ratingSnapshotTable = "rating_snapshots"
	importRunPrefix     = "import-"
)

var ErrHistoryNotEmpty = errors.New("tabela rating_snapshots já possui registros")

// colunas obrigatórias do CSV legado
var requiredHistoryColumns = []string{
	"total_people",
	"contract_count",
	"timestamp",
}

// HistoryRecord é uma linha do histórico legado. Campos nil ficam NULL no banco.
type HistoryRecord struct {
	TotalPeople          int
	ContractCount        int
	ContractPaidCount    *int
	ContractUnpaidCount  *int
	YourPosition         *int
	YourContractPosition *int
	YourPaidPosition     *int
	YourUnpaidPosition   *int
	Timestamp            time.Time
}

// ParseHistoryCSV lê o histórico pelo cabeçalho; as colunas de pago/não pago e de posição são opcionais
func ParseHistoryCSV(r io.Reader) ([]HistoryRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// linhas antigas têm menos colunas que as novas
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("CSV vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler cabeçalho do CSV: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))] = i
	}

	for _, col := range requiredHistoryColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("coluna obrigatória ausente no CSV: %s", col)
		}
	}

	var records []HistoryRecord
	line := 1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("erro ao ler linha %d do CSV: %w", line, err)
		}

		if isBlankRow(row) {
			continue
		}

		record, err := parseHistoryRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("linha %d: %w", line, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func parseHistoryRow(row []string, index map[string]int) (HistoryRecord, error) {
	var (
		record HistoryRecord
		err    error
	)

	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	if record.TotalPeople, err = strconv.Atoi(cell("total_people")); err != nil {
		return record, fmt.Errorf("total_people inválido: %w", err)
	}
	if record.ContractCount, err = strconv.Atoi(cell("contract_count")); err != nil {
		return record, fmt.Errorf("contract_count inválido: %w", err)
	}

	optional := []struct {
		column string
		target **int
	}{
		{"contract_paid_count", &record.ContractPaidCount},
		{"contract_unpaid_count", &record.ContractUnpaidCount},
		{"your_position", &record.YourPosition},
		{"your_contract_position", &record.YourContractPosition},
		{"your_paid_position", &record.YourPaidPosition},
		{"your_unpaid_position", &record.YourUnpaidPosition},
	}

	for _, o := range optional {
		value, err := optionalInt(cell(o.column))
		if err != nil {
			return record, fmt.Errorf("%s inválido: %w", o.column, err)
		}
		*o.target = value
	}

	record.Timestamp, err = time.ParseInLocation(rating.TimestampLayout, cell("timestamp"), rating.Location)
	if err != nil {
		return record, fmt.Errorf("timestamp inválido: %w", err)
	}

	return record, nil
}

// optionalInt trata vazio e o "None" gravado pelo bot antigo como ausente
func optionalInt(value string) (*int, error) {
	if value == "" || strings.EqualFold(value, "none") || strings.EqualFold(value, "null") {
		return nil, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ImportHistory grava os registros em uma única transação, na ordem do arquivo.
// Sem force, recusa importar sobre um histórico já existente.
func ImportHistory(ctx context.Context, conn database.Conn, records []HistoryRecord, force bool) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	if !force {
		existing, err := countSnapshots(ctx, conn)
		if err != nil {
			return 0, err
		}
		if existing > 0 {
			return 0, fmt.Errorf("%w (%d registros); use -force para importar mesmo assim", ErrHistoryNotEmpty, existing)
		}
	}

	batchID, err := utils.GenerateID()
	if err != nil {
		return 0, fmt.Errorf("erro ao gerar id da importação: %w", err)
	}
	runID := importRunPrefix + batchID

	startTime := time.Now()

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, record := range records {
			query, args, err := conn.Builder().
				Insert(ratingSnapshotTable).
				Columns(
					"run_id",
					"total_people",
					"contract_count",
					"contract_paid_count",
					"contract_unpaid_count",
					"your_position",
					"your_contract_position",
					"your_paid_position",
					"your_unpaid_position",
					"captured_at",
				).
				Values(
					runID,
					record.TotalPeople,
					record.ContractCount,
					record.ContractPaidCount,
					record.ContractUnpaidCount,
					record.YourPosition,
					record.YourContractPosition,
					record.YourPaidPosition,
					record.YourUnpaidPosition,
					record.Timestamp,
				).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("erro ao inserir registro %d: %w", i+1, err)
			}

			if i > 0 && i%500 == 0 {
				logrus.WithField("processed", i).Debug("Progresso da importação do histórico")
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"run_id":   runID,
		"records":  len(records),
		"duration": time.Since(startTime).String(),
	}).Info("Histórico importado")

	return len(records), nil
}

func countSnapshots(ctx context.Context, conn database.Conn) (int, error) {
	query, args, err := conn.Builder().
		Select("COUNT(*)").
		From(ratingSnapshotTable).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar snapshots: %w", err)
	}
	return total, nil
}
