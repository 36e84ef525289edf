package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
)

// As colunas de pago/não pago e de posição aceitam NULL: registros gravados antes
// da divisão por tipo de pagamento continuam válidos.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS rating_snapshots (
		id                     BIGSERIAL PRIMARY KEY,
		run_id                 TEXT NOT NULL DEFAULT '',
		total_people           INTEGER NOT NULL,
		contract_count         INTEGER NOT NULL,
		contract_paid_count    INTEGER NULL,
		contract_unpaid_count  INTEGER NULL,
		tracked_id             TEXT NOT NULL DEFAULT '',
		your_position          INTEGER NULL,
		your_contract_position INTEGER NULL,
		your_paid_position     INTEGER NULL,
		your_unpaid_position   INTEGER NULL,
		captured_at            TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS subscribers (
		chat_id    BIGINT PRIMARY KEY,
		tracked_id TEXT NULL,
		subscribed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_subscribers_subscribed ON subscribers (subscribed)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS rating_snapshots (
		id                     INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id                 TEXT NOT NULL DEFAULT '',
		total_people           INTEGER NOT NULL,
		contract_count         INTEGER NOT NULL,
		contract_paid_count    INTEGER NULL,
		contract_unpaid_count  INTEGER NULL,
		tracked_id             TEXT NOT NULL DEFAULT '',
		your_position          INTEGER NULL,
		your_contract_position INTEGER NULL,
		your_paid_position     INTEGER NULL,
		your_unpaid_position   INTEGER NULL,
		captured_at            TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS subscribers (
		chat_id    INTEGER PRIMARY KEY,
		tracked_id TEXT NULL,
		subscribed BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_subscribers_subscribed ON subscribers (subscribed)`,
}

// Migrate cria as tabelas que ainda não existem. Pode ser executado a cada inicialização.
func Migrate(ctx context.Context, conn Conn) error {
	var statements []string

	switch conn.Driver() {
	case config.DriverPostgres:
		statements = postgresSchema
	case config.DriverSQLite:
		statements = sqliteSchema
	default:
		return fmt.Errorf("migração: driver não suportado: %q", conn.Driver())
	}

	for i, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migração: erro no passo %d: %w", i+1, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"driver": conn.Driver(),
		"steps":  len(statements),
	}).Info("Schema do banco atualizado")

	return nil
}
