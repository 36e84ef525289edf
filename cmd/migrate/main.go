package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/database"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/migration"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/repository"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
)

func main() {
	historyPath := flag.String("import-csv", "", "arquivo CSV com o histórico legado do ranking")
	usersPath := flag.String("import-users", "", "arquivo legado com um chat id inscrito por linha")
	force := flag.Bool("force", false, "importa o histórico mesmo que a tabela já tenha registros")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx := context.Background()
	startTime := time.Now()

	conn, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatalf("Erro ao conectar ao banco (%s)", cfg.Database.Driver)
	}
	defer conn.Close()

	if err := database.Migrate(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar o schema do banco")
	}

	if *historyPath != "" {
		if err := importHistory(ctx, conn, *historyPath, *force); err != nil {
			logrus.WithError(err).WithField("file", *historyPath).Fatal("Erro ao importar histórico")
		}
	}

	if *usersPath != "" {
		if err := importUsers(ctx, conn, *usersPath); err != nil {
			logrus.WithError(err).WithField("file", *usersPath).Fatal("Erro ao importar assinantes")
		}
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("Migração concluída")
}

func importHistory(ctx context.Context, conn *database.Connection, path string, force bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := migration.ParseHistoryCSV(f)
	if err != nil {
		return err
	}
	logrus.WithField("records", len(records)).Info("Histórico lido do CSV")

	_, err = migration.ImportHistory(ctx, conn, records, force)
	return err
}

func importUsers(ctx context.Context, conn *database.Connection, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	chatIDs, err := migration.ParseUsers(f)
	if err != nil {
		return err
	}

	_, err = migration.ImportUsers(ctx, repository.NewSubscriberRepository(conn), chatIDs)
	return err
}
