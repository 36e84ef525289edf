package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/database"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/integrator/itmo"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/integrator/itmo/itmoclient"
	"github.com/vfg2006/itmo-rating-bot/infrastructure/repository"
	"github.com/vfg2006/itmo-rating-bot/internal/api"
	"github.com/vfg2006/itmo-rating-bot/internal/api/handler"
	"github.com/vfg2006/itmo-rating-bot/internal/bot"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"github.com/vfg2006/itmo-rating-bot/internal/metrics"
	"github.com/vfg2006/itmo-rating-bot/internal/notifier"
	"github.com/vfg2006/itmo-rating-bot/internal/scheduler"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/authenticating"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/polling"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/subscription"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn := dbconn(ctx, cfg.Database)
	defer conn.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, conn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar o schema do banco")
		}
	}

	snapshotRepo := repository.NewRatingSnapshotRepository(conn)
	subscriberRepo := repository.NewSubscriberRepository(conn)

	m := metrics.New()

	itmoClient := itmoclient.NewClient(cfg)
	itmoIntegrator := itmo.New(cfg, itmoClient)

	pollingService := polling.NewService(itmoIntegrator, snapshotRepo, m, cfg)
	subscriptionService := subscription.NewService(subscriberRepo, snapshotRepo, cfg)
	authenticator := authenticating.NewService(cfg)

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar à API do Telegram")
	}
	botAPI.Debug = cfg.Telegram.Debug
	logrus.WithField("username", botAPI.Self.UserName).Info("Bot autenticado no Telegram")

	dispatcher := notifier.NewDispatcher(bot.NewSender(botAPI), subscriptionService, m, cfg)
	go dispatcher.Run(ctx, pollingService.Events())

	ratingPollService := scheduler.NewRatingPollService(pollingService, cfg)
	if err := ratingPollService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de consulta ao ranking")
	} else {
		logrus.Info("Agendador de consulta ao ranking iniciado com sucesso")
	}

	if cfg.Server.Enabled {
		server := api.New(cfg, api.Dependencies{
			Database:       conn,
			MetricsHandler: m.Handler(),
			Poller:         pollingService,
			Subscriptions:  subscriptionService,
			Broadcaster:    dispatcher,
			Authenticator:  authenticator,
			CronJobs: handler.CronJobServices{
				handler.CronJobTypeRatingPoll: ratingPollService,
			},
		})

		go func() {
			if err := server.Run(ctx); err != nil {
				logrus.Error(err)
			}
		}()
	}

	bot.New(botAPI, subscriptionService, pollingService, dispatcher, authenticator, cfg).Run(ctx)

	logrus.Info("Bot encerrado")
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// dbconn cria uma conexão com o banco de dados
func dbconn(ctx context.Context, dbConfig config.Database) *database.Connection {
	conn, err := database.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatalf("Erro ao conectar ao banco (%s)", dbConfig.Driver)
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com o banco")
	}

	logrus.WithField("driver", dbConfig.Driver).Info("Conexão com o banco estabelecida com sucesso")
	return conn
}
