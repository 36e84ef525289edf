// Package api expõe a API HTTP administrativa do bot
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/itmo-rating-bot/internal/api/handler"
	"github.com/vfg2006/itmo-rating-bot/internal/api/handler/router"
	"github.com/vfg2006/itmo-rating-bot/internal/config"
	"github.com/vfg2006/itmo-rating-bot/internal/notifier"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/authenticating"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/polling"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/subscription"
	"github.com/vfg2006/itmo-rating-bot/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Dependencies reúne os serviços usados pelas rotas
type Dependencies struct {
	Database       handler.Pinger
	MetricsHandler http.Handler
	Poller         polling.Poller
	Subscriptions  subscription.Manager
	Broadcaster    notifier.Broadcaster
	Authenticator  authenticating.Authenticator
	CronJobs       handler.CronJobServices
}

func New(config *config.Config, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, deps),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

// NewHandler monta o router com a cadeia de middlewares
func NewHandler(config *config.Config, deps Dependencies) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.Database)...),
		router.WithRoutes(handler.Metrics(deps.MetricsHandler)...),
		router.WithRoutes(handler.Rating(deps.Poller, deps.Subscriptions)...),
		router.WithRoutes(handler.CronJobs(deps.CronJobs)...),
		router.WithRoutes(handler.Broadcast(deps.Broadcaster)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.CorsOrigins),
		middleware.AuthMiddleware(deps.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

// Run atende requisições até o contexto ser cancelado e então desliga o servidor
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
