package handler

import (
	"net/http"

	"github.com/vfg2006/itmo-rating-bot/internal/usecases/polling"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/subscription"
	"github.com/vfg2006/itmo-rating-bot/pkg/apiErrors"
	"github.com/vfg2006/itmo-rating-bot/pkg/log"
)

// GetLatestRating retorna o último snapshot gravado
func GetLatestRating(poller polling.Poller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := poller.Latest(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao buscar último snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar último snapshot", nil)
			return
		}

		if snapshot == nil {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Nenhum snapshot gravado ainda", nil)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

// GetStats retorna os números de usuários, inscritos e snapshots
func GetStats(subscriptions subscription.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := subscriptions.Stats(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao calcular estatísticas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular estatísticas", nil)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}
