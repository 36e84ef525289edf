package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/itmo-rating-bot/internal/notifier"
	"github.com/vfg2006/itmo-rating-bot/pkg/apiErrors"
	"github.com/vfg2006/itmo-rating-bot/pkg/log"
	"github.com/vfg2006/itmo-rating-bot/pkg/middleware"
)

// maxBroadcastLength é o limite de uma mensagem de texto do Telegram
const maxBroadcastLength = 4096

type broadcastRequest struct {
	Text string `json:"text"`
}

// SendBroadcast envia um texto livre a todos os chats conhecidos e responde com o resumo
func SendBroadcast(broadcaster notifier.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req broadcastRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		text := strings.TrimSpace(req.Text)
		if text == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo text é obrigatório", nil)
			return
		}
		if len([]rune(text)) > maxBroadcastLength {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Texto excede 4096 caracteres", nil)
			return
		}

		logger := log.ForContext(r.Context())
		if claims, ok := middleware.ClaimsFromRequest(r); ok {
			logger = logger.WithField("chat_id", claims.ChatID)
		}

		report, err := broadcaster.Broadcast(r.Context(), text)
		if err != nil {
			logger.WithError(err).Error("Erro ao enviar broadcast")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar destinatários", nil)
			return
		}

		logger.Info("Broadcast enviado pela API")
		writeJSON(w, http.StatusOK, report)
	}
}
