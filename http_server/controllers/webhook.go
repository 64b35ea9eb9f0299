package controllers

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// UpdateDecoder is satisfied by *tgbotapi.BotAPI.
type UpdateDecoder interface {
	HandleUpdate(r *http.Request) (*tgbotapi.Update, error)
}

// ReceiveUpdate decodes a Telegram webhook call and hands the update to the
// dispatcher. It blocks until a worker accepts it, the request ends or done
// is closed.
func ReceiveUpdate(decoder UpdateDecoder, updates chan<- tgbotapi.Update, done <-chan struct{}, logger *zap.Logger) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		update, err := decoder.HandleUpdate(r)
		if err != nil {
			logger.Warn("malformed webhook update", zap.Error(err))
			ReturnHttpBadResponse(rw, "malformed update")
			return
		}

		select {
		case updates <- *update:
			rw.WriteHeader(http.StatusOK)
		case <-done:
			logger.Warn("webhook update dropped, shutting down", zap.Int("update_id", update.UpdateID))
			rw.WriteHeader(http.StatusServiceUnavailable)
		case <-r.Context().Done():
			logger.Warn("webhook update dropped", zap.Int("update_id", update.UpdateID))
			rw.WriteHeader(http.StatusServiceUnavailable)
		}
	}
}
