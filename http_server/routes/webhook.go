package routes

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/virgidrex/sentinela-bot/http_server/controllers"
)

func WebhookRoute(router *mux.Router, path string, decoder controllers.UpdateDecoder, updates chan<- tgbotapi.Update, done <-chan struct{}, logger *zap.Logger) {
	router.HandleFunc(path, controllers.ReceiveUpdate(decoder, updates, done, logger)).Methods("POST")
}
