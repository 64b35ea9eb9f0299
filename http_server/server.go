package http_server

import (
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/virgidrex/sentinela-bot/http_server/controllers"
	"github.com/virgidrex/sentinela-bot/http_server/routes"
	"github.com/virgidrex/sentinela-bot/service"
)

// Webhook mounts the Telegram update endpoint. Path should carry a secret
// so only Telegram knows where to post.
type Webhook struct {
	Path    string
	Decoder controllers.UpdateDecoder
	Updates chan<- tgbotapi.Update
	// Done is closed when the bot stops accepting updates.
	Done <-chan struct{}
}

// NewRouter wires the HTTP API. The webhook route is only registered when
// webhook is non-nil.
func NewRouter(s *service.Service, webhook *Webhook, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := mux.NewRouter().StrictSlash(true)
	routes.CheckRoute(router, s)
	routes.StatsRoute(router, s, logger)
	if webhook != nil {
		routes.WebhookRoute(router, webhook.Path, webhook.Decoder, webhook.Updates, webhook.Done, logger)
	}
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return cors.Default().Handler(router)
}

func NewServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
}
