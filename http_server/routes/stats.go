package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/virgidrex/sentinela-bot/http_server/controllers"
	"github.com/virgidrex/sentinela-bot/service"
)

func StatsRoute(router *mux.Router, s *service.Service, logger *zap.Logger) {
	router.HandleFunc("/stats", controllers.GetStats(s, logger)).Methods("GET")
	router.HandleFunc("/health", controllers.Health()).Methods("GET")
}
