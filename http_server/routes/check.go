package routes

import (
	"github.com/gorilla/mux"

	"github.com/virgidrex/sentinela-bot/http_server/controllers"
	"github.com/virgidrex/sentinela-bot/service"
)

func CheckRoute(router *mux.Router, s *service.Service) {
	router.HandleFunc("/check", controllers.CheckAddress(s)).Methods("POST")
}
