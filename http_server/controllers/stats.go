package controllers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/virgidrex/sentinela-bot/service"
)

func GetStats(s *service.Service, logger *zap.Logger) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		count, err := s.CountUsers()
		if err != nil {
			logger.Error("count users failed", zap.Error(err))
			WriteJSON(rw, http.StatusInternalServerError, map[string]string{"error": "stats unavailable"})
			return
		}
		WriteJSON(rw, http.StatusOK, map[string]int64{"users": count})
	}
}
