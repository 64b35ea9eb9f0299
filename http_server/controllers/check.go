package controllers

import (
	"net/http"

	"github.com/thedevsaddam/govalidator"

	"github.com/virgidrex/sentinela-bot/models"
	"github.com/virgidrex/sentinela-bot/service"
)

type CheckSerializer struct {
	Address string `json:"address"`
}

type CheckResponse struct {
	Outcome models.OutcomeKind `json:"outcome"`
	Tier    models.Tier        `json:"tier,omitempty"`
	Balance string             `json:"balance,omitempty"`
}

// CheckAddress runs the same validate and classify pipeline as the bot.
func CheckAddress(s *service.Service) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		// parse request body
		var checkSerializer CheckSerializer
		rules := govalidator.MapData{
			"address": []string{"required"},
		}
		opts := govalidator.Options{
			Request: r,
			Data:    &checkSerializer,
			Rules:   rules,
		}
		parsedValue := govalidator.New(opts)
		e := parsedValue.ValidateJSON()
		// 1.0 if body of request is not valid
		if len(e) != 0 {
			WriteJSON(rw, http.StatusBadRequest, map[string]interface{}{"validationError": e})
			return
		}

		// 2.0 validate and classify
		outcome := s.Check(r.Context(), checkSerializer.Address)
		response := CheckResponse{Outcome: outcome.Kind}
		status := http.StatusOK
		if tier, ok := outcome.Tier(); ok {
			response.Tier = tier
			response.Balance = outcome.Balance.String()
		} else if outcome.Kind == models.OutcomeInvalidAddress {
			status = http.StatusUnprocessableEntity
		} else {
			status = http.StatusServiceUnavailable
		}
		WriteJSON(rw, status, response)
	}
}
