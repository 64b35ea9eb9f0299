package controllers

import (
	"encoding/json"
	"net/http"
)

func ReturnHttpBadResponse(rw http.ResponseWriter, response string) {
	WriteJSON(rw, http.StatusBadRequest, map[string]string{"error": response})
}

func WriteJSON(rw http.ResponseWriter, status int, body interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(body)
}

func Health() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		WriteJSON(rw, http.StatusOK, "ok")
	}
}
