// Package handler exposes the HTTP surface. It is also the single error
// translation boundary: services return typed errors, handlers map them to
// status codes.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"qsim/internal/quantum"
	"qsim/internal/repository/qcdb"
	"qsim/internal/service/simulation"
)

type apiResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiResponse{Message: msg})
}

func writeData(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, apiResponse{Message: msg, Data: data})
}

// writeSPResult surfaces a stored-procedure outcome with its business code.
func writeSPResult(w http.ResponseWriter, res qcdb.SPResult) {
	if res.Code == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeMessage(w, res.Code, res.Message)
}

// writeError translates typed failures; anything unrecognized is a 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr  *simulation.ValidationError
		notFoundErr    *simulation.NotFoundError
		unsupportedErr *quantum.UnsupportedGateError
	)
	switch {
	case errors.As(err, &validationErr):
		writeMessage(w, http.StatusBadRequest, validationErr.Msg)
	case errors.As(err, &notFoundErr):
		writeMessage(w, http.StatusNotFound, notFoundErr.Msg)
	case errors.As(err, &unsupportedErr):
		writeMessage(w, http.StatusBadRequest, unsupportedErr.Error())
	case errors.Is(err, quantum.ErrInvalidShotCount):
		writeMessage(w, http.StatusBadRequest, quantum.ErrInvalidShotCount.Error())
	default:
		log.Printf("internal error: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
