package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/service"
	"github.com/MKhiriev/gsc-identity/internal/utils"
	"github.com/MKhiriev/gsc-identity/models"
)

// Messages rendered to clients. Authentication and reset token failures
// share one message each whatever the underlying cause.
const (
	msgDuplicateIdentifier = "identifier already registered"
	msgInvalidCredentials  = "invalid credentials"
	msgInvalidOrExpired    = "invalid or expired token"
	msgSequenceExhausted   = "player identifiers exhausted for this period"
	msgServiceUnavailable  = "service temporarily unavailable"
	msgInvalidInput        = "invalid input"
	msgInvalidSession      = "invalid session"
	msgInsufficientRole    = "forbidden"
	msgInternalServerError = "internal server error"
)

var codeStatusMap = map[string]int{
	service.CodeDuplicateIdentifier:  http.StatusConflict,
	service.CodeAuthenticationFailed: http.StatusUnauthorized,
	service.CodeTokenNotFound:        http.StatusBadRequest,
	service.CodeTokenExpired:         http.StatusBadRequest,
	service.CodeSequenceOverflow:     http.StatusServiceUnavailable,
	service.CodeStorageUnavailable:   http.StatusServiceUnavailable,
	service.CodeInvalidInput:         http.StatusBadRequest,
	service.CodeInvalidSession:       http.StatusUnauthorized,
}

var codeMessageMap = map[string]string{
	service.CodeDuplicateIdentifier:  msgDuplicateIdentifier,
	service.CodeAuthenticationFailed: msgInvalidCredentials,
	service.CodeTokenNotFound:        msgInvalidOrExpired,
	service.CodeTokenExpired:         msgInvalidOrExpired,
	service.CodeSequenceOverflow:     msgSequenceExhausted,
	service.CodeStorageUnavailable:   msgServiceUnavailable,
	service.CodeInvalidInput:         msgInvalidInput,
	service.CodeInvalidSession:       msgInvalidSession,
}

func statusFromError(err error) int {
	if status, ok := codeStatusMap[service.ErrorCode(err)]; ok {
		return status
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func errorResponse(err error) models.ErrorResponse {
	code := service.ErrorCode(err)
	if msg, ok := codeMessageMap[code]; ok {
		resp := models.ErrorResponse{Error: msg}
		if code == service.CodeDuplicateIdentifier || code == service.CodeInvalidInput {
			resp.Field = service.ErrorField(err)
		}
		return resp
	}
	if statusFromError(err) == http.StatusServiceUnavailable {
		return models.ErrorResponse{Error: msgServiceUnavailable}
	}
	return models.ErrorResponse{Error: msgInternalServerError}
}

// writeError logs err and renders it with the status of its code.
// The body never carries err's own text.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("func", fn).
		Str("code", service.ErrorCode(err)).
		Int("status", status).
		Send()

	utils.WriteJSON(w, errorResponse(err), status)
}

func writeMessage(w http.ResponseWriter, msg string, status int) {
	utils.WriteJSON(w, models.ErrorResponse{Error: msg}, status)
}
