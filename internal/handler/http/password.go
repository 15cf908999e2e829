package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/utils"
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/go-chi/chi/v5"
)

// forgotPassword answers 202 whether or not the email is registered.
// Only a malformed email or a storage outage changes the answer.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.PasswordResetService.RequestPasswordReset(ctx, req.Email); err != nil {
		writeError(w, r, "Handler.forgotPassword", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) checkResetToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	valid, err := h.services.PasswordResetService.ValidateResetToken(r.Context(), token)
	if err != nil {
		writeError(w, r, "Handler.checkResetToken", err)
		return
	}

	utils.WriteJSON(w, models.ResetTokenStatus{Valid: valid}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	err := h.services.PasswordResetService.ConsumeResetToken(ctx, req.Token, req.Password)
	if err != nil {
		writeError(w, r, "Handler.resetPassword", err)
		return
	}

	log.Info().Msg("password reset completed")
	w.WriteHeader(http.StatusNoContent)
}
