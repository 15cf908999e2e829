package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/utils"
	"github.com/MKhiriev/gsc-identity/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		writeError(w, r, "Handler.register", err)
		return
	}

	log.Info().
		Int64("user_id", token.Claims.UserID).
		Str("player_id", token.Claims.PlayerID).
		Msg("user registered")

	writeToken(w, token, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	claims, err := h.services.AuthService.Authenticate(ctx, req.Identifier, req.Password)
	if err != nil {
		writeError(w, r, "Handler.login", err)
		return
	}

	token, err := h.services.SessionService.Issue(ctx, claims)
	if err != nil {
		writeError(w, r, "Handler.login", err)
		return
	}

	log.Debug().Int64("user_id", claims.UserID).Msg("user successfully logged in")

	writeToken(w, token, http.StatusOK)
}

// me echoes the claims of the presented session without a store lookup.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, "Handler.me", ErrNoSessionInContext)
		return
	}

	utils.WriteJSON(w, claims, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		writeError(w, r, "Handler.updateProfile", ErrNoSessionInContext)
		return
	}

	var patch models.ClaimsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.services.ProfileService.UpdateProfile(ctx, claims, patch)
	if err != nil {
		writeError(w, r, "Handler.updateProfile", err)
		return
	}

	writeToken(w, token, http.StatusOK)
}

func writeToken(w http.ResponseWriter, token models.Token, status int) {
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, token, status)
}
