package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/utils"
	"github.com/MKhiriev/gsc-identity/internal/validators"
	"github.com/MKhiriev/gsc-identity/models"
)

// purgeArtifacts deletes the listed refs and returns the tally. Partial
// failure still answers 200; the report carries the failed outcomes.
func (h *Handler) purgeArtifacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.PurgeArtifactsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		log.Err(err).Str("func", "Handler.purgeArtifacts").Msg("invalid purge request")
		utils.WriteJSON(w, models.ErrorResponse{Error: msgInvalidInput, Field: validators.Field(err)}, http.StatusBadRequest)
		return
	}

	report := h.services.ArtifactService.DeleteAll(ctx, req.Refs)

	log.Info().
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("artifact purge finished")

	utils.WriteJSON(w, report, http.StatusOK)
}
