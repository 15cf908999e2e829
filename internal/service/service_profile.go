package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/store"
	"github.com/MKhiriev/gsc-identity/internal/validators"
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/samber/oops"
)

const taskArtifactReplace = "artifact_replace"

type profileService struct {
	users     store.UserRepository
	sessions  SessionService
	artifacts ArtifactService
	tasks     TaskRunner
	validator validators.Validator

	logger *logger.Logger
}

func NewProfileService(users store.UserRepository, sessions SessionService, artifacts ArtifactService, tasks TaskRunner, logger *logger.Logger) ProfileService {
	return &profileService{
		users:     users,
		sessions:  sessions,
		artifacts: artifacts,
		tasks:     tasks,
		validator: validators.NewIdentityValidator(),
		logger:    logger,
	}
}

// UpdateProfile commits patch, schedules removal of a superseded photo and
// returns the session re-signed with the patched claims.
func (s *profileService) UpdateProfile(ctx context.Context, claims models.SessionClaims, patch models.ClaimsPatch) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return models.Token{}, err
	}

	patch = validators.NormalizeClaimsPatch(patch)
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.Token{}, invalidInput(validators.Field(err), err)
	}
	if patch.Phone != nil && *patch.Phone == "" && claims.Email == "" {
		return models.Token{}, invalidInput(validators.FieldPhone, validators.ErrNoLoginIdentifier)
	}

	change, err := s.users.UpdateProfile(ctx, claims.UserID, patch)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.Token{}, oops.Code(CodeInvalidSession).Wrap(ErrInvalidSession)
	case errors.Is(err, store.ErrPhoneAlreadyExists):
		return models.Token{}, duplicateIdentifier(validators.FieldPhone, err)
	case errors.Is(err, store.ErrLoginRequired):
		return models.Token{}, invalidInput(validators.FieldPhone, err)
	case err != nil:
		return models.Token{}, storageUnavailable(err)
	}

	if change.PreviousPhoto != "" && patch.Photo != nil {
		oldRef, newRef := change.PreviousPhoto, *patch.Photo
		s.tasks.Submit(ctx, taskArtifactReplace, func(ctx context.Context) error {
			s.artifacts.Replace(ctx, oldRef, newRef)
			return nil
		})
	}

	log.Info().Int64("user_id", claims.UserID).Msg("profile updated")

	return s.sessions.RefreshClaims(ctx, claims, patch)
}
