package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/gsc-identity/internal/clock"
	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/utils"
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/samber/oops"
)

// sessionService keeps session claims inside HS256-signed tokens. Claims
// are never re-read from storage on validation; RefreshClaims is the only
// way to change them without a new login.
type sessionService struct {
	signKey  string
	issuer   string
	duration time.Duration

	clock  clock.Clock
	logger *logger.Logger
}

func NewSessionService(cfg config.App, clk clock.Clock, logger *logger.Logger) SessionService {
	return &sessionService{
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		clock:    clk,
		logger:   logger,
	}
}

func (s *sessionService) Issue(ctx context.Context, claims models.SessionClaims) (models.Token, error) {
	token, err := utils.GenerateJWTToken(claims, s.issuer, s.clock.Now(), s.duration, s.signKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Issue").Int64("user_id", claims.UserID).Msg("failed to sign session")
		return models.Token{}, fmt.Errorf("error signing session: %w", err)
	}
	return token, nil
}

func (s *sessionService) Parse(ctx context.Context, tokenString string) (models.SessionClaims, error) {
	claims, err := utils.ValidateAndParseJWTToken(tokenString, s.signKey, s.issuer, s.clock.Now)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*sessionService.Parse").Msg("session rejected")
		return models.SessionClaims{}, oops.Code(CodeInvalidSession).Wrap(fmt.Errorf("%w: %w", ErrInvalidSession, err))
	}
	return claims, nil
}

// RefreshClaims merges patch into current and signs the result. Fields
// absent from patch are carried over as they are in current.
func (s *sessionService) RefreshClaims(ctx context.Context, current models.SessionClaims, patch models.ClaimsPatch) (models.Token, error) {
	if err := ctx.Err(); err != nil {
		return models.Token{}, err
	}
	return s.Issue(ctx, current.Merge(patch))
}
