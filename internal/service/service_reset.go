package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/gsc-identity/internal/clock"
	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/metrics"
	"github.com/MKhiriev/gsc-identity/internal/store"
	"github.com/MKhiriev/gsc-identity/internal/utils"
	"github.com/MKhiriev/gsc-identity/internal/validators"
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

const (
	// resetTokenBytes gives 256 bits of entropy.
	resetTokenBytes = 32

	taskPasswordResetNotification = "password_reset_notification"
)

// passwordResetService implements the NoToken -> Live -> {Consumed, Expired}
// lifecycle. Raw tokens exist only in memory and in the notification;
// storage sees their HMAC digest.
type passwordResetService struct {
	users    store.UserRepository
	tokens   store.ResetTokenRepository
	notifier NotificationSender
	tasks    TaskRunner

	hashKey    string
	ttl        time.Duration
	bcryptCost int

	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// ResetDependencies are the collaborators of the password reset service.
type ResetDependencies struct {
	Users    store.UserRepository
	Tokens   store.ResetTokenRepository
	Notifier NotificationSender
	Tasks    TaskRunner
}

func NewPasswordResetService(deps ResetDependencies, cfg config.App, clk clock.Clock, m *metrics.Metrics, logger *logger.Logger) PasswordResetService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &passwordResetService{
		users:      deps.Users,
		tokens:     deps.Tokens,
		notifier:   deps.Notifier,
		tasks:      deps.Tasks,
		hashKey:    cfg.HashKey,
		ttl:        cfg.ResetTokenTTL,
		bcryptCost: cost,
		clock:      clk,
		metrics:    m,
		logger:     logger,
	}
}

func (s *passwordResetService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return err
	}

	email = validators.NormalizeEmail(email)
	if email == "" {
		return invalidInput(validators.FieldEmail, validators.ErrInvalidEmail)
	}
	// Phones and player IDs are answered like unknown addresses; a reset
	// token is only ever mailed to the email it was requested for.
	if validators.ValidateEmail(email) != nil {
		log.Info().Str("func", "*passwordResetService.RequestPasswordReset").Msg("reset requested for malformed email")
		return nil
	}

	identity, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) || (err == nil && identity.Email == "") {
		log.Info().Str("func", "*passwordResetService.RequestPasswordReset").Msg("reset requested for unknown email")
		return nil
	}
	if err != nil {
		return storageUnavailable(err)
	}

	issued, err := s.IssueResetToken(ctx, identity.UserID)
	if err != nil {
		return err
	}

	recipient := identity.Email
	s.tasks.Submit(ctx, taskPasswordResetNotification, func(ctx context.Context) error {
		return s.notifier.SendPasswordReset(ctx, recipient, issued.Token)
	})

	return nil
}

func (s *passwordResetService) IssueResetToken(ctx context.Context, userID int64) (models.IssuedResetToken, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return models.IssuedResetToken{}, err
	}

	raw, err := utils.GenerateRandomToken(resetTokenBytes)
	if err != nil {
		log.Err(err).Str("func", "*passwordResetService.IssueResetToken").Msg("failed to generate token")
		return models.IssuedResetToken{}, fmt.Errorf("error generating reset token: %w", err)
	}

	now := s.clock.Now()
	stored, err := s.tokens.Replace(ctx, models.ResetToken{
		UserID:    userID,
		TokenHash: utils.HashString(raw, s.hashKey),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	})
	if err != nil {
		return models.IssuedResetToken{}, storageUnavailable(err)
	}

	s.metrics.RecordResetToken(metrics.ResetIssued)
	log.Info().Int64("user_id", userID).Time("expires_at", stored.ExpiresAt).Msg("reset token issued")

	return models.IssuedResetToken{Token: raw, ExpiresAt: stored.ExpiresAt}, nil
}

// ValidateResetToken deletes a token found expired, so it cannot resolve
// again.
func (s *passwordResetService) ValidateResetToken(ctx context.Context, token string) (bool, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	tokenHash := utils.HashString(token, s.hashKey)
	stored, err := s.tokens.FindByHash(ctx, tokenHash)
	if errors.Is(err, store.ErrResetTokenNotFound) {
		s.metrics.RecordResetToken(metrics.ResetInvalid)
		return false, nil
	}
	if err != nil {
		return false, storageUnavailable(err)
	}

	if stored.ExpiredAt(s.clock.Now()) {
		if err = s.tokens.DeleteByHash(ctx, tokenHash); err != nil {
			log.Err(err).Str("func", "*passwordResetService.ValidateResetToken").Int64("user_id", stored.UserID).Msg("failed to delete expired token")
		}
		s.metrics.RecordResetToken(metrics.ResetExpired)
		return false, nil
	}

	return true, nil
}

// ConsumeResetToken re-checks expiry inside the store transaction that
// changes the password, then deletes every token of the owner.
func (s *passwordResetService) ConsumeResetToken(ctx context.Context, token, newSecret string) error {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validators.ValidatePassword(newSecret); err != nil {
		return invalidInput(validators.FieldPassword, err)
	}
	if token == "" {
		return tokenNotFound(store.ErrResetTokenNotFound)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newSecret), s.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*passwordResetService.ConsumeResetToken").Msg("failed to hash password")
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	userID, err := s.tokens.Consume(ctx, utils.HashString(token, s.hashKey), s.clock.Now(), string(passwordHash))
	switch {
	case errors.Is(err, store.ErrResetTokenNotFound):
		s.metrics.RecordResetToken(metrics.ResetInvalid)
		return tokenNotFound(err)
	case errors.Is(err, store.ErrResetTokenExpired):
		s.metrics.RecordResetToken(metrics.ResetExpired)
		return oops.Code(CodeTokenExpired).Wrap(fmt.Errorf("%w: %w", ErrTokenExpired, err))
	case err != nil:
		return storageUnavailable(err)
	}

	s.metrics.RecordResetToken(metrics.ResetConsumed)
	log.Info().Int64("user_id", userID).Msg("password reset")
	return nil
}

func (s *passwordResetService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.tokens.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, storageUnavailable(err)
	}
	s.metrics.RecordResetTokensSwept(n)
	return n, nil
}

func tokenNotFound(err error) error {
	return oops.Code(CodeTokenNotFound).Wrap(fmt.Errorf("%w: %w", ErrTokenNotFound, err))
}
