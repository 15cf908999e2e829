// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/gsc-identity/internal/clock"
	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/metrics"
	"github.com/MKhiriev/gsc-identity/internal/store"
	"github.com/MKhiriev/gsc-identity/internal/validators"
	"github.com/MKhiriev/gsc-identity/models"
	"golang.org/x/crypto/bcrypt"
)

const taskWelcomeNotification = "welcome_notification"

// authService registers identities and resolves login identifiers.
type authService struct {
	users     store.UserRepository
	issuer    PlayerIDIssuer
	sessions  SessionService
	notifier  NotificationSender
	tasks     TaskRunner
	validator validators.Validator

	bcryptCost int
	// dummyHash is compared against when the identifier is unknown, so
	// both failure kinds cost one bcrypt verification.
	dummyHash []byte

	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// AuthDependencies are the collaborators of the auth service.
type AuthDependencies struct {
	Users    store.UserRepository
	Issuer   PlayerIDIssuer
	Sessions SessionService
	Notifier NotificationSender
	Tasks    TaskRunner
}

func NewAuthService(deps AuthDependencies, cfg config.App, clk clock.Clock, m *metrics.Metrics, logger *logger.Logger) AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte("gsc-identity-unknown-account"), cost)
	if err != nil {
		logger.Err(err).Str("func", "NewAuthService").Msg("failed to prepare dummy hash")
	}

	return &authService{
		users:      deps.Users,
		issuer:     deps.Issuer,
		sessions:   deps.Sessions,
		notifier:   deps.Notifier,
		tasks:      deps.Tasks,
		validator:  validators.NewIdentityValidator(),
		bcryptCost: cost,
		dummyHash:  dummyHash,
		clock:      clk,
		metrics:    m,
		logger:     logger,
	}
}

// Register validates and normalizes req, rejects taken logins, issues a
// player identifier and stores identity and profile in one transaction.
// The welcome notification is sent in the background.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return models.Token{}, err
	}

	req = validators.NormalizeRegisterRequest(req)
	if err := a.validator.Validate(ctx, req); err != nil {
		log.Info().Err(err).Str("func", "*authService.Register").Msg("invalid registration")
		return models.Token{}, invalidInput(validators.Field(err), err)
	}

	field, err := a.users.FindLoginConflict(ctx, req.Email, req.Phone)
	if err != nil {
		return models.Token{}, storageUnavailable(err)
	}
	if field != "" {
		log.Info().Str("func", "*authService.Register").Str("field", field).Msg("login identifier already registered")
		return models.Token{}, duplicateIdentifier(field, store.ErrAlreadyExists)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("failed to hash password")
		return models.Token{}, fmt.Errorf("error hashing password: %w", err)
	}

	playerID, err := a.issuer.IssuePlayerIdentifier(ctx, a.clock.Now())
	if err != nil {
		return models.Token{}, err
	}

	identity, err := a.users.CreateIdentity(ctx, models.Identity{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Gender:       req.Gender,
		Photo:        req.Photo,
		Role:         models.RoleUser,
		PasswordHash: string(passwordHash),
	}, playerID)
	if err != nil {
		return models.Token{}, createIdentityError(err)
	}

	log.Info().Int64("user_id", identity.UserID).Str("player_id", playerID).Msg("identity registered")

	token, err := a.sessions.Issue(ctx, models.ClaimsFromIdentity(identity))
	if err != nil {
		return models.Token{}, err
	}

	if identity.Email != "" {
		email, name := identity.Email, identity.Name
		a.tasks.Submit(ctx, taskWelcomeNotification, func(ctx context.Context) error {
			return a.notifier.SendWelcome(ctx, email, name, playerID)
		})
	}

	return token, nil
}

func createIdentityError(err error) error {
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return duplicateIdentifier(validators.FieldEmail, err)
	case errors.Is(err, store.ErrPhoneAlreadyExists):
		return duplicateIdentifier(validators.FieldPhone, err)
	case errors.Is(err, store.ErrPlayerIDAlreadyExists):
		return duplicateIdentifier("player_id", err)
	case errors.Is(err, store.ErrAlreadyExists):
		return duplicateIdentifier("identifier", err)
	case errors.Is(err, store.ErrLoginRequired):
		return invalidInput(validators.FieldEmail, err)
	default:
		return storageUnavailable(err)
	}
}

// Authenticate looks identifier up as an email or phone first and as a
// player identifier second. Unknown identifiers and wrong secrets produce
// the same error.
func (a *authService) Authenticate(ctx context.Context, identifier, secret string) (models.SessionClaims, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return models.SessionClaims{}, err
	}

	identity, err := a.resolve(ctx, identifier)
	if errors.Is(err, ErrUnknownIdentifier) {
		if a.dummyHash != nil {
			_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(secret))
		}
		log.Info().Str("func", "*authService.Authenticate").Msg("authentication failed: unknown identifier")
		a.metrics.RecordAuthAttempt(metrics.ResultFailure)
		return models.SessionClaims{}, authenticationFailed(err)
	}
	if err != nil {
		return models.SessionClaims{}, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(secret)); err != nil {
		log.Info().Str("func", "*authService.Authenticate").Int64("user_id", identity.UserID).Msg("authentication failed: invalid secret")
		a.metrics.RecordAuthAttempt(metrics.ResultFailure)
		return models.SessionClaims{}, authenticationFailed(ErrInvalidSecret)
	}

	a.metrics.RecordAuthAttempt(metrics.ResultSuccess)
	return models.ClaimsFromIdentity(identity), nil
}

func (a *authService) resolve(ctx context.Context, identifier string) (models.Identity, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return models.Identity{}, ErrUnknownIdentifier
	}

	identity, err := a.users.FindByLogin(ctx, validators.NormalizeIdentifier(identifier))
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.Identity{}, storageUnavailable(err)
	}

	identity, err = a.users.FindByPlayerID(ctx, strings.ToUpper(identifier))
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.Identity{}, ErrUnknownIdentifier
	}
	if err != nil {
		return models.Identity{}, storageUnavailable(err)
	}
	return identity, nil
}
