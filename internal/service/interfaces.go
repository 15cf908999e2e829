// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/gsc-identity/models"
)

// PlayerIDIssuer mints player identifiers of the form PREFIX-YY-MM-NNNNN.
type PlayerIDIssuer interface {
	// IssuePlayerIdentifier reserves the next ordinal of the period
	// containing at and returns the formatted identifier.
	IssuePlayerIdentifier(ctx context.Context, at time.Time) (string, error)
}

// AuthService registers identities and verifies credentials.
type AuthService interface {
	// Register creates the identity and its player profile and returns a
	// signed session for it.
	Register(ctx context.Context, req models.RegisterRequest) (models.Token, error)

	// Authenticate resolves identifier as email, phone or player ID and
	// checks secret. Every failure carries CodeAuthenticationFailed.
	Authenticate(ctx context.Context, identifier, secret string) (models.SessionClaims, error)
}

// SessionService signs and verifies session tokens.
type SessionService interface {
	Issue(ctx context.Context, claims models.SessionClaims) (models.Token, error)
	Parse(ctx context.Context, tokenString string) (models.SessionClaims, error)

	// RefreshClaims merges patch into current and re-signs the result
	// with a fresh expiry.
	RefreshClaims(ctx context.Context, current models.SessionClaims, patch models.ClaimsPatch) (models.Token, error)
}

// PasswordResetService drives the reset token lifecycle.
type PasswordResetService interface {
	// RequestPasswordReset never reveals whether email is registered.
	RequestPasswordReset(ctx context.Context, email string) error

	// IssueResetToken invalidates every prior token of userID.
	IssueResetToken(ctx context.Context, userID int64) (models.IssuedResetToken, error)

	// ValidateResetToken reports whether token is live. The error is set
	// only when storage could not answer.
	ValidateResetToken(ctx context.Context, token string) (bool, error)

	ConsumeResetToken(ctx context.Context, token, newSecret string) error

	// PurgeExpired deletes every expired token row.
	PurgeExpired(ctx context.Context) (int64, error)
}

// ArtifactService removes stored files that no record references anymore.
// Deletion failures are logged and reported, never returned as errors.
type ArtifactService interface {
	// Replace deletes oldRef once the record now points to newRef.
	Replace(ctx context.Context, oldRef, newRef string) models.ArtifactOutcome
	Delete(ctx context.Context, ref string) models.ArtifactOutcome
	DeleteAll(ctx context.Context, refs []string) models.DeletionReport
}

// ProfileService applies profile edits and keeps the session in step.
type ProfileService interface {
	UpdateProfile(ctx context.Context, claims models.SessionClaims, patch models.ClaimsPatch) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// NotificationSender delivers user notifications. Calls are fire-and-forget
// from the caller's point of view.
type NotificationSender interface {
	SendWelcome(ctx context.Context, email, name, playerID string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

// TaskRunner runs named side effects outside the request.
type TaskRunner interface {
	Submit(ctx context.Context, name string, task func(ctx context.Context) error)
}
