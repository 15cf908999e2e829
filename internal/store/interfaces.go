// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the credential store adapter: PostgreSQL repositories
// for identities, player sequences and reset tokens, plus the local file
// storage holding profile artifacts.
//
// Composite changes (identity + profile creation, photo lock-step updates,
// password change + token deletion) each run in a single transaction.
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/gsc-identity/models"
)

// UserRepository persists identities and their player profiles.
type UserRepository interface {
	// CreateIdentity inserts the identity and its player profile in one
	// transaction and returns the stored identity.
	CreateIdentity(ctx context.Context, identity models.Identity, playerID string) (models.Identity, error)

	// FindByLogin returns the identity whose email or phone equals login.
	FindByLogin(ctx context.Context, login string) (models.Identity, error)

	// FindByPlayerID returns the identity owning the player profile.
	FindByPlayerID(ctx context.Context, playerID string) (models.Identity, error)

	// FindByEmail matches the email column only.
	FindByEmail(ctx context.Context, email string) (models.Identity, error)

	// FindLoginConflict reports which of email or phone is already taken,
	// as "email" or "phone", or "" when neither is.
	FindLoginConflict(ctx context.Context, email, phone string) (string, error)

	// UpdateProfile applies patch in one transaction, keeping the profile
	// photo in lock-step with the identity photo. Clearing the last login
	// identifier fails with [ErrLoginRequired].
	UpdateProfile(ctx context.Context, userID int64, patch models.ClaimsPatch) (models.ProfileChange, error)
}

// SequenceRepository is the per-period player ordinal counter.
type SequenceRepository interface {
	// Next atomically increments the counter of periodKey, creating it at 1
	// when absent, and returns the new value.
	Next(ctx context.Context, periodKey string) (int64, error)
}

// ResetTokenRepository persists hashed password-reset tokens.
type ResetTokenRepository interface {
	// Replace deletes every token of token.UserID and stores token, in one
	// transaction holding the owner's row lock, so concurrent calls for one
	// identity leave exactly one token.
	Replace(ctx context.Context, token models.ResetToken) (models.ResetToken, error)

	FindByHash(ctx context.Context, tokenHash string) (models.ResetToken, error)

	DeleteByHash(ctx context.Context, tokenHash string) error

	// Consume checks the token is live at now, then sets the owner's
	// password hash and deletes the owner's tokens in one transaction.
	// An expired token is deleted and [ErrResetTokenExpired] returned.
	Consume(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (int64, error)

	// DeleteExpired removes tokens expired at now and returns how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// FileStorage removes stored artifacts. Delete is idempotent: an absent
// file is not an error.
type FileStorage interface {
	Delete(ctx context.Context, ref string) error
}

// ErrorClassificator decides whether a storage error may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
