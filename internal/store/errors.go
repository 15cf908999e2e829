package store

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists = errors.New("already exists")

	ErrEmailAlreadyExists    = fmt.Errorf("email %w", ErrAlreadyExists)
	ErrPhoneAlreadyExists    = fmt.Errorf("phone %w", ErrAlreadyExists)
	ErrPlayerIDAlreadyExists = fmt.Errorf("player id %w", ErrAlreadyExists)

	ErrNoUserWasFound = errors.New("no user was found")

	// ErrLoginRequired is returned when a write would leave an identity
	// with neither email nor phone.
	ErrLoginRequired = errors.New("email or phone is required")

	ErrResetTokenNotFound = errors.New("reset token was not found")
	ErrResetTokenExpired  = errors.New("reset token has expired")

	ErrInvalidArtifactRef = errors.New("invalid artifact reference")
)

var (
	ErrBuildingSQLQuery = errors.New("error building sql query")

	ErrExecutingQuery = errors.New("error executing sql query")

	ErrBeginningTransaction = errors.New("failed to begin transaction")

	ErrCommitingTransaction = errors.New("failed to commit transaction")

	ErrScanningRow = errors.New("failed to scan row")
)
