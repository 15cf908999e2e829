// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

// Error codes attached to every error leaving the produced surface.
const (
	CodeDuplicateIdentifier    = "DUPLICATE_IDENTIFIER"
	CodeAuthenticationFailed   = "AUTHENTICATION_FAILED"
	CodeTokenNotFound          = "TOKEN_NOT_FOUND"
	CodeTokenExpired           = "TOKEN_EXPIRED"
	CodeSequenceOverflow       = "SEQUENCE_OVERFLOW"
	CodeStorageUnavailable     = "STORAGE_UNAVAILABLE"
	CodeArtifactDeletionFailed = "ARTIFACT_DELETION_FAILED"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeInvalidSession         = "INVALID_SESSION"
)

var (
	ErrDuplicateIdentifier = errors.New("identifier already registered")

	// ErrAuthenticationFailed is the only authentication error callers see.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUnknownIdentifier    = fmt.Errorf("%w: unknown identifier", ErrAuthenticationFailed)
	ErrInvalidSecret        = fmt.Errorf("%w: invalid secret", ErrAuthenticationFailed)

	ErrTokenNotFound = errors.New("reset token not found")
	ErrTokenExpired  = errors.New("reset token expired")

	ErrSequenceOverflow = errors.New("player sequence exhausted for period")

	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrArtifactDeletionFailed = errors.New("artifact deletion failed")

	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidSession = errors.New("invalid session")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

func duplicateIdentifier(field string, err error) error {
	return oops.
		Code(CodeDuplicateIdentifier).
		With("field", field).
		Wrap(fmt.Errorf("%w: %s: %w", ErrDuplicateIdentifier, field, err))
}

func authenticationFailed(err error) error {
	return oops.Code(CodeAuthenticationFailed).Wrap(err)
}

func storageUnavailable(err error) error {
	return oops.Code(CodeStorageUnavailable).Wrap(fmt.Errorf("%w: %w", ErrStorageUnavailable, err))
}

func invalidInput(field string, err error) error {
	return oops.
		Code(CodeInvalidInput).
		With("field", field).
		Wrap(fmt.Errorf("%w: %w", ErrInvalidInput, err))
}

// ErrorCode returns the code attached to err, or "" for uncoded errors.
func ErrorCode(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := any(oopsErr.Code()).(string)
	return code
}

// ErrorField returns the offending field recorded on a duplicate or
// invalid-input error.
func ErrorField(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	field, _ := oopsErr.Context()["field"].(string)
	return field
}
