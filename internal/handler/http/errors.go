// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrNoSessionInContext means a protected handler ran without the
	// auth middleware in front of it.
	ErrNoSessionInContext = errors.New("no session claims in request context")

	ErrInsufficientRole = errors.New("insufficient role")
)
