// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks identity input before it reaches storage:
// registration, login, password reset, profile patches and artifact purge
// requests. It also owns the canonical forms of login identifiers.
//
// Usage patterns:
//  1. Normalize the request (NormalizeRegisterRequest, NormalizeIdentifier).
//  2. Call Validate with context, value and optional field names.
//  3. Read the offending field from the returned *FieldError.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
