// Package utils provides general-purpose helpers shared across the
// application: context keys, keyed hashing, random tokens, JSON responses,
// the outbound HTTP client and session token signing.
package utils

import (
	"context"

	"github.com/MKhiriev/gsc-identity/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the key under which verified session claims are stored
// by the authentication middleware.
var ClaimsCtxKey = contextKey("sessionClaims")

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims models.SessionClaims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}

// GetClaimsFromContext retrieves session claims from the context.
//
// ok is false when no claims were stored or the stored value has an
// unexpected type.
func GetClaimsFromContext(ctx context.Context) (models.SessionClaims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(models.SessionClaims)
	return claims, ok
}

// GetUserIDFromContext is a shorthand for the UserID of the claims stored
// in ctx.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
