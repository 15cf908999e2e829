package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the identity projection embedded into a signed session
// token. Claims are read from the token on every request and are only
// changed through [SessionClaims.Merge].
type SessionClaims struct {
	UserID   int64  `json:"uid"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role"`
	Photo    string `json:"photo,omitempty"`
	Gender   string `json:"gender,omitempty"`
	PlayerID string `json:"player_id,omitempty"`

	jwt.RegisteredClaims
}

// ClaimsFromIdentity projects a verified identity into session claims.
func ClaimsFromIdentity(identity Identity) SessionClaims {
	return SessionClaims{
		UserID:   identity.UserID,
		Name:     identity.Name,
		Email:    identity.Email,
		Phone:    identity.Phone,
		Role:     identity.Role,
		Photo:    identity.Photo,
		Gender:   identity.Gender,
		PlayerID: identity.PlayerID,
	}
}

// ClaimsPatch is a partial update of the mutable profile claims.
// A nil field means "leave unchanged".
type ClaimsPatch struct {
	Name   *string `json:"name,omitempty"`
	Photo  *string `json:"photo,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Gender *string `json:"gender,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ClaimsPatch) IsEmpty() bool {
	return p.Name == nil && p.Photo == nil && p.Phone == nil && p.Gender == nil
}

// Merge returns a copy of c with every field present in patch applied.
// Registered claims (expiry, issuer) are carried over untouched.
func (c SessionClaims) Merge(patch ClaimsPatch) SessionClaims {
	merged := c
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Photo != nil {
		merged.Photo = *patch.Photo
	}
	if patch.Phone != nil {
		merged.Phone = *patch.Phone
	}
	if patch.Gender != nil {
		merged.Gender = *patch.Gender
	}
	return merged
}
