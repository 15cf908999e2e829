package models

import "time"

// ResetToken is the persisted form of a password-reset token. Only the
// keyed hash of the raw value is stored.
type ResetToken struct {
	ID        string    `json:"-"`
	UserID    int64     `json:"-"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the table holding reset tokens.
func (t ResetToken) TableName() string {
	return "password_reset_tokens"
}

// ExpiredAt reports whether the token is no longer live at now.
// A token is dead from its expiry instant onwards.
func (t ResetToken) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IssuedResetToken is returned once to the issuer. Token holds the raw
// value meant for out-of-band delivery only.
type IssuedResetToken struct {
	Token     string
	ExpiresAt time.Time
}
