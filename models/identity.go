// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the fixed set of authorization tags an identity can carry.
type Role string

const (
	RoleUser       Role = "user"
	RoleOrganizer  Role = "organizer"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOrganizer, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// Identity is the credential record of a registered account.
//
// Email and Phone are login identifiers; an empty string means the
// identifier is absent (stored as NULL). PlayerID is filled from the
// owning player profile when one exists.
type Identity struct {
	UserID int64 `json:"user_id"`

	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Gender string `json:"gender,omitempty"`
	Photo  string `json:"photo,omitempty"`
	Role   Role   `json:"role"`

	// PasswordHash is the bcrypt hash of the secret. Never serialized.
	PasswordHash string `json:"-"`

	PlayerID string `json:"player_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the table holding identities.
func (i Identity) TableName() string {
	return "users"
}

// PlayerProfile is the 1:1 companion of an [Identity] holding the issued
// player identifier and a denormalized copy of the photo reference.
type PlayerProfile struct {
	UserID    int64     `json:"user_id"`
	PlayerID  string    `json:"player_id"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the table holding player profiles.
func (p PlayerProfile) TableName() string {
	return "player_profiles"
}

// ProfileChange is the result of a committed profile update.
type ProfileChange struct {
	// PreviousPhoto is the photo reference replaced by the update, or ""
	// when the photo was not touched.
	PreviousPhoto string
}
