// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/gsc-identity/models"
)

const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldPassword   = "password"
	FieldGender     = "gender"
	FieldPhoto      = "photo"
	FieldIdentifier = "identifier"
	FieldToken      = "token"
	FieldPatch      = "patch"
	FieldRefs       = "refs"
)

const (
	maxNameLength     = 100
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
	minPhoneDigits   = 7
	maxPhoneDigits   = 15
	maxPhotoRefLen   = 512
	maxPurgeRefs     = 1000
)

var allowedGenders = []string{"male", "female", "other"}

// IdentityValidator validates identity requests. Inputs are expected in
// normalized form.
type IdentityValidator struct {
}

func NewIdentityValidator() Validator {
	return &IdentityValidator{}
}

func (v *IdentityValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	case models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(*value, fields...)

	case models.ClaimsPatch:
		return v.validateClaimsPatch(value, fields...)
	case *models.ClaimsPatch:
		return v.validateClaimsPatch(*value, fields...)

	case models.PurgeArtifactsRequest:
		return v.validatePurgeRequest(value, fields...)
	case *models.PurgeArtifactsRequest:
		return v.validatePurgeRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *IdentityValidator) validateRegisterRequest(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPhone, FieldPassword, FieldGender, FieldPhoto}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			err = validateName(req.Name)
		case FieldEmail:
			if req.Email == "" && req.Phone == "" {
				err = ErrNoLoginIdentifier
			} else if req.Email != "" {
				err = ValidateEmail(req.Email)
			}
		case FieldPhone:
			if req.Phone != "" {
				err = validatePhone(req.Phone)
			}
		case FieldPassword:
			err = ValidatePassword(req.Password)
		case FieldGender:
			err = validateGender(req.Gender)
		case FieldPhoto:
			err = validatePhotoRef(req.Photo)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return fieldError(f, err)
		}
	}

	return nil
}

func (v *IdentityValidator) validateLoginRequest(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIdentifier, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldIdentifier:
			if strings.TrimSpace(req.Identifier) == "" {
				return fieldError(f, ErrEmptyIdentifier)
			}
		case FieldPassword:
			if req.Password == "" {
				return fieldError(f, ErrEmptyPassword)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *IdentityValidator) validateResetPasswordRequest(req models.ResetPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldToken, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldToken:
			if strings.TrimSpace(req.Token) == "" {
				return fieldError(f, ErrEmptyToken)
			}
		case FieldPassword:
			if err := ValidatePassword(req.Password); err != nil {
				return fieldError(f, err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *IdentityValidator) validateClaimsPatch(patch models.ClaimsPatch, fields ...string) error {
	if len(fields) == 0 {
		if patch.IsEmpty() {
			return fieldError(FieldPatch, ErrNoFieldsToUpdate)
		}
		fields = []string{FieldName, FieldPhone, FieldGender, FieldPhoto}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			if patch.Name != nil {
				err = validateName(*patch.Name)
			}
		case FieldPhone:
			if patch.Phone != nil && *patch.Phone != "" {
				err = validatePhone(*patch.Phone)
			}
		case FieldGender:
			if patch.Gender != nil {
				err = validateGender(*patch.Gender)
			}
		case FieldPhoto:
			if patch.Photo != nil {
				err = validatePhotoRef(*patch.Photo)
			}
		default:
			return ErrUnknownField
		}
		if err != nil {
			return fieldError(f, err)
		}
	}

	return nil
}

func (v *IdentityValidator) validatePurgeRequest(req models.PurgeArtifactsRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRefs}
	}

	for _, f := range fields {
		switch f {
		case FieldRefs:
			if len(req.Refs) == 0 {
				return fieldError(f, ErrEmptyRefs)
			}
			if len(req.Refs) > maxPurgeRefs {
				return fieldError(f, ErrTooManyRefs)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidatePassword checks a new secret against the length policy.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// ValidateEmail reports whether email is a bare, normalized address.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ErrInvalidEmail
	}
	return nil
}

func validatePhone(phone string) error {
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return ErrInvalidPhone
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return ErrInvalidPhone
		}
	}
	return nil
}

func validateGender(gender string) error {
	if gender == "" {
		return nil
	}
	for _, g := range allowedGenders {
		if gender == g {
			return nil
		}
	}
	return ErrInvalidGender
}

func validatePhotoRef(ref string) error {
	if len(ref) > maxPhotoRefLen || strings.ContainsRune(ref, 0) {
		return ErrInvalidPhotoRef
	}
	return nil
}
