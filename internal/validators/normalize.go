package validators

import (
	"strings"

	"github.com/MKhiriev/gsc-identity/models"
)

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips common separators from a phone number, keeping
// digits and a single leading '+'. ok is false when anything else remains.
func NormalizePhone(phone string) (string, bool) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", false
	}

	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", false
		}
	}
	return b.String(), true
}

// NormalizeIdentifier returns the form of a login identifier used for the
// email/phone lookup. Player identifiers are matched upper-cased by the
// caller when that lookup misses.
func NormalizeIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return NormalizeEmail(identifier)
	}
	if phone, ok := NormalizePhone(identifier); ok {
		return phone
	}
	return identifier
}

// NormalizeRegisterRequest returns req with canonical email, phone and
// gender. Unparseable phones are left trimmed for Validate to reject.
func NormalizeRegisterRequest(req models.RegisterRequest) models.RegisterRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)
	if phone, ok := NormalizePhone(req.Phone); ok {
		req.Phone = phone
	} else {
		req.Phone = strings.TrimSpace(req.Phone)
	}
	req.Gender = strings.ToLower(strings.TrimSpace(req.Gender))
	req.Photo = strings.TrimSpace(req.Photo)
	return req
}

// NormalizeClaimsPatch applies the registration normalization rules to the
// fields present in patch.
func NormalizeClaimsPatch(patch models.ClaimsPatch) models.ClaimsPatch {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if patch.Phone != nil {
		phone, ok := NormalizePhone(*patch.Phone)
		if !ok {
			phone = strings.TrimSpace(*patch.Phone)
		}
		patch.Phone = &phone
	}
	if patch.Gender != nil {
		gender := strings.ToLower(strings.TrimSpace(*patch.Gender))
		patch.Gender = &gender
	}
	if patch.Photo != nil {
		photo := strings.TrimSpace(*patch.Photo)
		patch.Photo = &photo
	}
	return patch
}
