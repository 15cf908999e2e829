package models

// RegisterRequest carries the registration form.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Gender   string `json:"gender,omitempty"`
	Photo    string `json:"photo,omitempty"`
}

// LoginRequest carries a login identifier (email, phone or player ID)
// and the secret.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// ForgotPasswordRequest starts the reset flow for an email address.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest consumes a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// PurgeArtifactsRequest lists stored file references to remove.
type PurgeArtifactsRequest struct {
	Refs []string `json:"refs"`
}

// ResetTokenStatus is the body of a reset token check.
type ResetTokenStatus struct {
	Valid bool `json:"valid"`
}

// ErrorResponse is the body written for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
