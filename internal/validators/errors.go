package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName         = errors.New("name is required")
	ErrNameTooLong       = errors.New("name is too long")
	ErrNoLoginIdentifier = errors.New("email or phone is required")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidPhone      = errors.New("invalid phone")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrPasswordTooLong   = errors.New("password is too long")
	ErrInvalidGender     = errors.New("invalid gender")
	ErrInvalidPhotoRef   = errors.New("invalid photo reference")
	ErrEmptyIdentifier   = errors.New("login identifier is required")
	ErrEmptyPassword     = errors.New("password is required")
	ErrEmptyToken        = errors.New("token is required")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
	ErrEmptyRefs         = errors.New("refs list cannot be empty")
	ErrTooManyRefs       = errors.New("too many refs")
)

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// Field returns the field recorded in err, or "" when err carries none.
func Field(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
