package adapter

import "errors"

var (
	ErrEmptyAddress    = errors.New("empty address")
	ErrInvalidAddress  = errors.New("address must include host and scheme")
	ErrMailerRejected  = errors.New("mail relay rejected the message")
	ErrMailerUnhealthy = errors.New("mail relay unavailable")
	ErrEmptyRecipient  = errors.New("empty recipient")
)
