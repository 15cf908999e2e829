package adapter

import (
	"context"

	"github.com/MKhiriev/gsc-identity/internal/logger"
)

// logSender stands in for the relay in development. It never writes
// the reset token or its link to the log.
type logSender struct {
	logger *logger.Logger
}

func NewLogSender(logger *logger.Logger) *logSender {
	return &logSender{logger: logger}
}

func (s *logSender) SendWelcome(ctx context.Context, email, name, playerID string) error {
	if email == "" {
		return ErrEmptyRecipient
	}
	s.logger.Info().
		Str("to", email).
		Str("player_id", playerID).
		Msg("welcome notification")
	return nil
}

func (s *logSender) SendPasswordReset(ctx context.Context, email, token string) error {
	if email == "" {
		return ErrEmptyRecipient
	}
	s.logger.Info().
		Str("to", email).
		Msg("password reset notification")
	return nil
}
