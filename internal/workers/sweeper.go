package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/gsc-identity/internal/logger"
)

// ResetTokenSweeper periodically removes expired reset tokens so dead rows
// do not accumulate between validations.
type ResetTokenSweeper struct {
	purger   ExpiredTokenPurger
	interval time.Duration

	logger *logger.Logger
}

func NewResetTokenSweeper(purger ExpiredTokenPurger, interval time.Duration, logger *logger.Logger) *ResetTokenSweeper {
	return &ResetTokenSweeper{
		purger:   purger,
		interval: interval,
		logger:   logger,
	}
}

func (s *ResetTokenSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ResetTokenSweeper) sweep(ctx context.Context) {
	n, err := s.purger.PurgeExpired(s.logger.WithContext(ctx))
	if err != nil {
		s.logger.Err(err).Str("func", "*ResetTokenSweeper.sweep").Msg("failed to purge expired reset tokens")
		return
	}
	if n > 0 {
		s.logger.Info().Int64("deleted", n).Msg("expired reset tokens purged")
	}
}
