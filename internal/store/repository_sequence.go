package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/sethvargo/go-retry"
)

const (
	sequenceMaxRetries = 3
	sequenceBaseDelay  = 20 * time.Millisecond
)

// sequenceRepository issues per-period ordinals with a single upsert
// statement, so concurrent callers never observe the same value.
type sequenceRepository struct {
	db         *DB
	maxRetries uint64
	baseDelay  time.Duration
	logger     *logger.Logger
}

func NewSequenceRepository(db *DB, logger *logger.Logger) SequenceRepository {
	logger.Debug().Msg("creating sequence repository")
	return &sequenceRepository{
		db:         db,
		maxRetries: sequenceMaxRetries,
		baseDelay:  sequenceBaseDelay,
		logger:     logger,
	}
}

func (r *sequenceRepository) Next(ctx context.Context, periodKey string) (int64, error) {
	log := logger.FromContext(ctx)

	var value int64
	backoff := retry.WithMaxRetries(r.maxRetries, retry.NewExponential(r.baseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := r.db.QueryRowContext(ctx, nextSequenceValue, periodKey).Scan(&value)
		if err == nil {
			return nil
		}

		if r.db.errorClassificator.Classify(err) == Retryable && statementNotApplied(err) {
			log.Warn().Err(err).Str("func", "*sequenceRepository.Next").Str("period", periodKey).Msg("retrying sequence increment")
			return retry.RetryableError(err)
		}

		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*sequenceRepository.Next").Str("period", periodKey).Msg("sequence increment failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}
