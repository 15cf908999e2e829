package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/metrics"
	"github.com/MKhiriev/gsc-identity/internal/store"
	"github.com/samber/oops"
)

// MaxOrdinal is the largest ordinal that fits the five-digit field of a
// player identifier.
const MaxOrdinal = 99999

// PeriodKey returns the "YY-MM" sequence scope containing t, in UTC.
func PeriodKey(t time.Time) string {
	return t.UTC().Format("06-01")
}

// FormatPlayerIdentifier renders PREFIX-YY-MM-NNNNN. Ordinals outside
// 1..MaxOrdinal fail with ErrSequenceOverflow.
func FormatPlayerIdentifier(prefix, period string, ordinal int64) (string, error) {
	if ordinal < 1 || ordinal > MaxOrdinal {
		return "", oops.
			Code(CodeSequenceOverflow).
			With("period", period).
			With("ordinal", ordinal).
			Wrap(fmt.Errorf("%w: %s reached %d", ErrSequenceOverflow, period, ordinal))
	}
	return fmt.Sprintf("%s-%s-%05d", prefix, period, ordinal), nil
}

type playerIDIssuer struct {
	sequences store.SequenceRepository
	prefix    string

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewPlayerIDIssuer(sequences store.SequenceRepository, prefix string, m *metrics.Metrics, logger *logger.Logger) PlayerIDIssuer {
	return &playerIDIssuer{
		sequences: sequences,
		prefix:    prefix,
		metrics:   m,
		logger:    logger,
	}
}

// IssuePlayerIdentifier takes the next ordinal of the period of at. An
// ordinal is consumed even if the caller later fails, so identifiers of a
// period may skip values but never repeat.
func (s *playerIDIssuer) IssuePlayerIdentifier(ctx context.Context, at time.Time) (string, error) {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	period := PeriodKey(at)
	ordinal, err := s.sequences.Next(ctx, period)
	if err != nil {
		log.Err(err).Str("func", "*playerIDIssuer.IssuePlayerIdentifier").Str("period", period).Msg("sequence increment failed")
		return "", storageUnavailable(err)
	}

	playerID, err := FormatPlayerIdentifier(s.prefix, period, ordinal)
	if err != nil {
		log.Error().Str("func", "*playerIDIssuer.IssuePlayerIdentifier").Str("period", period).Int64("ordinal", ordinal).Msg("player sequence overflow")
		return "", err
	}

	s.metrics.RecordPlayerIDIssued(period)
	return playerID, nil
}
