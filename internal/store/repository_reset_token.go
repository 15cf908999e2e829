package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/oklog/ulid/v2"
)

type resetTokenRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewResetTokenRepository(db *DB, logger *logger.Logger) ResetTokenRepository {
	logger.Debug().Msg("creating reset token repository")
	return &resetTokenRepository{
		db:     db,
		logger: logger,
	}
}

func (r *resetTokenRepository) Replace(ctx context.Context, token models.ResetToken) (models.ResetToken, error) {
	log := logger.FromContext(ctx)

	if token.ID == "" {
		token.ID = ulid.Make().String()
	}

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		var ownerID int64
		err := tx.QueryRowContext(ctx, lockResetTokenOwner, token.UserID).Scan(&ownerID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoUserWasFound
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if _, err = tx.ExecContext(ctx, deleteResetTokensByUser, token.UserID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if _, err = tx.ExecContext(ctx, createResetToken, token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.Replace").Int64("user_id", token.UserID).Msg("reset token was not stored")
		return models.ResetToken{}, err
	}

	return token, nil
}

func (r *resetTokenRepository) FindByHash(ctx context.Context, tokenHash string) (models.ResetToken, error) {
	var token models.ResetToken
	err := r.db.QueryRowContext(ctx, findResetTokenByHash, tokenHash).
		Scan(&token.ID, &token.UserID, &token.TokenHash, &token.ExpiresAt, &token.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ResetToken{}, ErrResetTokenNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*resetTokenRepository.FindByHash").Msg("error looking up reset token")
		return models.ResetToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return token, nil
}

func (r *resetTokenRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, deleteResetTokenByHash, tokenHash); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*resetTokenRepository.DeleteByHash").Msg("error deleting reset token")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *resetTokenRepository) Consume(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (int64, error) {
	log := logger.FromContext(ctx)

	var (
		userID    int64
		expiresAt time.Time
		expired   bool
	)
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		// The owner row is locked before the token row, in the same order
		// Replace takes them.
		err := tx.QueryRowContext(ctx, lockResetTokenOwnerByHash, tokenHash).Scan(&userID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResetTokenNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		err = tx.QueryRowContext(ctx, lockResetTokenByHash, tokenHash).Scan(&userID, &expiresAt)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResetTokenNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if !now.Before(expiresAt) {
			expired = true
			if _, err = tx.ExecContext(ctx, deleteResetTokenByHash, tokenHash); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
			}
			return nil
		}

		if _, err = tx.ExecContext(ctx, updateUserPasswordHash, passwordHash, userID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if _, err = tx.ExecContext(ctx, deleteResetTokensByUser, userID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrResetTokenNotFound) {
			log.Err(err).Str("func", "*resetTokenRepository.Consume").Msg("reset token was not consumed")
		}
		return 0, err
	}
	if expired {
		return 0, ErrResetTokenExpired
	}

	return userID, nil
}

func (r *resetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, deleteExpiredResetTokens, now)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*resetTokenRepository.DeleteExpired").Msg("error deleting expired reset tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return deleted, nil
}
