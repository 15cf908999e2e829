package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/jackc/pgerrcode"
)

type userRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdentity(row rowScanner) (models.Identity, error) {
	var (
		identity                    models.Identity
		email, phone, photo, gender sql.NullString
		playerID                    sql.NullString
		role                        string
	)

	err := row.Scan(
		&identity.UserID,
		&identity.Name,
		&email,
		&phone,
		&identity.PasswordHash,
		&role,
		&photo,
		&gender,
		&identity.CreatedAt,
		&identity.UpdatedAt,
		&playerID,
	)
	if err != nil {
		return models.Identity{}, err
	}

	identity.Email = email.String
	identity.Phone = phone.String
	identity.Photo = photo.String
	identity.Gender = gender.String
	identity.PlayerID = playerID.String
	identity.Role = models.Role(role)

	return identity, nil
}

func (r *userRepository) CreateIdentity(ctx context.Context, identity models.Identity, playerID string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, createUser,
			identity.Name,
			nullString(identity.Email),
			nullString(identity.Phone),
			identity.PasswordHash,
			string(identity.Role),
			nullString(identity.Photo),
			nullString(identity.Gender),
		)
		if err := row.Scan(&identity.UserID, &identity.CreatedAt, &identity.UpdatedAt); err != nil {
			return r.createError(err)
		}

		if _, err := tx.ExecContext(ctx, createPlayerProfile, identity.UserID, playerID, nullString(identity.Photo)); err != nil {
			return r.createError(err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateIdentity").Msg("identity was not created")
		return models.Identity{}, err
	}

	identity.PlayerID = playerID
	return identity, nil
}

func (r *userRepository) createError(err error) error {
	if dup := duplicateError(err); dup != nil {
		return dup
	}
	if postgresError(err) == pgerrcode.CheckViolation && postgresConstraint(err) == "users_login_present" {
		return fmt.Errorf("%w: %w", ErrLoginRequired, err)
	}
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

func (r *userRepository) FindByLogin(ctx context.Context, login string) (models.Identity, error) {
	return r.findOne(ctx, r.db, "*userRepository.FindByLogin", findIdentityByLogin, login)
}

func (r *userRepository) FindByPlayerID(ctx context.Context, playerID string) (models.Identity, error) {
	return r.findOne(ctx, r.db, "*userRepository.FindByPlayerID", findIdentityByPlayerID, playerID)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.Identity, error) {
	return r.findOne(ctx, r.db, "*userRepository.FindByEmail", findIdentityByEmail, email)
}

func (r *userRepository) findOne(ctx context.Context, q rowQueryer, funcName, query string, arg any) (models.Identity, error) {
	identity, err := scanIdentity(q.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Identity{}, ErrNoUserWasFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error looking up identity")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return identity, nil
}

func (r *userRepository) FindLoginConflict(ctx context.Context, email, phone string) (string, error) {
	var field string
	err := r.db.QueryRowContext(ctx, findLoginConflict, nullString(email), nullString(phone)).Scan(&field)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.FindLoginConflict").Msg("error checking login conflict")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return field, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, patch models.ClaimsPatch) (models.ProfileChange, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProfileQuery(userID, patch)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("failed to build query")
		return models.ProfileChange{}, err
	}

	var change models.ProfileChange
	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		var oldPhoto sql.NullString
		if err := tx.QueryRowContext(ctx, lockUserPhoto, userID).Scan(&oldPhoto); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNoUserWasFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return r.createError(err)
		}

		if patch.Photo != nil {
			if _, err := tx.ExecContext(ctx, updatePlayerProfilePhoto, nullString(*patch.Photo), userID); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
			}
			if oldPhoto.String != *patch.Photo {
				change.PreviousPhoto = oldPhoto.String
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("profile was not updated")
		return models.ProfileChange{}, err
	}

	return change, nil
}
