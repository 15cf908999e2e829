package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells whether an operation may be retried.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota

	Retryable
)

// PostgresErrorClassifier classifies errors by their SQLSTATE.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return NonRetryable
}

func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.CannotConnectNow:
		return Retryable

	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return Retryable
	}

	return NonRetryable
}

// statementNotApplied reports whether err proves the statement had no
// effect. A dropped connection may have committed the statement already.
func statementNotApplied(err error) bool {
	switch postgresError(err) {
	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow:
		return true
	}
	return false
}

// duplicateError maps a unique violation to the colliding identifier.
func duplicateError(err error) error {
	if postgresError(err) != pgerrcode.UniqueViolation {
		return nil
	}

	switch postgresConstraint(err) {
	case "users_email_key":
		return ErrEmailAlreadyExists
	case "users_phone_key":
		return ErrPhoneAlreadyExists
	case "player_profiles_player_id_key":
		return ErrPlayerIDAlreadyExists
	default:
		return ErrAlreadyExists
	}
}
