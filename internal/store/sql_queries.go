package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/gsc-identity/models"
)

const identityColumns = `u.user_id, u.name, u.email, u.phone, u.password_hash, u.role, u.photo, u.gender,
    u.created_at, u.updated_at, p.player_id`

const (
	createUser = `INSERT INTO users (name, email, phone, password_hash, role, photo, gender)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING user_id, created_at, updated_at;`

	createPlayerProfile = `INSERT INTO player_profiles (user_id, player_id, photo)
    VALUES ($1, $2, $3);`

	findIdentityByLogin = `SELECT ` + identityColumns + `
    FROM users u
    LEFT JOIN player_profiles p ON p.user_id = u.user_id
    WHERE u.email = $1 OR u.phone = $1
    ORDER BY u.user_id
    LIMIT 1;`

	findIdentityByEmail = `SELECT ` + identityColumns + `
    FROM users u
    LEFT JOIN player_profiles p ON p.user_id = u.user_id
    WHERE u.email = $1;`

	findIdentityByPlayerID = `SELECT ` + identityColumns + `
    FROM player_profiles p
    JOIN users u ON u.user_id = p.user_id
    WHERE p.player_id = $1;`

	findLoginConflict = `SELECT CASE WHEN email = $1 THEN 'email' ELSE 'phone' END
    FROM users
    WHERE email = $1 OR phone = $2
    LIMIT 1;`

	lockUserPhoto = `SELECT photo FROM users WHERE user_id = $1 FOR UPDATE;`

	updatePlayerProfilePhoto = `UPDATE player_profiles SET photo = $1 WHERE user_id = $2;`

	nextSequenceValue = `INSERT INTO player_sequences (period_key, last_value)
    VALUES ($1, 1)
    ON CONFLICT (period_key) DO UPDATE SET last_value = player_sequences.last_value + 1
    RETURNING last_value;`

	lockResetTokenOwner = `SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE;`

	lockResetTokenOwnerByHash = `SELECT u.user_id
    FROM users u
    WHERE u.user_id = (SELECT t.user_id FROM password_reset_tokens t WHERE t.token_hash = $1)
    FOR UPDATE;`

	deleteResetTokensByUser = `DELETE FROM password_reset_tokens WHERE user_id = $1;`

	createResetToken = `INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at, created_at)
    VALUES ($1, $2, $3, $4, $5);`

	findResetTokenByHash = `SELECT id, user_id, token_hash, expires_at, created_at
    FROM password_reset_tokens
    WHERE token_hash = $1;`

	lockResetTokenByHash = `SELECT user_id, expires_at
    FROM password_reset_tokens
    WHERE token_hash = $1
    FOR UPDATE;`

	deleteResetTokenByHash = `DELETE FROM password_reset_tokens WHERE token_hash = $1;`

	deleteExpiredResetTokens = `DELETE FROM password_reset_tokens WHERE expires_at <= $1;`

	updateUserPasswordHash = `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE user_id = $2;`
)

// buildUpdateProfileQuery builds the UPDATE of the users row for the
// fields present in patch. updated_at is always touched.
func buildUpdateProfileQuery(userID int64, patch models.ClaimsPatch) (string, []any, error) {
	builder := sq.Update("users").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userID})

	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Phone != nil {
		builder = builder.Set("phone", nullString(*patch.Phone))
	}
	if patch.Gender != nil {
		builder = builder.Set("gender", nullString(*patch.Gender))
	}
	if patch.Photo != nil {
		builder = builder.Set("photo", nullString(*patch.Photo))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
