package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identityRowColumns = []string{
	"user_id", "name", "email", "phone", "password_hash", "role", "photo", "gender",
	"created_at", "updated_at", "player_id",
}

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewDB(conn, logger.Nop()), mock
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

func adaRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(identityRowColumns).
		AddRow(int64(7), "Ada", "ada@example.com", "+15550001", "hash", "organizer", "photos/ada.png", nil,
			now, now, "GGF-GSC-25-11-00007")
}

func TestCreateIdentity_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Ada", "ada@example.com", nil, "hash", "user", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_at", "updated_at"}).AddRow(int64(7), now, now))
	mock.ExpectExec("INSERT INTO player_profiles").
		WithArgs(int64(7), "GGF-GSC-25-11-00007", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateIdentity(context.Background(), models.Identity{
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Role:         models.RoleUser,
	}, "GGF-GSC-25-11-00007")

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, "GGF-GSC-25-11-00007", created.PlayerID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIdentity_DuplicateEmail(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").WillReturnError(uniqueViolation("users_email_key"))
	mock.ExpectRollback()

	_, err := repo.CreateIdentity(context.Background(), models.Identity{Name: "Ada", Email: "ada@example.com"}, "GGF-GSC-25-11-00001")

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIdentity_ProfileFailureRollsBackUser(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_at", "updated_at"}).AddRow(int64(9), now, now))
	mock.ExpectExec("INSERT INTO player_profiles").WillReturnError(uniqueViolation("player_profiles_player_id_key"))
	mock.ExpectRollback()

	_, err := repo.CreateIdentity(context.Background(), models.Identity{Name: "Bob", Phone: "+15550002"}, "GGF-GSC-25-11-00002")

	assert.ErrorIs(t, err, ErrPlayerIDAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIdentity_CommitFailure(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_at", "updated_at"}).AddRow(int64(9), now, now))
	mock.ExpectExec("INSERT INTO player_profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateIdentity(context.Background(), models.Identity{Name: "Bob", Phone: "+15550002"}, "GGF-GSC-25-11-00002")

	assert.ErrorIs(t, err, ErrCommitingTransaction)
}

func TestCreateIdentity_BeginFailure(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := repo.CreateIdentity(context.Background(), models.Identity{Name: "Bob"}, "GGF-GSC-25-11-00002")

	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestFindByLogin_Found(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(`WHERE u.email = \$1 OR u.phone = \$1`).
		WithArgs("+15550001").
		WillReturnRows(adaRow(now))

	identity, err := repo.FindByLogin(context.Background(), "+15550001")

	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, "+15550001", identity.Phone)
	assert.Equal(t, models.RoleOrganizer, identity.Role)
	assert.Equal(t, "", identity.Gender)
	assert.Equal(t, "GGF-GSC-25-11-00007", identity.PlayerID)
}

func TestFindByLogin_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users u").WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByLogin(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindByLogin_DBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users u").WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.FindByLogin(context.Background(), "ada@example.com")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindByPlayerID_Found(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`WHERE p.player_id = \$1`).
		WithArgs("GGF-GSC-25-11-00007").
		WillReturnRows(adaRow(time.Now()))

	identity, err := repo.FindByPlayerID(context.Background(), "GGF-GSC-25-11-00007")
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
}

func TestFindByEmail_MatchesEmailOnly(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`WHERE u.email = \$1;`).
		WithArgs("ada@example.com").
		WillReturnRows(adaRow(time.Now()))

	identity, err := repo.FindByEmail(context.Background(), "ada@example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(findIdentityByEmail)).WithArgs("+15550001").
		WillReturnRows(sqlmock.NewRows(identityRowColumns))

	_, err := repo.FindByEmail(context.Background(), "+15550001")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindLoginConflict(t *testing.T) {
	t.Run("email taken", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery("SELECT CASE WHEN email").
			WithArgs("ada@example.com", nil).
			WillReturnRows(sqlmock.NewRows([]string{"field"}).AddRow("email"))

		field, err := repo.FindLoginConflict(context.Background(), "ada@example.com", "")
		require.NoError(t, err)
		assert.Equal(t, "email", field)
	})

	t.Run("free", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery("SELECT CASE WHEN email").
			WithArgs("new@example.com", "+15559999").
			WillReturnRows(sqlmock.NewRows([]string{"field"}))

		field, err := repo.FindLoginConflict(context.Background(), "new@example.com", "+15559999")
		require.NoError(t, err)
		assert.Empty(t, field)
	})
}

func TestUpdateProfile_PhotoLockStep(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	newPhoto := "photos/new.png"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockUserPhoto)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"photo"}).AddRow("photos/ada.png"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET updated_at = NOW(), photo = $1 WHERE user_id = $2")).
		WithArgs(newPhoto, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updatePlayerProfilePhoto)).
		WithArgs(newPhoto, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	change, err := repo.UpdateProfile(context.Background(), 7, models.ClaimsPatch{Photo: &newPhoto})

	require.NoError(t, err)
	assert.Equal(t, "photos/ada.png", change.PreviousPhoto)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_NameOnlyLeavesProfileAlone(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	name := "Ada L."

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockUserPhoto)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"photo"}).AddRow("photos/ada.png"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET updated_at = NOW(), name = $1 WHERE user_id = $2")).
		WithArgs(name, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	change, err := repo.UpdateProfile(context.Background(), 7, models.ClaimsPatch{Name: &name})

	require.NoError(t, err)
	assert.Empty(t, change.PreviousPhoto)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_ProfileFailureRollsBack(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	newPhoto := "photos/new.png"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockUserPhoto)).
		WillReturnRows(sqlmock.NewRows([]string{"photo"}).AddRow(nil))
	mock.ExpectExec("UPDATE users SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updatePlayerProfilePhoto)).WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectRollback()

	_, err := repo.UpdateProfile(context.Background(), 7, models.ClaimsPatch{Photo: &newPhoto})

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_DuplicatePhone(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	phone := "+15550002"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockUserPhoto)).
		WillReturnRows(sqlmock.NewRows([]string{"photo"}).AddRow(nil))
	mock.ExpectExec("UPDATE users SET").WillReturnError(uniqueViolation("users_phone_key"))
	mock.ExpectRollback()

	_, err := repo.UpdateProfile(context.Background(), 7, models.ClaimsPatch{Phone: &phone})

	assert.ErrorIs(t, err, ErrPhoneAlreadyExists)
}

func TestUpdateProfile_ClearingLastLoginIsRejected(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	cleared := ""

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockUserPhoto)).
		WillReturnRows(sqlmock.NewRows([]string{"photo"}).AddRow(nil))
	mock.ExpectExec("UPDATE users SET").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "users_login_present"})
	mock.ExpectRollback()

	_, err := repo.UpdateProfile(context.Background(), 7, models.ClaimsPatch{Phone: &cleared})

	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.NotErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	name := "x"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockUserPhoto)).WillReturnRows(sqlmock.NewRows([]string{"photo"}))
	mock.ExpectRollback()

	_, err := repo.UpdateProfile(context.Background(), 404, models.ClaimsPatch{Name: &name})

	assert.ErrorIs(t, err, ErrNoUserWasFound)
}
