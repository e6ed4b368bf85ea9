package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/GoArmGo/CarbonTracker/internal/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

var userRowColumns = []string{
	"id", "name", "email", "password_hash", "phone", "address",
	"no_of_vehicles", "no_of_generators", "no_of_motocycles", "token_version", "created_at", "updated_at",
}

func TestUserStorage_FindUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStorage(db, logger.Discard())

	id := uuid.New()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(id.String(), "Alice Johnson", "alice@example.com", "hash", "555-1234", "123 Apple St", 1, 0, 1, 2, now, now)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,.*FROM users WHERE id = \$1$`).
		WithArgs(id).
		WillReturnRows(rows)

	u, err := s.FindUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "Alice Johnson", u.Name)
	assert.Equal(t, 1, u.NoOfMotocycles)
	assert.Equal(t, 2, u.TokenVersion)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStorage_FindUser_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStorage(db, logger.Discard())

	id := uuid.New()
	mock.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(id).WillReturnError(sql.ErrNoRows)

	_, err := s.FindUser(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStorage_FindUserByEmail_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStorage(db, logger.Discard())

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnError(errors.New("db down"))

	_, err := s.FindUserByEmail(context.Background(), "alice@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "db down")
}

func TestUserStorage_CreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStorage(db, logger.Discard())

	u := &domain.User{ID: uuid.New(), Name: "Bob Smith", Email: "bob@example.com", PasswordHash: "hash"}
	mock.ExpectExec(`(?s)INSERT INTO users \(id, name, email,.*VALUES \(\$1, \$2, \$3,`).
		WithArgs(u.ID, "Bob Smith", "bob@example.com", "hash", "", "",
			0, 0, 0, 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.CreateUser(context.Background(), u))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStorage_CreateUser_Conflict(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStorage(db, logger.Discard())

	mock.ExpectExec(`INSERT INTO users`).WillReturnError(&pq.Error{Code: pqUniqueViolation})

	err := s.CreateUser(context.Background(), &domain.User{ID: uuid.New(), Email: "bob@example.com"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserStorage_UpdateUser_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStorage(db, logger.Discard())

	mock.ExpectExec(`(?s)UPDATE users SET.*WHERE id = \$9`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateUser(context.Background(), &domain.User{ID: uuid.New()})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStorage_IncrementTokenVersion(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewUserStorage(db, logger.Discard())

	id := uuid.New()
	mock.ExpectQuery(`(?s)UPDATE users SET token_version = token_version \+ 1.*RETURNING token_version`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"token_version"}).AddRow(3))

	v, err := s.IncrementTokenVersion(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	mock.ExpectQuery(`RETURNING token_version`).WithArgs(id).WillReturnError(sql.ErrNoRows)
	_, err = s.IncrementTokenVersion(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFootprintStorage_InsertEntry(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewFootprintStorage(db, logger.Discard())

	userID := uuid.New()
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)INSERT INTO footprint_entries \(user_id, date, value, created_at\).*RETURNING id`).
		WithArgs(userID, date, 150.0, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := s.InsertEntry(context.Background(), &domain.FootprintEntry{UserID: userID, Date: date, Value: 150, CreatedAt: date})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFootprintStorage_InsertEntry_UnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewFootprintStorage(db, logger.Discard())

	mock.ExpectQuery(`INSERT INTO footprint_entries`).WillReturnError(&pq.Error{Code: pqForeignKeyViolation})

	_, err := s.InsertEntry(context.Background(), &domain.FootprintEntry{UserID: uuid.New(), Value: 1})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "user", nf.Entity)
}

func TestFootprintStorage_QueryEntries(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewFootprintStorage(db, logger.Discard())

	userID := uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "date", "value", "created_at"}).
		AddRow(int64(1), userID.String(), now, 20.0, now).
		AddRow(int64(2), userID.String(), now, 203.0, now)
	mock.ExpectQuery(`(?s)FROM footprint_entries\s+WHERE user_id = \$1\s+ORDER BY id ASC`).
		WithArgs(userID).
		WillReturnRows(rows)

	entries, err := s.QueryEntries(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, 203.0, entries[1].Value)
}

func TestFootprintStorage_QueryEntries_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewFootprintStorage(db, logger.Discard())

	userID := uuid.New()
	mock.ExpectQuery(`FROM footprint_entries`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "date", "value", "created_at"}))

	entries, err := s.QueryEntries(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
