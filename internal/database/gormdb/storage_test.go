package gormdb

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/GoArmGo/CarbonTracker/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, s *UserStorage, email string) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	u := &domain.User{ID: uuid.New(), Name: "Alice Johnson", Email: email, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestUserStorage_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStorage(db, logger.Discard())
	ctx := context.Background()

	u := seedUser(t, s, "alice@example.com")

	got, err := s.FindUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	got, err = s.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.FindUser(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.FindUserByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStorage_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStorage(db, logger.Discard())

	seedUser(t, s, "bob@example.com")
	err := s.CreateUser(context.Background(), &domain.User{ID: uuid.New(), Name: "Bob", Email: "bob@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserStorage_UpdateAndTokenVersion(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStorage(db, logger.Discard())
	ctx := context.Background()

	u := seedUser(t, s, "alice@example.com")
	u.Phone = "555-1234"
	u.NoOfVehicles = 2
	require.NoError(t, s.UpdateUser(ctx, u))

	got, err := s.FindUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-1234", got.Phone)
	assert.Equal(t, 2, got.NoOfVehicles)

	v, err := s.IncrementTokenVersion(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = s.IncrementTokenVersion(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = s.IncrementTokenVersion(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.UpdateUser(ctx, &domain.User{ID: uuid.New()}), domain.ErrNotFound)
}

func TestFootprintStorage_InsertPreservesOrder(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStorage(db, logger.Discard())
	s := NewFootprintStorage(db, logger.Discard())
	ctx := context.Background()

	alice := seedUser(t, users, "alice@example.com")
	bob := seedUser(t, users, "bob@example.com")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	values := []float64{20, 203, 7, 67, 60, 10}
	var ids []int64
	for i, v := range values {
		// даты в обратном порядке: порядок истории определяется вставкой
		id, err := s.InsertEntry(ctx, &domain.FootprintEntry{UserID: bob.ID, Date: base.AddDate(0, 0, -i), Value: v})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err := s.InsertEntry(ctx, &domain.FootprintEntry{UserID: alice.ID, Date: base, Value: 150})
	require.NoError(t, err)

	entries, err := s.QueryEntries(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, entries, len(values))
	for i, e := range entries {
		assert.Equal(t, ids[i], e.ID)
		assert.Equal(t, values[i], e.Value)
		assert.Equal(t, bob.ID, e.UserID)
	}

	empty, err := s.QueryEntries(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, s.Ping(ctx))
}
