package memory

import (
	"context"
	"testing"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_Users(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	u := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.ErrorIs(t, s.CreateUser(ctx, &domain.User{Email: "alice@example.com"}), domain.ErrConflict)

	got, err := s.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got.Name = "changed"
	again, err := s.FindUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name, "returned users must be copies")

	v, err := s.IncrementTokenVersion(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	upd := *again
	upd.Phone = "555-1234"
	upd.TokenVersion = 0
	require.NoError(t, s.UpdateUser(ctx, &upd))
	again, err = s.FindUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-1234", again.Phone)
	assert.Equal(t, 1, again.TokenVersion)

	_, err = s.FindUser(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStorage_Entries(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	u := &domain.User{ID: uuid.New(), Email: "bob@example.com"}
	require.NoError(t, s.CreateUser(ctx, u))

	_, err := s.InsertEntry(ctx, &domain.FootprintEntry{UserID: uuid.New(), Value: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id1, err := s.InsertEntry(ctx, &domain.FootprintEntry{UserID: u.ID, Value: 20})
	require.NoError(t, err)
	id2, err := s.InsertEntry(ctx, &domain.FootprintEntry{UserID: u.ID, Value: 203})
	require.NoError(t, err)
	assert.Less(t, id1, id2)

	entries, err := s.QueryEntries(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 20.0, entries[0].Value)
	assert.Equal(t, 203.0, entries[1].Value)
}
