package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/config"
	"github.com/GoArmGo/CarbonTracker/internal/database/memory"
	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/GoArmGo/CarbonTracker/internal/logger"
	"github.com/GoArmGo/CarbonTracker/internal/messaging/payloads"
	"github.com/GoArmGo/CarbonTracker/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyStorage struct {
	*memory.Storage
	err error
}

func (f flakyStorage) InsertEntry(ctx context.Context, e *domain.FootprintEntry) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.Storage.InsertEntry(ctx, e)
}

func TestFootprintSubmissionHandler(t *testing.T) {
	store := memory.NewStorage()
	u := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), u))

	ledger := usecase.NewFootprintLedger(store, store, logger.Discard())
	handle := footprintSubmissionHandler(ledger, logger.Discard())
	ctx := context.Background()

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, handle(ctx, payloads.FootprintSubmissionPayload{UserID: u.ID.String(), Date: date, Value: "12.5"}))

	// окончательные ошибки подтверждаются
	assert.NoError(t, handle(ctx, payloads.FootprintSubmissionPayload{UserID: u.ID.String(), Value: "abc"}))
	assert.NoError(t, handle(ctx, payloads.FootprintSubmissionPayload{UserID: uuid.NewString(), Value: "1"}))
	assert.NoError(t, handle(ctx, payloads.FootprintSubmissionPayload{UserID: "garbage", Value: "1"}))

	entries, err := ledger.EntriesFor(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 12.5, entries[0].Value)
	assert.Equal(t, date, entries[0].Date)
}

func TestFootprintSubmissionHandler_InfraErrorIsReturned(t *testing.T) {
	store := memory.NewStorage()
	u := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), u))

	boom := errors.New("disk full")
	ledger := usecase.NewFootprintLedger(store, flakyStorage{Storage: store, err: boom}, logger.Discard())
	handle := footprintSubmissionHandler(ledger, logger.Discard())

	err := handle(context.Background(), payloads.FootprintSubmissionPayload{UserID: u.ID.String(), Value: "1"})
	assert.ErrorIs(t, err, boom)
}

func TestRun_WorkerWithoutQueue(t *testing.T) {
	a := NewApp(&config.Config{}, logger.Discard(), Components{})
	err := a.Run(context.Background(), ModeWorker)
	assert.ErrorIs(t, err, errQueueDisabled)
}

func TestRun_UnknownMode(t *testing.T) {
	closed := false
	a := NewApp(&config.Config{}, logger.Discard(), Components{}, func() error { closed = true; return nil })

	err := a.Run(context.Background(), "bogus")
	require.Error(t, err)
	assert.True(t, closed, "resources must be released")
}

func TestRun_Seed(t *testing.T) {
	store := memory.NewStorage()
	ledger := usecase.NewFootprintLedger(store, store, logger.Discard())
	cfg := &config.Config{SeedFactoryEntries: 5}
	a := NewApp(cfg, logger.Discard(), Components{Ledger: ledger, Seeder: usecase.NewSeeder(store, ledger, logger.Discard())})

	require.NoError(t, a.Run(context.Background(), ModeSeed))

	alice, err := store.FindUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", alice.Name)
}

func TestShutdownJoinsErrors(t *testing.T) {
	var order []int
	a := NewApp(&config.Config{}, logger.Discard(), Components{},
		func() error { order = append(order, 1); return errors.New("first") },
		func() error { order = append(order, 2); return nil },
	)

	err := a.Shutdown()
	require.Error(t, err)
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, a.Shutdown(), "second shutdown is a no-op")
}
