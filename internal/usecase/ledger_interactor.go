package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/core/ports"
	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
)

const lockStripes = 64

// userLocks сериализует запись по одному пользователю.
// Пользователи распределяются по фиксированному числу RWMutex.
type userLocks struct {
	stripes [lockStripes]sync.RWMutex
}

func (l *userLocks) forUser(id uuid.UUID) *sync.RWMutex {
	h := fnv.New32a()
	_, _ = h.Write(id[:])
	return &l.stripes[h.Sum32()%lockStripes]
}

// footprintLedger implements FootprintLedger
type footprintLedger struct {
	userStorage      ports.UserStorage
	footprintStorage ports.FootprintStorage
	locks            *userLocks
	now              func() time.Time
	logger           *slog.Logger
}

// LedgerOption настраивает журнал.
type LedgerOption func(*footprintLedger)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *footprintLedger) { l.now = now }
}

// NewFootprintLedger создает журнал поверх портов хранилища
func NewFootprintLedger(
	userStorage ports.UserStorage,
	footprintStorage ports.FootprintStorage,
	logger *slog.Logger,
	opts ...LedgerOption,
) FootprintLedger {
	l := &footprintLedger{
		userStorage:      userStorage,
		footprintStorage: footprintStorage,
		locks:            &userLocks{},
		now:              time.Now,
		logger:           logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *footprintLedger) Append(ctx context.Context, userID uuid.UUID, date time.Time, rawValue string) (*domain.FootprintEntry, error) {
	mu := l.locks.forUser(userID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := l.userStorage.FindUser(ctx, userID); err != nil {
		return nil, err
	}
	value, err := domain.ParseFootprintValue(rawValue)
	if err != nil {
		l.logger.Warn("rejected footprint value", "user_id", userID, "value", rawValue, "error", err)
		return nil, err
	}
	return l.insert(ctx, userID, date, value)
}

func (l *footprintLedger) AppendValue(ctx context.Context, userID uuid.UUID, date time.Time, value float64) (*domain.FootprintEntry, error) {
	mu := l.locks.forUser(userID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := l.userStorage.FindUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := domain.CheckFootprintValue(value); err != nil {
		l.logger.Warn("rejected footprint value", "user_id", userID, "value", value, "error", err)
		return nil, err
	}
	return l.insert(ctx, userID, date, value)
}

// insert вызывается под блокировкой пользователя.
func (l *footprintLedger) insert(ctx context.Context, userID uuid.UUID, date time.Time, value float64) (*domain.FootprintEntry, error) {
	now := l.now().UTC()
	if date.IsZero() {
		date = now
	}
	entry := &domain.FootprintEntry{
		UserID:    userID,
		Date:      date.UTC(),
		Value:     value,
		CreatedAt: now,
	}

	id, err := l.footprintStorage.InsertEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("append footprint for user %s: %w", userID, err)
	}
	entry.ID = id

	l.logger.Info("footprint appended", "user_id", userID, "entry_id", id, "value", value)
	return entry, nil
}

func (l *footprintLedger) EntriesFor(ctx context.Context, userID uuid.UUID) ([]domain.FootprintEntry, error) {
	entries, _, err := l.Snapshot(ctx, userID)
	return entries, err
}

func (l *footprintLedger) AverageFor(ctx context.Context, userID uuid.UUID) (float64, error) {
	_, avg, err := l.Snapshot(ctx, userID)
	return avg, err
}

func (l *footprintLedger) Snapshot(ctx context.Context, userID uuid.UUID) ([]domain.FootprintEntry, float64, error) {
	mu := l.locks.forUser(userID)
	mu.RLock()
	defer mu.RUnlock()

	if _, err := l.userStorage.FindUser(ctx, userID); err != nil {
		return nil, 0, err
	}
	entries, err := l.footprintStorage.QueryEntries(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("query footprints for user %s: %w", userID, err)
	}
	if entries == nil {
		entries = []domain.FootprintEntry{}
	}
	return entries, domain.Average(entries), nil
}
