package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// FootprintStorage реализует ports.FootprintStorage поверх sqlx
type FootprintStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewFootprintStorage(db *sqlx.DB, logger *slog.Logger) *FootprintStorage {
	return &FootprintStorage{db: db, logger: logger}
}

// InsertEntry сохраняет замер. ID назначается последовательностью БД.
func (s *FootprintStorage) InsertEntry(ctx context.Context, entry *domain.FootprintEntry) (int64, error) {
	start := time.Now()

	var id int64
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO footprint_entries (user_id, date, value, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, entry.UserID, entry.Date, entry.Value, entry.CreatedAt).Scan(&id)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return 0, domain.UserNotFound(entry.UserID)
		}
		s.logger.Error("failed to insert footprint entry", "user_id", entry.UserID, "error", err)
		return 0, fmt.Errorf("insert footprint entry: %w", err)
	}

	s.logger.Info("footprint entry inserted",
		"entry_id", id,
		"user_id", entry.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return id, nil
}

// QueryEntries возвращает замеры пользователя в порядке добавления.
func (s *FootprintStorage) QueryEntries(ctx context.Context, userID uuid.UUID) ([]domain.FootprintEntry, error) {
	start := time.Now()

	entries := []domain.FootprintEntry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, user_id, date, value, created_at
		FROM footprint_entries
		WHERE user_id = $1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		s.logger.Error("failed to select footprint entries", "user_id", userID, "error", err)
		return nil, fmt.Errorf("select footprint entries: %w", err)
	}

	s.logger.Debug("footprint entries selected",
		"user_id", userID,
		"count", len(entries),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return entries, nil
}
