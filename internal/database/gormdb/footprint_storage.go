package gormdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FootprintStorage хранит журнал замеров с помощью GORM
type FootprintStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewFootprintStorage(db *gorm.DB, logger *slog.Logger) *FootprintStorage {
	return &FootprintStorage{db: db, logger: logger}
}

// InsertEntry сохраняет замер, ID назначает БД.
func (s *FootprintStorage) InsertEntry(ctx context.Context, entry *domain.FootprintEntry) (int64, error) {
	row := *entry
	row.ID = 0

	err := s.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return 0, domain.UserNotFound(entry.UserID)
	}
	if err != nil {
		s.logger.Error("failed to insert footprint entry with GORM", "user_id", entry.UserID, "error", err)
		return 0, fmt.Errorf("gorm insert footprint entry: %w", err)
	}
	return row.ID, nil
}

// QueryEntries возвращает замеры пользователя по возрастанию ID.
func (s *FootprintStorage) QueryEntries(ctx context.Context, userID uuid.UUID) ([]domain.FootprintEntry, error) {
	entries := []domain.FootprintEntry{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("gorm select footprint entries: %w", err)
	}
	return entries, nil
}

// Ping проверяет соединение с БД.
func (s *FootprintStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
