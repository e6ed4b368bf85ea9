package gormdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStorage реализует интерфейс ports.UserStorage с использованием GORM
type UserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *gorm.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

func (s *UserStorage) FindUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.UserNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("gorm select user: %w", err)
	}
	return &user, nil
}

func (s *UserStorage) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.NotFoundError{Entity: "user", ID: email}
	}
	if err != nil {
		return nil, fmt.Errorf("gorm select user by email: %w", err)
	}
	return &user, nil
}

func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("gorm insert user %s: %w", user.Email, domain.ErrConflict)
	}
	if err != nil {
		s.logger.Error("failed to insert user with GORM", "error", err)
		return fmt.Errorf("gorm insert user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (s *UserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"name":             user.Name,
		"password_hash":    user.PasswordHash,
		"phone":            user.Phone,
		"address":          user.Address,
		"no_of_vehicles":   user.NoOfVehicles,
		"no_of_generators": user.NoOfGenerators,
		"no_of_motocycles": user.NoOfMotocycles,
		"updated_at":       user.UpdatedAt,
	})
	if res.Error != nil {
		return fmt.Errorf("gorm update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.UserNotFound(user.ID)
	}
	return nil
}

func (s *UserStorage) IncrementTokenVersion(ctx context.Context, id uuid.UUID) (int, error) {
	var version int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
			"token_version": gorm.Expr("token_version + 1"),
			"updated_at":    time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.UserNotFound(id)
		}
		var u domain.User
		if err := tx.Select("token_version").Where("id = ?", id).First(&u).Error; err != nil {
			return err
		}
		version = u.TokenVersion
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("gorm increment token version: %w", err)
	}
	return version, nil
}
