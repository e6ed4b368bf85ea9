package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// коды ошибок PostgreSQL
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

const userColumns = `id, name, email, password_hash, phone, address,
	no_of_vehicles, no_of_generators, no_of_motocycles, token_version, created_at, updated_at`

// UserStorage реализует ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// FindUser получает пользователя по ID.
func (s *UserStorage) FindUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.UserNotFound(id)
	}
	if err != nil {
		s.logger.Error("failed to select user", "user_id", id, "error", err)
		return nil, fmt.Errorf("select user: %w", err)
	}

	s.logger.Debug("user selected", "user_id", id, "duration_ms", time.Since(start).Milliseconds())
	return &user, nil
}

// FindUserByEmail получает пользователя по email.
func (s *UserStorage) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "user", ID: email}
	}
	if err != nil {
		s.logger.Error("failed to select user by email", "error", err)
		return nil, fmt.Errorf("select user by email: %w", err)
	}

	s.logger.Debug("user selected by email", "user_id", user.ID, "duration_ms", time.Since(start).Milliseconds())
	return &user, nil
}

// CreateUser сохраняет нового пользователя.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, phone, address,
			no_of_vehicles, no_of_generators, no_of_motocycles, token_version, created_at, updated_at)
		VALUES (:id, :name, :email, :password_hash, :phone, :address,
			:no_of_vehicles, :no_of_generators, :no_of_motocycles, :token_version, :created_at, :updated_at)
	`, user)
	if err != nil {
		if isPQCode(err, pqUniqueViolation) {
			return fmt.Errorf("insert user %s: %w", user.Email, domain.ErrConflict)
		}
		s.logger.Error("failed to insert user", "error", err)
		return fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// UpdateUser сохраняет поля профиля и хэш пароля.
func (s *UserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	res, err := s.db.NamedExecContext(ctx, `
		UPDATE users SET
			name = :name,
			password_hash = :password_hash,
			phone = :phone,
			address = :address,
			no_of_vehicles = :no_of_vehicles,
			no_of_generators = :no_of_generators,
			no_of_motocycles = :no_of_motocycles,
			updated_at = :updated_at
		WHERE id = :id
	`, user)
	if err != nil {
		s.logger.Error("failed to update user", "user_id", user.ID, "error", err)
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows affected: %w", err)
	}
	if n == 0 {
		return domain.UserNotFound(user.ID)
	}

	s.logger.Info("user updated",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// IncrementTokenVersion увеличивает версию токенов, отзывая все выданные токены.
func (s *UserStorage) IncrementTokenVersion(ctx context.Context, id uuid.UUID) (int, error) {
	start := time.Now()

	var version int
	err := s.db.GetContext(ctx, &version, `
		UPDATE users SET token_version = token_version + 1, updated_at = now()
		WHERE id = $1
		RETURNING token_version
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.UserNotFound(id)
	}
	if err != nil {
		s.logger.Error("failed to increment token version", "user_id", id, "error", err)
		return 0, fmt.Errorf("increment token version: %w", err)
	}

	s.logger.Info("token version incremented",
		"user_id", id,
		"token_version", version,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return version, nil
}

func isPQCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
