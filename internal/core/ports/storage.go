package ports

import (
	"context"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
// Отсутствующий пользователь возвращается как *domain.NotFoundError.
type UserStorage interface {
	FindUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// CreateUser возвращает domain.ErrConflict, если email уже занят
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) error
	IncrementTokenVersion(ctx context.Context, id uuid.UUID) (int, error)
}

// FootprintStorage определяет методы журнала замеров.
type FootprintStorage interface {
	// InsertEntry сохраняет замер и возвращает назначенный ID
	InsertEntry(ctx context.Context, entry *domain.FootprintEntry) (int64, error)
	// QueryEntries возвращает замеры пользователя в порядке добавления
	QueryEntries(ctx context.Context, userID uuid.UUID) ([]domain.FootprintEntry, error)
}

// Pinger реализуется хранилищами, которые умеют проверять соединение.
type Pinger interface {
	Ping(ctx context.Context) error
}
