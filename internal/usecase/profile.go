package usecase

import (
	"context"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
)

// ProfileUseCase собирает и изменяет профиль пользователя.
type ProfileUseCase interface {
	// Build — чистое чтение: пользователь и журнал не изменяются
	Build(ctx context.Context, user *domain.User) (*domain.ProfileSnapshot, error)
	BuildByID(ctx context.Context, id uuid.UUID) (*domain.ProfileSnapshot, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (*domain.ProfileSnapshot, error)
	ChangePassword(ctx context.Context, id uuid.UUID, change domain.PasswordChange) error
}
