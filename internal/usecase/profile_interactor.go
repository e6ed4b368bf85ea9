package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/auth"
	"github.com/GoArmGo/CarbonTracker/internal/core/ports"
	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
)

// profileUseCase implements ProfileUseCase
type profileUseCase struct {
	userStorage ports.UserStorage
	ledger      FootprintLedger
	now         func() time.Time
	logger      *slog.Logger
}

func NewProfileUseCase(userStorage ports.UserStorage, ledger FootprintLedger, logger *slog.Logger) ProfileUseCase {
	return &profileUseCase{
		userStorage: userStorage,
		ledger:      ledger,
		now:         time.Now,
		logger:      logger,
	}
}

func (uc *profileUseCase) Build(ctx context.Context, user *domain.User) (*domain.ProfileSnapshot, error) {
	entries, avg, err := uc.ledger.Snapshot(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	snapshot := domain.NewProfileSnapshot(*user, entries, avg)
	return &snapshot, nil
}

func (uc *profileUseCase) BuildByID(ctx context.Context, id uuid.UUID) (*domain.ProfileSnapshot, error) {
	user, err := uc.userStorage.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.Build(ctx, user)
}

func (uc *profileUseCase) UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (*domain.ProfileSnapshot, error) {
	user, err := uc.userStorage.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := upd.Apply(user); err != nil {
		return nil, err
	}
	user.UpdatedAt = uc.now().UTC()

	if err := uc.userStorage.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	uc.logger.Info("profile updated", "user_id", id)
	return uc.Build(ctx, user)
}

func (uc *profileUseCase) ChangePassword(ctx context.Context, id uuid.UUID, change domain.PasswordChange) error {
	if err := change.Validate(); err != nil {
		return err
	}
	user, err := uc.userStorage.FindUser(ctx, id)
	if err != nil {
		return err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, change.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.ValidationError{Field: "currentPassword", Reason: "is incorrect"}
	}

	hash, err := auth.HashPassword(change.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = uc.now().UTC()

	if err := uc.userStorage.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	uc.logger.Info("password changed", "user_id", id)
	return nil
}
