package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/auth"
	"github.com/GoArmGo/CarbonTracker/internal/core/ports"
	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
)

func errEmailTaken() error {
	return &domain.ValidationError{Field: "email", Reason: "has already been taken"}
}

// authUseCase implements AuthUseCase
type authUseCase struct {
	userStorage ports.UserStorage
	profiles    ProfileUseCase
	tokens      *auth.TokenManager
	now         func() time.Time
	logger      *slog.Logger
}

func NewAuthUseCase(
	userStorage ports.UserStorage,
	profiles ProfileUseCase,
	tokens *auth.TokenManager,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		userStorage: userStorage,
		profiles:    profiles,
		tokens:      tokens,
		now:         time.Now,
		logger:      logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, reg domain.Registration) (*AuthResult, error) {
	reg = reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	_, err := uc.userStorage.FindUserByEmail(ctx, reg.Email)
	switch {
	case err == nil:
		return nil, errEmailTaken()
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, errEmailTaken()
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID)
	return uc.issue(ctx, user)
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userStorage.FindUserByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		uc.logger.Warn("login with wrong password", "user_id", user.ID)
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issue(ctx, user)
}

func (uc *authUseCase) Logout(ctx context.Context, userID uuid.UUID) error {
	version, err := uc.userStorage.IncrementTokenVersion(ctx, userID)
	if err != nil {
		return err
	}
	uc.logger.Info("user logged out", "user_id", userID, "token_version", version)
	return nil
}

func (uc *authUseCase) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	id, version, err := uc.tokens.ParseToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	user, err := uc.userStorage.FindUser(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return uuid.Nil, domain.ErrUnauthorized
	}
	if err != nil {
		return uuid.Nil, err
	}
	if user.TokenVersion != version {
		return uuid.Nil, fmt.Errorf("%w: token revoked", domain.ErrUnauthorized)
	}
	return id, nil
}

func (uc *authUseCase) issue(ctx context.Context, user *domain.User) (*AuthResult, error) {
	token, err := uc.tokens.GenerateToken(user.ID, user.TokenVersion)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profiles.Build(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(uc.tokens.TTL().Seconds()),
		User:        profile,
	}, nil
}
