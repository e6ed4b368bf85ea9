package usecase

import (
	"context"

	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
)

// AuthResult — ответ на успешную регистрацию или вход.
type AuthResult struct {
	AccessToken string                  `json:"access_token"`
	TokenType   string                  `json:"token_type"`
	ExpiresIn   int64                   `json:"expires_in"`
	User        *domain.ProfileSnapshot `json:"user"`
}

// AuthUseCase отвечает за регистрацию, вход и проверку токенов.
type AuthUseCase interface {
	Register(ctx context.Context, reg domain.Registration) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Logout отзывает все выданные пользователю токены
	Logout(ctx context.Context, userID uuid.UUID) error
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}
