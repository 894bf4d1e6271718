package ports

import (
	"context"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// TokenPair is the result of a successful login: a short-lived access token
// and the longer-lived refresh token used solely to mint new access tokens.
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService implements registration, login, and token refresh.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login collapses every failure cause (unknown user, wrong password,
	// missing field) into domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
