package ports

import (
	"context"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// UserRepository defines the interface for identity persistence.
// Create must fail with domain.ErrUserExists when the username is already
// taken, enforced at write time.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
