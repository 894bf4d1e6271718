package ports

import (
	"context"
	"time"
)

// RefreshTokenStore tracks the set of refresh tokens that are still honored.
// A refresh token whose JTI is absent from the store is treated as revoked
// even when its signature and expiry are otherwise valid.
type RefreshTokenStore interface {
	Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
	Delete(ctx context.Context, jti string) error
}
