package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository keeps issued refresh tokens so they can be revoked.
// Implementations store a hash of the token, never the token itself.
type RefreshTokenRepository interface {
	Create(ctx context.Context, employeeID string, token string, expiresAt time.Time) error

	// IsRevoked reports true for revoked, expired and unknown tokens.
	IsRevoked(ctx context.Context, token string, now time.Time) (bool, error)

	Revoke(ctx context.Context, token string) error
}
