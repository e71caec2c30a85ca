package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/auth"
)

type refreshToken struct {
	employeeID string
	expiresAt  time.Time
	revoked    bool
}

type refreshTokenRepository struct {
	s *Store
}

func (r refreshTokenRepository) Create(ctx context.Context, employeeID string, token string, expiresAt time.Time) error {
	defer r.s.lockWrite(ctx)()

	r.s.data.refreshTokens[auth.HashToken(token)] = refreshToken{employeeID: employeeID, expiresAt: expiresAt}
	return nil
}

func (r refreshTokenRepository) IsRevoked(ctx context.Context, token string, now time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rt, ok := r.s.data.refreshTokens[auth.HashToken(token)]
	if !ok {
		return true, nil
	}
	return rt.revoked || !rt.expiresAt.After(now), nil
}

func (r refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	defer r.s.lockWrite(ctx)()

	hash := auth.HashToken(token)
	if rt, ok := r.s.data.refreshTokens[hash]; ok {
		rt.revoked = true
		r.s.data.refreshTokens[hash] = rt
	}
	return nil
}
