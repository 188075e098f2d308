package memory

import (
	"context"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
)

type refreshTokenRepository struct {
	store *Store
}

func NewRefreshTokenRepository(store *Store) auth.RefreshTokenRepository {
	return &refreshTokenRepository{store: store}
}

func (r *refreshTokenRepository) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, _ auth.SessionTrackingRequest) error {
	defer r.store.lock(ctx)()

	r.store.data.refreshTokens[auth.HashToken(token)] = refreshToken{
		userID:    userID,
		expiresAt: time.Unix(expiresAt, 0),
	}
	return nil
}

func (r *refreshTokenRepository) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	defer r.store.lock(ctx)()

	rt, ok := r.store.data.refreshTokens[auth.HashToken(token)]
	if !ok {
		return "", true, nil
	}
	if rt.revokedAt != nil || !rt.expiresAt.After(r.store.now()) {
		return rt.userID, true, nil
	}
	return rt.userID, false, nil
}

func (r *refreshTokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	defer r.store.lock(ctx)()

	hash := auth.HashToken(token)
	rt, ok := r.store.data.refreshTokens[hash]
	if !ok || rt.revokedAt != nil {
		return nil
	}
	now := r.store.now()
	rt.revokedAt = &now
	r.store.data.refreshTokens[hash] = rt
	return nil
}
