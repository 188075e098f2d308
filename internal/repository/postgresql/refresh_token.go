package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type refreshTokenRepositoryImpl struct {
	db *database.DB
}

// NewRefreshTokenRepository creates a new instance of auth.RefreshTokenRepository.
func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{db: db}
}

func (j *refreshTokenRepositoryImpl) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	q := GetQuerier(ctx, j.db)
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.Exec(ctx, query, userID, auth.HashToken(token), time.Unix(expiresAt, 0).UTC(), sessionReq.UserAgent, sessionReq.IPAddress)
	return err
}

// IsRefreshTokenRevoked treats unknown and expired tokens as revoked.
func (j *refreshTokenRepositoryImpl) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT user_id, revoked_at, expires_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`

	var (
		userID    string
		revokedAt *time.Time
		expiresAt time.Time
	)
	err := q.QueryRow(ctx, query, auth.HashToken(token)).Scan(&userID, &revokedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", true, nil
		}
		return "", false, err
	}

	if revokedAt != nil || !expiresAt.After(time.Now()) {
		return userID, true, nil
	}
	return userID, false, nil
}

func (j *refreshTokenRepositoryImpl) RevokeRefreshToken(ctx context.Context, token string) error {
	q := GetQuerier(ctx, j.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	_, err := q.Exec(ctx, query, auth.HashToken(token))
	return err
}
