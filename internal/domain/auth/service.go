package auth

import (
	"context"
)

type AuthService interface {
	// Signup registers an unverified user and queues the verification email.
	Signup(ctx context.Context, req SignupRequest) (SignupResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)

	// LoginWithGoogle signs in an existing user matched by a verified Google email.
	LoginWithGoogle(ctx context.Context, email string, emailVerified bool, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// RefreshTokenRepository stores hashed refresh tokens.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error

	// IsRefreshTokenRevoked returns the owner of the token and whether it is
	// revoked or expired.
	IsRefreshTokenRevoked(ctx context.Context, token string) (userID string, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
