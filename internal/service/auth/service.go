package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/email"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/queue"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	auth.RefreshTokenRepository
	jwt.Service
	tx         database.Transactor
	mailQueue  queue.Queue
	clock      clock.Clock
	baseURL    string
	bcryptCost int
}

func NewAuthService(
	userRepository user.UserRepository,
	refreshTokenRepository auth.RefreshTokenRepository,
	jwtService jwt.Service,
	tx database.Transactor,
	mailQueue queue.Queue,
	c clock.Clock,
	baseURL string,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		UserRepository:         userRepository,
		RefreshTokenRepository: refreshTokenRepository,
		Service:                jwtService,
		tx:                     tx,
		mailQueue:              mailQueue,
		clock:                  c,
		baseURL:                baseURL,
		bcryptCost:             bcrypt.DefaultCost,
	}
}

// WithBcryptCost lowers the hashing cost, for tests.
func (a *AuthServiceImpl) WithBcryptCost(cost int) *AuthServiceImpl {
	a.bcryptCost = cost
	return a
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Signup implements auth.AuthService.
func (a *AuthServiceImpl) Signup(ctx context.Context, req auth.SignupRequest) (auth.SignupResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.SignupResponse{}, err
	}

	existing, err := a.UserRepository.GetByEmail(ctx, req.Email)
	switch {
	case err == nil && existing.EmailVerified:
		return auth.SignupResponse{}, auth.ErrAlreadyRegistered
	case err == nil:
		return auth.SignupResponse{}, auth.ErrVerificationPending
	case !errors.Is(err, user.ErrUserNotFound):
		return auth.SignupResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.SignupResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	token := uuid.NewString()
	expiry := a.clock.Now().Add(user.VerificationTTL).UTC()

	// self-registered accounts are employees; only an admin update promotes them
	created, err := a.UserRepository.Create(ctx, user.User{
		EmployeeID:              req.EmployeeID,
		Name:                    req.Name,
		Email:                   req.Email,
		PasswordHash:            &hash,
		Role:                    user.RoleEmployee,
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) || errors.Is(err, user.ErrEmployeeIDExists) {
			return auth.SignupResponse{}, err
		}
		return auth.SignupResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	// the account exists either way; a lost mail can be re-sent by signing up again after expiry
	if err := email.EnqueueVerification(ctx, a.mailQueue, email.VerificationEmail{
		To:               created.Email,
		Name:             created.Name,
		EmployeeID:       created.EmployeeID,
		VerificationLink: a.baseURL + "/api/v1/auth/verify/" + token,
		ExpiresAt:        expiry.Format(time.RFC1123),
	}); err != nil {
		slog.Error("Failed to enqueue verification email", "user_id", created.ID, "error", err)
	}

	return auth.SignupResponse{Message: "Signup successful. Please check your email to verify your account."}, nil
}

// VerifyEmail implements auth.AuthService.
func (a *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidVerificationToken
	}

	u, err := a.UserRepository.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrInvalidVerificationToken
		}
		return fmt.Errorf("failed to get user by verification token: %w", err)
	}

	now := a.clock.Now()
	if !u.CanVerify(token, now) {
		return auth.ErrInvalidVerificationToken
	}

	if err := a.UserRepository.MarkEmailVerified(ctx, u.ID, now.UTC()); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if u.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !u.EmailVerified {
		return auth.TokenResponse{}, auth.ErrEmailNotVerified
	}

	return a.issueTokens(ctx, u, session)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string, emailVerified bool, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if !emailVerified {
		return auth.TokenResponse{}, auth.ErrGoogleEmailNotVerified
	}

	u, err := a.UserRepository.GetByEmail(ctx, googleEmail)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrGoogleAccountNotRegistered
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Google has proven ownership of the address
	if !u.EmailVerified {
		if err := a.UserRepository.MarkEmailVerified(ctx, u.ID, a.clock.Now().UTC()); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to mark email verified: %w", err)
		}
	}

	return a.issueTokens(ctx, u, session)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	tokenResponse := auth.TokenResponse{Role: string(u.Role), Name: u.Name}

	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(jwt.AccessClaims{
			UserID:     u.ID,
			EmployeeID: u.EmployeeID,
			Email:      u.Email,
			Role:       string(u.Role),
		})
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}

		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(u.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.RefreshTokenRepository.CreateRefreshToken(ctx, u.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, session); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	// 1. signature, expiry and type
	claimedUserID, err := a.Service.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. revocation
	userID, revoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if userID != claimedUserID {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. current role and identity
	u, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(jwt.AccessClaims{
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		Email:      u.Email,
		Role:       string(u.Role),
	})
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := a.RefreshTokenRepository.RevokeRefreshToken(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
