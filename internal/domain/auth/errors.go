package auth

import "github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"

var (
	ErrInvalidCredentials         = apperror.New(apperror.ErrUnauthorized, "invalid email or password")
	ErrEmailNotVerified           = apperror.New(apperror.ErrForbidden, "please verify your email")
	ErrAlreadyRegistered          = apperror.New(apperror.ErrConflict, "user already registered and verified, please login")
	ErrVerificationPending        = apperror.New(apperror.ErrConflict, "verification email already sent, please check your inbox")
	ErrInvalidVerificationToken   = apperror.New(apperror.ErrValidation, "invalid or expired token")
	ErrInvalidToken               = apperror.New(apperror.ErrUnauthorized, "invalid or expired token")
	ErrRefreshTokenRevoked        = apperror.New(apperror.ErrUnauthorized, "refresh token has been revoked")
	ErrRefreshTokenCookieNotFound = apperror.New(apperror.ErrUnauthorized, "refresh token cookie not found")
	ErrGoogleAccountNotRegistered = apperror.New(apperror.ErrUnauthorized, "no account registered for this google email")
	ErrGoogleEmailNotVerified     = apperror.New(apperror.ErrUnauthorized, "google email is not verified")
	ErrStateMismatch              = apperror.New(apperror.ErrUnauthorized, "oauth state mismatch")
)
