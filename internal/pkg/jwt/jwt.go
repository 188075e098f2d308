package jwt

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/v1/auth"
)

// AccessClaims identify the caller on every authenticated request.
type AccessClaims struct {
	UserID     string
	EmployeeID string
	Email      string
	Role       string
}

type Service interface {
	GenerateAccessToken(claims AccessClaims) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	// ParseRefreshToken verifies signature, expiry and type and returns the user id.
	ParseRefreshToken(token string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	ClearRefreshTokenCookie() *http.Cookie
}

type JWTService struct {
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	secureCookie    bool
	tokenAuth       *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenTTL, refreshTokenTTL time.Duration, secureCookie bool) Service {
	return &JWTService{
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
		secureCookie:    secureCookie,
		tokenAuth:       jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(c AccessClaims) (token string, expiresAt int64, err error) {
	now := time.Now()
	expiresAt = now.Add(j.accessTokenTTL).Unix()

	claims := map[string]interface{}{
		"user_id":     c.UserID,
		"employee_id": c.EmployeeID,
		"email":       c.Email,
		"role":        c.Role,
		"type":        TokenTypeAccess,
		"iat":         now.Unix(),
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	now := time.Now()
	expiresAt = now.Add(j.refreshTokenTTL).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    TokenTypeRefresh,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeRefresh {
		return "", jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) ClearRefreshTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// RefreshCookieName is the cookie carrying the refresh token.
func RefreshCookieName() string {
	return refreshCookieName
}
