package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/oauth"
	"github.com/go-chi/chi/v5"
)

const (
	stateCookieName = "oauth_state"
	googleCallback  = "/api/v1/auth/oauth/callback/google"
)

type AuthHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	VerifyEmail(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService    jwt.Service
	authService   auth.AuthService
	googleService oauth.GoogleService
	frontendURL   string
	secureCookie  bool
}

// NewAuthHandler wires the auth endpoints. googleService may be nil when
// Google sign-in is not configured.
func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, googleService oauth.GoogleService, frontendURL string, secureCookie bool) AuthHandler {
	return &authHandlerImpl{
		jwtService:    jwtService,
		authService:   authService,
		googleService: googleService,
		frontendURL:   frontendURL,
		secureCookie:  secureCookie,
	}
}

func sessionFromRequest(r *http.Request) auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}

// Signup implements AuthHandler.
func (a *authHandlerImpl) Signup(w http.ResponseWriter, r *http.Request) {
	var signupReq auth.SignupRequest

	if err := json.NewDecoder(r.Body).Decode(&signupReq); err != nil {
		slog.Error("Signup decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := a.authService.Signup(r.Context(), signupReq)
	if err != nil {
		slog.Error("Signup service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User signed up", "employee_id", signupReq.EmployeeID)
	response.Created(w, resp.Message, resp)
}

// VerifyEmail implements AuthHandler.
func (a *authHandlerImpl) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	if err := a.authService.VerifyEmail(r.Context(), chi.URLParam(r, "token")); err != nil {
		slog.Error("VerifyEmail service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Email verified successfully", nil)
}

// Login implements AuthHandler.
func (a *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq, sessionFromRequest(r))
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	slog.Info("User logged in successfully")
	response.SuccessWithMessage(w, "User logged in successfully", tokenResponse)
}

// LoginWithGoogle implements AuthHandler.
func (a *authHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.NotFound(w, "Google sign-in is not configured")
		return
	}

	state, err := a.googleService.GenerateState()
	if err != nil {
		slog.Error("Failed to generate oauth state", "error", err)
		response.Fail(w, http.StatusInternalServerError, "An unexpected error occurred", nil)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     googleCallback,
		Expires:  time.Now().Add(5 * time.Minute),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.googleService.RedirectURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler. Every outcome redirects to the
// frontend; failures carry an error code in the query string.
func (a *authHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	redirectWithError := func(errorMsg string) {
		redirectURL := fmt.Sprintf("%s/auth/callback/google?error=%s", a.frontendURL, url.QueryEscape(errorMsg))
		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
	}

	if a.googleService == nil {
		redirectWithError("google_not_configured")
		return
	}

	if errorValue := r.URL.Query().Get("error"); errorValue != "" {
		slog.Error("Error in OAuth callback", "error", errorValue)
		redirectWithError(errorValue)
		return
	}

	stateReq, err := r.Cookie(stateCookieName)
	if err != nil || stateReq.Value == "" {
		slog.Error("State cookie not found", "error", err)
		redirectWithError("state_cookie_not_found")
		return
	}
	if r.URL.Query().Get("state") != stateReq.Value {
		slog.Error("State mismatch", "error", auth.ErrStateMismatch)
		redirectWithError("state_mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		redirectWithError("code_empty")
		return
	}

	token, err := a.googleService.Exchange(r.Context(), code)
	if err != nil {
		slog.Error("Failed to exchange code", "error", err)
		redirectWithError("token_verification_failed")
		return
	}

	userGoogle, err := a.googleService.UserInfo(r.Context(), token)
	if err != nil {
		slog.Error("Failed to fetch google user", "error", err)
		redirectWithError("user_verification_failed")
		return
	}

	tokenResponse, err := a.authService.LoginWithGoogle(r.Context(), userGoogle.Email, userGoogle.VerifiedEmail, sessionFromRequest(r))
	if err != nil {
		slog.Error("Failed to login with Google", "error", err)
		switch {
		case errors.Is(err, auth.ErrGoogleAccountNotRegistered):
			redirectWithError("account_not_registered")
		case errors.Is(err, auth.ErrGoogleEmailNotVerified):
			redirectWithError("email_not_verified")
		default:
			redirectWithError("login_failed")
		}
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	slog.Info("User logged in successfully via Google OAuth")

	redirectURL := fmt.Sprintf("%s/auth/callback/google?access_token=%s&expires_in=%d",
		a.frontendURL,
		url.QueryEscape(tokenResponse.AccessToken),
		tokenResponse.AccessTokenExpiresIn,
	)
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// refreshTokenFromRequest prefers the cookie and falls back to a JSON body.
func refreshTokenFromRequest(r *http.Request) (string, error) {
	if c, err := r.Cookie(jwt.RefreshCookieName()); err == nil && c.Value != "" {
		return c.Value, nil
	}

	var req auth.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if req.RefreshToken == "" {
		return "", auth.ErrRefreshTokenCookieNotFound
	}
	return req.RefreshToken, nil
}

// Logout implements AuthHandler.
func (a *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := refreshTokenFromRequest(r)
	if err != nil {
		response.HandleError(w, auth.ErrRefreshTokenCookieNotFound)
		return
	}

	if err := a.authService.Logout(r.Context(), refreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.ClearRefreshTokenCookie())
	response.SuccessWithMessage(w, "User logged out successfully", nil)
}

// RefreshToken implements AuthHandler.
func (a *authHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := refreshTokenFromRequest(r)
	if err != nil {
		slog.Error("Refresh Token read error", "error", err)
		response.HandleError(w, auth.ErrRefreshTokenCookieNotFound)
		return
	}

	tokenResponse, err := a.authService.RefreshToken(r.Context(), auth.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		slog.Error("Refresh Token service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Token refreshed successfully")
	response.SuccessWithMessage(w, "Token refreshed successfully", tokenResponse)
}
