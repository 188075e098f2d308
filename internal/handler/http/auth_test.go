package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/email"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) nextVerificationToken() string {
	e.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ch, err := e.mail.Consume(ctx)
	require.NoError(e.t, err)
	select {
	case msg := <-ch:
		var payload email.VerificationEmail
		require.NoError(e.t, json.Unmarshal(msg.Body, &payload))
		return payload.VerificationLink[strings.LastIndex(payload.VerificationLink, "/")+1:]
	case <-ctx.Done():
		e.t.Fatal("no verification mail queued")
		return ""
	}
}

func refreshCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == jwt.RefreshCookieName() {
			return c
		}
	}
	t.Fatal("refresh cookie not set")
	return nil
}

func TestAuthHandler_SignupVerifyLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	signup := map[string]string{
		"employeeId": "EMP001",
		"name":       "Asha Rao",
		"email":      "asha@example.com",
		"password":   testPassword,
		"role":       "ADMIN",
	}

	rec := env.do(http.MethodPost, "/api/v1/auth/signup", "", signup)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// unverified users cannot log in
	rec = env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "asha@example.com", "password": testPassword})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/auth/signup", "", signup)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/auth/verify/"+env.nextVerificationToken(), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/v1/auth/verify/bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "asha@example.com", "password": testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		Name  string `json:"name"`
	}
	env.decode(rec, &data)
	assert.NotEmpty(t, data.Token)
	// a self-registered account never gets the requested admin role
	assert.Equal(t, "EMPLOYEE", data.Role)
	assert.Equal(t, "Asha Rao", data.Name)
	assert.NotContains(t, rec.Body.String(), "refreshToken")

	cookie := refreshCookie(t, rec.Result())
	assert.True(t, cookie.HttpOnly)

	rec = env.do(http.MethodPost, "/api/v1/auth/refresh", "", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPost, "/api/v1/auth/logout", "", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/auth/refresh", "", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("EMP001", "asha@example.com", user.RoleEmployee)

	rec := env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "asha@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email", "password": testPassword})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.envelope(rec).Error.Details, "email")

	rec = env.do(http.MethodPost, "/api/v1/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_GoogleNotConfigured(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/auth/login/google", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("EMP001", "asha@example.com", user.RoleEmployee)

	rec := env.do(http.MethodGet, "/api/v1/attendance/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/attendance/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// a refresh token is not accepted as a bearer token
	login := env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "asha@example.com", "password": testPassword})
	require.Equal(t, http.StatusOK, login.Code)
	cookie := refreshCookie(t, login.Result())

	rec = env.do(http.MethodGet, "/api/v1/attendance/me", cookie.Value, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
