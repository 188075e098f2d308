package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestGenerateState_Unique(t *testing.T) {
	g := NewGoogleService("id", "secret", "http://localhost/callback", []string{"email"})
	a, err := g.GenerateState()
	require.NoError(t, err)
	b, err := g.GenerateState()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}

func TestRedirectURL_CarriesState(t *testing.T) {
	g := NewGoogleService("client-123", "secret", "http://localhost/callback", []string{"email"})
	raw := g.RedirectURL("xyz")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "xyz", u.Query().Get("state"))
	assert.Equal(t, "client-123", u.Query().Get("client_id"))
}

func TestUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"g-1","email":"asha@dayflow.test","verified_email":true,"name":"Asha"}`))
	}))
	defer srv.Close()

	g := NewGoogleService("id", "secret", "", nil).(*GoogleServiceImpl)
	g.userInfoURL = srv.URL

	info, err := g.UserInfo(context.Background(), &oauth2.Token{AccessToken: "tok", TokenType: "Bearer"})
	require.NoError(t, err)
	assert.Equal(t, GoogleInformation{GoogleID: "g-1", Email: "asha@dayflow.test", VerifiedEmail: true, Name: "Asha"}, info)
}

func TestUserInfo_RejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewGoogleService("id", "secret", "", nil).(*GoogleServiceImpl)
	g.userInfoURL = srv.URL

	_, err := g.UserInfo(context.Background(), &oauth2.Token{AccessToken: "tok"})
	assert.Error(t, err)
}
