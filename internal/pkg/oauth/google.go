package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleService interface {
	// GenerateState returns a random value for the state cookie.
	GenerateState() (string, error)
	// RedirectURL builds the consent screen URL carrying state.
	RedirectURL(state string) string
	// Exchange trades the callback code for a token.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// UserInfo fetches the Google account behind token.
	UserInfo(ctx context.Context, token *oauth2.Token) (GoogleInformation, error)
}

type GoogleServiceImpl struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogleService(clientID string, clientSecret string, redirectURL string, scopes []string) GoogleService {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}
	return &GoogleServiceImpl{config: config, userInfoURL: userInfoURL}
}

type GoogleInformation struct {
	GoogleID      string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (g *GoogleServiceImpl) GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (g *GoogleServiceImpl) RedirectURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *GoogleServiceImpl) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.config.Exchange(ctx, code)
}

func (g *GoogleServiceImpl) UserInfo(ctx context.Context, token *oauth2.Token) (GoogleInformation, error) {
	var info GoogleInformation

	client := g.config.Client(ctx, token)
	resp, err := client.Get(g.userInfoURL)
	if err != nil {
		return GoogleInformation{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GoogleInformation{}, fmt.Errorf("google userinfo: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return GoogleInformation{}, err
	}

	return info, nil
}
