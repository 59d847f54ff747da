// Package oauth holds the OAuth2 provider settings used by the auth feature.
package oauth

import (
	"os"
	"strings"

	"golang.org/x/oauth2"
)

// Config describes one OAuth2 / OpenID provider.
type Config struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	RedirectURL  string
	Scopes       []string
}

// LoadConfig reads OAUTH_* variables. Scopes default to "openid email".
func LoadConfig() Config {
	scopes := strings.Fields(strings.ReplaceAll(os.Getenv("OAUTH_SCOPES"), ",", " "))
	if len(scopes) == 0 {
		scopes = []string{"openid", "email"}
	}
	return Config{
		ClientID:     os.Getenv("OAUTH_CLIENT_ID"),
		ClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
		AuthURL:      os.Getenv("OAUTH_AUTH_URL"),
		TokenURL:     os.Getenv("OAUTH_TOKEN_URL"),
		UserInfoURL:  os.Getenv("OAUTH_USERINFO_URL"),
		RedirectURL:  os.Getenv("OAUTH_REDIRECT_URL"),
		Scopes:       scopes,
	}
}

// Enabled reports whether enough settings are present to run the redirect flow.
func (c Config) Enabled() bool {
	return c.ClientID != "" && c.AuthURL != "" && c.TokenURL != "" && c.UserInfoURL != ""
}

// OAuth2 converts c into an x/oauth2 config.
func (c Config) OAuth2() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       c.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.AuthURL,
			TokenURL: c.TokenURL,
		},
	}
}
