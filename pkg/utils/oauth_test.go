package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jakechorley/shmira-scheduler/internal/config"
)

func TestGetOAuthConfig(t *testing.T) {
	cfg, err := GetOAuthConfig(&config.OAuthClientConfig{
		Installed: config.OAuthInstalled{
			ClientID:     "client-id.apps.googleusercontent.com",
			ClientSecret: "secret",
			AuthURI:      "https://accounts.google.com/o/oauth2/auth",
			TokenURI:     "https://oauth2.googleapis.com/token",
			RedirectURIs: []string{"http://localhost"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "client-id.apps.googleusercontent.com", cfg.ClientID)
	assert.Equal(t, []string{ScopeSheets, ScopeGmailSend}, cfg.Scopes)
	assert.Equal(t, "http://localhost:3000/oauth/callback", cfg.RedirectURL)
}

func TestTokenFileRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	missing, err := LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.Nil(t, missing)

	token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, SaveTokenToFile("test", token))

	loaded, err := LoadTokenFromFile("test")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))

	require.NoError(t, DeleteTokenFile("test"))
	require.NoError(t, DeleteTokenFile("test"))
}
