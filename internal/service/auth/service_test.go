package auth

import (
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare/admin-api/internal/config"
	"github.com/medcare/admin-api/internal/model"
)

func demoService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(config.AuthConfig{
		Username:          "admin",
		Password:          "admin123",
		SessionTTLMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}

func TestLoginWithDemoCredentials(t *testing.T) {
	svc := demoService(t)

	session, err := svc.Login("admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "admin", session.Username)
	assert.True(t, session.ExpiresAt.After(session.CreatedAt))

	got, err := svc.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := demoService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "letmein"},
		{"wrong username", "root", "admin123"},
		{"empty pair", "", ""},
		{"password as username", "admin123", "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(tt.username, tt.password)
			assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		})
	}
}

func TestValidateUnknownToken(t *testing.T) {
	svc := demoService(t)

	_, err := svc.Validate("")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	_, err = svc.Validate("not-a-session")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := demoService(t)

	session, err := svc.Login("admin", "admin123")
	require.NoError(t, err)

	svc.Logout(session.Token)

	_, err = svc.Validate(session.Token)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	// revoking again is a no-op
	svc.Logout(session.Token)
}

func TestSessionExpiry(t *testing.T) {
	svc := demoService(t)
	svc.ttl = 15 * time.Millisecond
	svc.sessions = cache.New(svc.ttl, time.Minute)

	session, err := svc.Login("admin", "admin123")
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	_, err = svc.Validate(session.Token)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}
