package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare/admin-api/internal/config"
	"github.com/medcare/admin-api/internal/middleware"
	"github.com/medcare/admin-api/internal/service/auth"
)

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

type sessionPayload struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newAuthEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := auth.NewService(config.AuthConfig{
		Username:          "admin",
		Password:          "admin123",
		SessionTTLMinutes: 60,
	})
	require.NoError(t, err)

	h := NewHandler(svc)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.NewSessionMiddleware(svc).Authenticate())
	h.RegisterSessionRoutes(protected)
	protected.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func login(t *testing.T, engine *gin.Engine) sessionPayload {
	t.Helper()

	rec, resp := doRequest(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code, resp.Message)

	var session sessionPayload
	require.NoError(t, json.Unmarshal(resp.Data, &session))
	require.NotEmpty(t, session.Token)
	return session
}

func TestLoginLogoutFlow(t *testing.T) {
	engine := newAuthEngine(t)

	session := login(t, engine)
	assert.Equal(t, "admin", session.Username)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	rec, _ := doRequest(t, engine, http.MethodGet, "/api/v1/probe", session.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp := doRequest(t, engine, http.MethodGet, "/api/v1/auth/session", session.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var current sessionPayload
	require.NoError(t, json.Unmarshal(resp.Data, &current))
	assert.Equal(t, "admin", current.Username)
	assert.Equal(t, session.Token, current.Token)

	rec, _ = doRequest(t, engine, http.MethodPost, "/api/v1/auth/logout", session.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = doRequest(t, engine, http.MethodGet, "/api/v1/probe", session.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", resp.Code)
	assert.Contains(t, resp.Message, "expired or logged out")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	engine := newAuthEngine(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "letmein"},
		{"wrong username", "root", "admin123"},
		{"case sensitive username", "Admin", "admin123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
				"username": tt.username,
				"password": tt.password,
			})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "UNAUTHORIZED", resp.Code)
			assert.Equal(t, "invalid credentials", resp.Message)
		})
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	engine := newAuthEngine(t)

	rec, resp := doRequest(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	engine := newAuthEngine(t)

	rec, resp := doRequest(t, engine, http.MethodGet, "/api/v1/probe", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing session token", resp.Message)

	rec, resp = doRequest(t, engine, http.MethodGet, "/api/v1/probe", "not-a-session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, resp.Message, "expired or logged out")
}

func TestLogoutWithoutSessionIsIdempotent(t *testing.T) {
	engine := newAuthEngine(t)

	rec, resp := doRequest(t, engine, http.MethodPost, "/api/v1/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		LoggedOut bool `json:"logged_out"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.True(t, out.LoggedOut)

	session := login(t, engine)
	rec, _ = doRequest(t, engine, http.MethodPost, "/api/v1/auth/logout", session.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doRequest(t, engine, http.MethodPost, "/api/v1/auth/logout", session.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "logging out twice stays a success")
}
