package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/medcare/admin-api/internal/config"
	"github.com/medcare/admin-api/internal/model"
	"github.com/medcare/admin-api/pkg/security"
)

const (
	defaultSessionTTL = 12 * time.Hour
	cleanupInterval   = 10 * time.Minute
	bcryptCost        = 10
)

// SessionService gates the panel behind the single demo credential pair.
// Sessions live server-side so logout revokes immediately.
type SessionService interface {
	Login(username, password string) (*model.Session, error)
	Validate(token string) (*model.Session, error)
	Logout(token string)
}

type Service struct {
	username     string
	passwordHash string
	hasher       security.PasswordHasher
	sessions     *cache.Cache
	ttl          time.Duration
}

// NewService hashes the configured password once at startup; plaintext is
// never kept on the service.
func NewService(cfg config.AuthConfig) (*Service, error) {
	hasher := security.NewBcryptHasher(bcryptCost)
	hash, err := hasher.Hash(cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash credential: %w", err)
	}

	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &Service{
		username:     cfg.Username,
		passwordHash: hash,
		hasher:       hasher,
		sessions:     cache.New(ttl, cleanupInterval),
		ttl:          ttl,
	}, nil
}

// Login checks the credential pair and issues an opaque session token.
func (s *Service) Login(username, password string) (*model.Session, error) {
	if username != s.username {
		return nil, model.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.passwordHash, password); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := &model.Session{
		Token:     uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.sessions.Set(session.Token, session, cache.DefaultExpiration)
	return session, nil
}

// Validate resolves a token to its live session.
func (s *Service) Validate(token string) (*model.Session, error) {
	if token == "" {
		return nil, model.ErrSessionNotFound
	}
	v, ok := s.sessions.Get(token)
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return v.(*model.Session), nil
}

// Logout revokes the session. Revoking an unknown token is a no-op so the
// call is idempotent.
func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}
