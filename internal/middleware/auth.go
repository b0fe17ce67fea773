package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medcare/admin-api/internal/service/auth"
	apperrors "github.com/medcare/admin-api/pkg/errors"
	"github.com/medcare/admin-api/pkg/httputil"
)

// ContextSession is the gin context key holding the authenticated session.
const ContextSession = "session"

type SessionMiddleware struct {
	sessions auth.SessionService
}

func NewSessionMiddleware(sessions auth.SessionService) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Authenticate requires a valid bearer session token. While logged out the
// only reachable surfaces are the ones mounted outside this middleware.
func (m *SessionMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			httputil.RespondWithError(c, apperrors.Unauthorized("missing session token", nil))
			c.Abort()
			return
		}

		session, err := m.sessions.Validate(token)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Unauthorized("session expired or logged out", err))
			c.Abort()
			return
		}

		c.Set(ContextSession, session)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
