package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medcare/admin-api/internal/middleware"
	"github.com/medcare/admin-api/internal/model"
	"github.com/medcare/admin-api/internal/service/auth"
	apperrors "github.com/medcare/admin-api/pkg/errors"
	"github.com/medcare/admin-api/pkg/httputil"
)

type Handler struct {
	svc auth.SessionService
}

func NewHandler(svc auth.SessionService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts login and logout; both stay reachable while logged
// out. Logout revokes whatever token the caller presents.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	rg := r.Group("/auth")
	{
		rg.POST("/login", h.Login)
		rg.POST("/logout", h.Logout)
	}
}

// RegisterSessionRoutes mounts the introspection endpoint behind the
// session middleware.
func (h *Handler) RegisterSessionRoutes(r *gin.RouterGroup) {
	r.GET("/auth/session", h.Session)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c,
			apperrors.Validation("username and password are required", "username", "password"))
		return
	}

	session, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Unauthorized("invalid credentials", err))
		return
	}

	httputil.RespondWithSuccess(c, session)
}

func (h *Handler) Logout(c *gin.Context) {
	if token := bearerToken(c.GetHeader("Authorization")); token != "" {
		h.svc.Logout(token)
	}
	httputil.RespondWithSuccess(c, gin.H{"logged_out": true})
}

// Session reports the authenticated session set by the middleware.
func (h *Handler) Session(c *gin.Context) {
	session, _ := c.Get(middleware.ContextSession)
	httputil.RespondWithSuccess(c, session)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
