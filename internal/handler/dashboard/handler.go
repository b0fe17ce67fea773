package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/medcare/admin-api/internal/service/dashboard"
	"github.com/medcare/admin-api/pkg/httputil"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Counts)
}

// Counts serves the three landing-page totals, computed live per request.
func (h *Handler) Counts(c *gin.Context) {
	counts, err := h.svc.Counts(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, counts)
}
