package module

import (
	"github.com/gin-gonic/gin"

	"github.com/medcare/admin-api/internal/model"
	apperrors "github.com/medcare/admin-api/pkg/errors"
	"github.com/medcare/admin-api/pkg/httputil"
)

// Handler serves the panel navigation: implemented modules and the named
// placeholders prepared for future work.
type Handler struct {
	serviceName string
}

func NewHandler(serviceName string) *Handler {
	return &Handler{serviceName: serviceName}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.Directory)
	rg := r.Group("/modules")
	{
		rg.GET("", h.List)
		rg.GET("/:slug", h.Get)
	}
}

// Directory is the API root: service name plus the navigation modules.
func (h *Handler) Directory(c *gin.Context) {
	httputil.RespondWithSuccess(c, gin.H{
		"service": h.serviceName,
		"modules": model.Modules(),
	})
}

func (h *Handler) List(c *gin.Context) {
	httputil.RespondWithSuccess(c, model.Modules())
}

func (h *Handler) Get(c *gin.Context) {
	m, ok := model.ModuleBySlug(c.Param("slug"))
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("module", nil))
		return
	}
	httputil.RespondWithSuccess(c, m)
}
