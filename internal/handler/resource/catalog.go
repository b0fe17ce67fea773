package resource

import (
	"github.com/gin-gonic/gin"

	"github.com/medcare/admin-api/internal/model"
	apperrors "github.com/medcare/admin-api/pkg/errors"
	"github.com/medcare/admin-api/pkg/httputil"
)

// CatalogHandler publishes the resource schemas so a client can render
// list columns, form fields and enum options from the same description the
// server validates against.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	rg := r.Group("/resources")
	{
		rg.GET("", h.List)
		rg.GET("/:name/schema", h.Get)
	}
}

func (h *CatalogHandler) List(c *gin.Context) {
	httputil.RespondWithSuccess(c, model.Catalog())
}

func (h *CatalogHandler) Get(c *gin.Context) {
	schema, ok := model.SchemaByName(c.Param("name"))
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("resource", nil))
		return
	}
	httputil.RespondWithSuccess(c, schema)
}
