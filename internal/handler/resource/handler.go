package resource

import (
	"github.com/gin-gonic/gin"

	"github.com/medcare/admin-api/internal/model"
	"github.com/medcare/admin-api/internal/service/resource"
	apperrors "github.com/medcare/admin-api/pkg/errors"
	"github.com/medcare/admin-api/pkg/httputil"
)

// Handler serves one catalog resource. The same handler type backs
// /patients, /doctors and /staff; the schema is the only thing that
// differs between them.
type Handler struct {
	schema *model.Schema
	svc    resource.ResourceService
}

func NewHandler(schema *model.Schema, svc resource.ResourceService) *Handler {
	return &Handler{schema: schema, svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	rg := r.Group("/" + h.schema.Name)
	{
		rg.GET("", h.List)
		rg.POST("", h.Create)
		rg.GET("/:id", h.Get)
		rg.PUT("/:id", h.Update)
		rg.DELETE("/:id", h.Delete)
	}
}

// List returns the current rows, filtered by the optional q parameter as a
// case-insensitive substring over the schema's searchable fields.
func (h *Handler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), h.schema, c.Query("q"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	items := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		items = append(items, h.item(row))
	}
	httputil.RespondWithSuccess(c, items)
}

// Get returns one row with its stored values, ready to populate an edit
// form.
func (h *Handler) Get(c *gin.Context) {
	row, err := h.svc.Get(c.Request.Context(), h.schema, c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, h.item(row))
}

func (h *Handler) Create(c *gin.Context) {
	payload, ok := h.bind(c)
	if !ok {
		return
	}

	row, err := h.svc.Create(c.Request.Context(), h.schema, payload)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, h.item(row))
}

func (h *Handler) Update(c *gin.Context) {
	payload, ok := h.bind(c)
	if !ok {
		return
	}

	row, err := h.svc.Update(c.Request.Context(), h.schema, c.Param("id"), payload)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, h.item(row))
}

// Delete destroys a row permanently. The call must carry confirm=true;
// destruction is never a single unqualified request.
func (h *Handler) Delete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		httputil.RespondWithError(c,
			apperrors.ConfirmationRequired("deleting a "+h.schema.Singular))
		return
	}

	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), h.schema, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"id": id, "deleted": true})
}

func (h *Handler) bind(c *gin.Context) (model.Row, bool) {
	var payload model.Row
	if err := c.ShouldBindJSON(&payload); err != nil {
		httputil.RespondWithError(c,
			apperrors.Validation("request body must be a JSON object of string fields"))
		return nil, false
	}
	return payload, true
}

// item is a row plus its display label.
func (h *Handler) item(row model.Row) gin.H {
	out := make(gin.H, len(row)+1)
	for k, v := range row {
		out[k] = v
	}
	out["label"] = h.schema.Label(row)
	return out
}
