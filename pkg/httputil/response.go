package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcare/admin-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Fields  []string    `json:"fields,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// statusOf maps application error codes to HTTP statuses.
func statusOf(code errors.ErrorCode) int {
	switch code {
	case errors.ErrValidation, errors.ErrConfirmationRequired:
		return http.StatusBadRequest
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithSuccess sends a 200 success envelope.
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithCreated sends a 201 success envelope.
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError sends an error envelope, mapping AppError codes to HTTP
// statuses. Unclassified errors respond 500 without leaking internals.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		c.JSON(statusOf(appErr.Code), Response{
			Status:  "error",
			Message: appErr.Message,
			Code:    string(appErr.Code),
			Fields:  appErr.Fields,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Response{
		Status:  "error",
		Message: "internal server error",
		Code:    string(errors.ErrStore),
	})
}
