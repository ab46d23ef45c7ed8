package handlers

import (
	"net/http"

	"course-finder/pkg/validator"

	"github.com/gin-gonic/gin"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func badRequest(c *gin.Context, message string, errs interface{}) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// validationFailed reports validator/v10 errors field by field
func validationFailed(c *gin.Context, err error) {
	badRequest(c, "Validation failed", validator.FormatValidationError(err))
}

func internalError(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Message: message,
		Errors:  err.Error(),
	})
}
