package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrorBody is the failure payload: a human-readable message, plus
// per-field messages when the failure came from form validation.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error writes a failure with a general message.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// ValidationError writes a 400 carrying field-level messages when err is a
// validation error set, otherwise the error text itself.
func ValidationError(c *gin.Context, err error) {
	if fieldErrs, ok := err.(validation.Errors); ok {
		fields := make(map[string]string, len(fieldErrs))
		for field, fieldErr := range fieldErrs {
			fields[field] = fieldErr.Error()
		}
		c.JSON(http.StatusBadRequest, ErrorBody{
			Error:  "Validation failed",
			Fields: fields,
		})
		return
	}

	c.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
