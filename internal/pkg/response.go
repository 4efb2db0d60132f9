package pkg

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mmcomponents/gateway-service/internal/domain"
)

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
}

// Error converts a failure into an HTTP response. Handlers call this exactly
// once per failed request; no other layer writes HTTP responses.
//
// NotFound is written as a bare 404 with an empty body. Every other error is
// mapped to its status code with an {errorMessage} body.
func Error(c *gin.Context, err error) {
	if domain.IsNotFound(err) {
		c.Status(http.StatusNotFound)
		return
	}

	msg := domain.ErrInternal.Message
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	c.JSON(domain.HTTPStatusCode(err), ErrorResponse{ErrorMessage: msg})
}

// BindAndValidate binds the request body to obj and validates it. On failure
// it writes a 400 {errorMessage} response and returns false.
//
// Usage in handlers:
//
//	if !pkg.BindAndValidate(c, &req) { return }
func BindAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{ErrorMessage: validationMessage(err)})
		return false
	}
	return true
}

// validationMessage flattens a binding error into a single caller-facing
// message. validator.ValidationErrors are rendered per field; anything else
// (malformed JSON, type mismatches) keeps its own message.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}

	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		part := strings.ToLower(fe.Field()) + " failed " + fe.Tag()
		if fe.Param() != "" {
			part += "=" + fe.Param()
		}
		parts = append(parts, part)
	}
	return "validation error: " + strings.Join(parts, ", ")
}
