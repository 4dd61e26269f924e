// Package httperr writes apperr-classified errors as JSON responses.
package httperr

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"pokecard_backend/internal/shared/apperr"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Write aborts the request with the status and message derived from err.
// Internal errors are logged with their cause and rendered generically.
func Write(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		slog.Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"remote_addr", c.ClientIP(),
		)
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(kind), ErrorResponse{Error: apperr.Message(err)})
}

// BadRequest aborts with 400 for malformed bodies or params.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(apperr.HTTPStatus(apperr.Validation), ErrorResponse{Error: msg})
}
