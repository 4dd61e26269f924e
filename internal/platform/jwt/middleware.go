package jwtmw

import (
	"strings"

	"github.com/gin-gonic/gin"

	"pokecard_backend/internal/platform/http/httperr"
	"pokecard_backend/internal/shared/apperr"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

const bearerPrefix = "Bearer "

// ErrMissingToken is returned when a protected route is called without a bearer token.
var ErrMissingToken = apperr.New(apperr.MissingCredential, "missing bearer token")

// TokenValidator verifies a token and returns the user id it was issued for.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}

// AuthRequired returns a Gin middleware that rejects requests without a valid
// bearer token and stores the user id under ContextUserID.
func AuthRequired(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			httperr.Write(c, ErrMissingToken)
			return
		}

		userID, err := v.Validate(tokenStr)
		if err != nil {
			httperr.Write(c, ErrInvalidToken)
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthRequired.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}
