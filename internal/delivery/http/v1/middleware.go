package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/A1ekseiPanov/task-management-system/internal/auth"
)

const identityCtxKey = "identity"

// HandleAuthMiddleware authenticates the request from its Bearer token.
// Any failure degrades the caller to anonymous and short-circuits with
// an unauthorized response carrying the failing request path.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().
			Str("path", c.Request.URL.Path).
			Msg("authorization header required")
		abortUnauthorized(c, "authorization header required")
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().
			Str("path", c.Request.URL.Path).
			Msg("invalid authorization header")
		abortUnauthorized(c, "invalid authorization header")
		return
	}

	identity, err := h.tokens.Parse(parts[1])
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Msg("failed to parse token")
		abortUnauthorized(c, err.Error())
		return
	}

	c.Set(identityCtxKey, identity)
	c.Next()
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "Unauthorized",
		"message": message,
		"path":    c.Request.URL.Path,
	})
}

// identityFromContext returns the caller stored by the auth middleware.
func identityFromContext(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(identityCtxKey)
	if !exists {
		return auth.Identity{}, false
	}

	identity, ok := value.(auth.Identity)
	return identity, ok
}
