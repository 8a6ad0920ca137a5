package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"abyss-server/internal/models"
	"abyss-server/internal/service"
)

const principalContextKey = "principal"

// bearerToken extracts the opaque token from the Authorization header.
// Returns "" when the header is missing or not a bearer scheme.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth verifies the bearer token and checks the caller's role
// against the accepted set. The role comes from storage on every call,
// so demotions and deletions take effect on the next request.
func (h *Handler) RequireAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			zap.L().Warn("Authorization header missing or malformed", zap.String("path", c.Request.URL.Path))
			authChecksTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrUnauthorized)
			return
		}

		principal, err := h.authService.Authorize(c.Request.Context(), token, roles...)
		if err != nil {
			zap.L().Warn("Authorization failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
			authChecksTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, err)
			return
		}

		authChecksTotal.WithLabelValues("success").Inc()
		c.Set(principalContextKey, principal)
		c.Next()
	}
}

// currentPrincipal returns the verified identity set by RequireAuth.
func currentPrincipal(c *gin.Context) (*service.Principal, bool) {
	raw, exists := c.Get(principalContextKey)
	if !exists {
		return nil, false
	}
	principal, ok := raw.(*service.Principal)
	return principal, ok
}
