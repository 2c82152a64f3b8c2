package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/domain/identity"
)

const (
	CtxIdentityID  = "identityID"
	CtxAccessToken = "accessToken"
)

// AuthMiddleware verifies the bearer token with the identity provider on every request.
func AuthMiddleware(provider identity.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "access token required"},
			)
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		tokenStr = strings.TrimSpace(tokenStr)
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		ident, err := provider.Verify(c.Request.Context(), tokenStr)
		if err != nil || ident == nil || ident.ID == "" {
			if err != nil && !errors.Is(err, identity.ErrInvalidToken) {
				logger.Error("Verify() error", zap.Error(err))
			}
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": "invalid or expired token"},
			)
			return
		}

		c.Set(CtxIdentityID, ident.ID)
		c.Set(CtxAccessToken, tokenStr)

		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware. The role is read from the
// profile store, never from the token.
func AdminMiddleware(profiles ports.ProfileResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := profiles.Profile(c.Request.Context(), c.GetString(CtxIdentityID))
		if err != nil {
			// a verified identity without a profile is a store inconsistency
			logger.Error("Profile() error", zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				gin.H{"error": "internal server error"},
			)
			return
		}
		if !p.IsAdmin() {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": "admin access required"},
			)
			return
		}

		c.Next()
	}
}
