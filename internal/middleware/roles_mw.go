package middleware

import (
	"errors"
	"net/http"

	"bugwise/internal/model"
	"bugwise/internal/service"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware aborts with 403 unless the authenticated user satisfies policy.
// It must run after JWTAuthMiddleware.
func RoleMiddleware(policy model.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := CurrentUser(c)
		if _, err := service.RequireRole(user, policy); err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				SetBearerChallenge(c)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Operation requires " + policy.String() + " privileges"})
			return
		}

		c.Next()
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.PolicyAdminOnly)
}

// DeveloperMiddleware admits developers and admins.
func DeveloperMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.PolicyDeveloperOrAdmin)
}
