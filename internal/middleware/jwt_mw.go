package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"bugwise/internal/model"
	"bugwise/internal/service"

	"github.com/gin-gonic/gin"
)

const AuthUserKey = "authUser"

// SetBearerChallenge adds the WWW-Authenticate header sent with every 401.
func SetBearerChallenge(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
}

// JWTAuthMiddleware resolves the caller from the bearer token and stores the
// user in the gin context under AuthUserKey.
func JWTAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			SetBearerChallenge(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			SetBearerChallenge(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				SetBearerChallenge(c)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthorized.Error()})
				return
			}
			log.Printf("Error authenticating request: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(AuthUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by JWTAuthMiddleware.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(AuthUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok && user != nil
}
