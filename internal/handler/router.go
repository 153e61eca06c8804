package handler

import (
	"context"
	"net/http"

	"bugwise/internal/middleware"
	"bugwise/internal/service"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps collects what NewRouter wires together.
type RouterDeps struct {
	AuthService    service.AuthService
	UserService    service.UserService
	DB             Pinger
	AllowedOrigins []string
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	jwtAuthMW := middleware.JWTAuthMiddleware(deps.AuthService)
	adminRoleMW := middleware.AdminMiddleware()

	authHandler := NewAuthHandler(deps.AuthService)
	userHandler := NewUserHandler(deps.UserService)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to BugWise AI!"})
	})
	router.GET("/health", func(c *gin.Context) {
		if deps.DB != nil {
			if err := deps.DB.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "db": "healthy"})
	})

	authHandler.RegisterAuthRoutes(router)

	apiGroup := router.Group("/api/v1")
	userHandler.RegisterUserRoutes(apiGroup, jwtAuthMW, adminRoleMW)

	return router
}
