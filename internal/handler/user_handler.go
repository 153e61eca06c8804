package handler

import (
	"net/http"
	"strconv"

	"bugwise/internal/middleware"
	"bugwise/internal/model"
	"bugwise/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user account requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "to register user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, service.ErrUnauthorized, "to resolve current user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) List(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var params model.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	users, err := h.service.List(c.Request.Context(), caller, params.Skip, params.Limit)
	if err != nil {
		respondError(c, err, "to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err, "to get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		respondError(c, err, "to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		respondError(c, err, "to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return id, true
}

// RegisterUserRoutes registers user routes. jwtAuthMW resolves the caller and
// adminRoleMW guards the admin-only listing and lookup.
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, jwtAuthMW gin.HandlerFunc, adminRoleMW gin.HandlerFunc) {
	users := rg.Group("/users")
	users.POST("/register", h.Register)

	authed := users.Group("", jwtAuthMW)
	{
		authed.GET("/me", h.Me)
		authed.GET("/", adminRoleMW, h.List)
		authed.GET("/:id", adminRoleMW, h.GetByID)
		authed.PUT("/:id", h.Update)
		authed.DELETE("/:id", h.Delete)
	}
}
