package handler

import (
	"errors"
	"log"
	"net/http"

	"bugwise/internal/middleware"
	"bugwise/internal/service"
	"bugwise/internal/utils"

	"github.com/gin-gonic/gin"
)

// notFoundStatus is the status sent for a missing user. Clients of the
// existing API expect 400 here rather than 404.
const notFoundStatus = http.StatusBadRequest

// respondError maps service errors onto HTTP status codes. Unknown errors are
// logged and answered with a generic 500.
func respondError(c *gin.Context, err error, action string) {
	for _, m := range []struct {
		target error
		status int
	}{
		{service.ErrUsernameTaken, http.StatusBadRequest},
		{service.ErrEmailTaken, http.StatusBadRequest},
		{service.ErrInvalidRole, http.StatusBadRequest},
		{service.ErrPasswordTooLong, http.StatusBadRequest},
		{service.ErrInvalidPagination, http.StatusBadRequest},
		{service.ErrUserNotFound, notFoundStatus},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrUnauthorized, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
	} {
		if errors.Is(err, m.target) {
			if m.status == http.StatusUnauthorized {
				middleware.SetBearerChallenge(c)
			}
			c.JSON(m.status, gin.H{"error": m.target.Error()})
			return
		}
	}

	log.Printf("Error %s: %v", action, err)
	if errors.Is(err, utils.ErrTokenCreation) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrTokenCreation.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed " + action})
}
