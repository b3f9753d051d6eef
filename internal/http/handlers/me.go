package handlers

import (
	"net/http"

	"github.com/MRDEADPOOL12/To-do/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user. The password hash is excluded by the
// domain struct's json tags.
func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, user)
}
