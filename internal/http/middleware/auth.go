package middleware

import (
	"net/http"
	"strings"

	"github.com/MRDEADPOOL12/To-do/internal/domain"
	"github.com/MRDEADPOOL12/To-do/internal/repository"
	"github.com/MRDEADPOOL12/To-do/internal/service"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// Auth resolves the bearer token to an existing user before any protected
// handler runs. A token whose user id no longer resolves is treated the
// same as a bad token.
func Auth(users *repository.UserRepository, tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		userID, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by Auth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
