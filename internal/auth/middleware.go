package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/govbudget/budget-portal/internal/models"
)

const profileKey = "auth.profile"

// Middleware validates the Authorization header and stores the resolved
// user profile on the gin context. Requests without a valid bearer token
// are rejected with 401.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, err := service.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, ErrAccountDisabled) {
				status = http.StatusForbidden
			}
			c.AbortWithStatusJSON(status, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(profileKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated profile set by Middleware,
// or nil when the request was not authenticated.
func CurrentUser(c *gin.Context) *models.UserProfile {
	v, ok := c.Get(profileKey)
	if !ok {
		return nil
	}
	profile, _ := v.(*models.UserProfile)
	return profile
}

// RequireRoles rejects requests whose user does not hold one of the roles.
// The Finance Ministry Admin always passes.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := CurrentUser(c)
		if profile == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if profile.Role == models.RoleFinanceMinistryAdmin {
			c.Next()
			return
		}
		for _, role := range roles {
			if profile.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}
