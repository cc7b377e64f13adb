package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/user"
)

// UserLookup is the slice of the user service the middlewares need.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// LoadIdentity resolves the token subject into an auth.Identity.
// It MUST be used after auth.AuthRequired middleware.
func LoadIdentity(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !resolveIdentity(c, users) {
			return
		}
		c.Next()
	}
}

// RequireAdmin ensures the authenticated user is an admin.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !resolveIdentity(c, users) {
			return
		}

		id, _ := auth.GetIdentity(c)
		if !id.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}

// resolveIdentity aborts with 401 and returns false when no usable account backs the token.
func resolveIdentity(c *gin.Context, users UserLookup) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return false
	}

	u, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return false
	}

	// Deactivated accounts keep valid tokens until expiry.
	if !u.IsActive {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account is inactive"})
		return false
	}

	auth.SetIdentity(c, u.Identity())
	return true
}
