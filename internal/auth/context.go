package auth

import "github.com/gin-gonic/gin"

const (
	userIDKey   = "userID"
	identityKey = "identity"
)

// Identity is the authenticated account as seen by the domain services.
type Identity struct {
	UserID      string
	DisplayName string
	Email       string
	IsAdmin     bool
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// SetIdentity stores the resolved identity for later handlers.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the resolved identity, if an identity middleware ran.
func GetIdentity(c *gin.Context) (Identity, bool) {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(Identity); ok {
			return id, true
		}
	}
	return Identity{}, false
}
