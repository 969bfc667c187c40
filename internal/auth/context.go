package auth

import "github.com/gin-gonic/gin"

// Context keys set by AuthRequired.
const (
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)

func setUser(c *gin.Context, claims *Claims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserEmailKey, claims.Email)
}

// GetUserID returns the authenticated user id, empty on public routes.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func GetUserEmail(c *gin.Context) string {
	return c.GetString(UserEmailKey)
}
