package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the auth endpoints and the admin-only operator
// management endpoints.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMiddleware, h.Me)
	}

	users := g.Group("/users", authMiddleware, adminMiddleware)
	{
		users.GET("", h.List)
		users.PATCH("/:id", h.Update)
	}
}
