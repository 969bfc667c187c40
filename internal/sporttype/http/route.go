package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers sport type routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/sport-type")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)    // List sport types
		group.GET("/:id", h.Get) // Get sport type details
	}

	// === Administration Routes (System Admin Only) ===
	adminGroup := group.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("", h.Create)       // Create sport type
		adminGroup.PATCH("/:id", h.Update)  // Update sport type
		adminGroup.DELETE("/:id", h.Delete) // Delete sport type
	}
}
