package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers zone routes.
func RegisterRoutes(g *gin.RouterGroup, h *ZoneHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	zoneGroup := g.Group("/zone")

	// === Authenticated Routes ===
	zoneGroup.Use(authMiddleware)
	{
		zoneGroup.GET("", h.List)
		zoneGroup.GET("/:id", h.Get)
	}

	// === Administration Routes (System Admin Only) ===
	adminGroup := zoneGroup.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("", h.Create)
		adminGroup.PUT("/:id", h.Update)
		adminGroup.DELETE("/:id", h.Delete)
	}
}
