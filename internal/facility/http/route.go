package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers facility routes.
func RegisterRoutes(g *gin.RouterGroup, h *FacilityHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	facilityGroup := g.Group("/facility")

	// === Authenticated Routes ===
	facilityGroup.Use(authMiddleware)
	{
		facilityGroup.GET("", h.List)
		facilityGroup.GET("/:id", h.Get)
	}

	// === Administration Routes (System Admin Only) ===
	adminGroup := facilityGroup.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("", h.Create)
		adminGroup.PUT("/:id", h.Update)
		adminGroup.DELETE("/:id", h.Delete)
	}
}
