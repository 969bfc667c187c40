package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers venue routes.
func RegisterRoutes(g *gin.RouterGroup, h *VenueHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	venueGroup := g.Group("/venue")

	// === Authenticated Routes ===
	venueGroup.Use(authMiddleware)
	{
		venueGroup.GET("", h.List)
		venueGroup.GET("/:id", h.Get)
	}

	// === Administration Routes (System Admin Only) ===
	adminGroup := venueGroup.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("", h.Create)
		adminGroup.PUT("/:id", h.Update)
		adminGroup.DELETE("/:id", h.Delete)
	}
}
