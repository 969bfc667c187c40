package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers cluster routes.
func RegisterRoutes(g *gin.RouterGroup, h *ClusterHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	clusterGroup := g.Group("/cluster")

	// === Authenticated Routes ===
	clusterGroup.Use(authMiddleware)
	{
		clusterGroup.GET("", h.List)
		clusterGroup.GET("/:id", h.Get)
	}

	// === Administration Routes (System Admin Only) ===
	adminGroup := clusterGroup.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("", h.Create)
		adminGroup.PUT("/:id", h.Update)
		adminGroup.DELETE("/:id", h.Delete)
	}
}
