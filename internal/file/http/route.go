package http

import "github.com/gin-gonic/gin"

// RegisterRoutes serves stored site images. Image URLs of clusters, venues
// and zones point here; removing an orphaned image is admin only.
func RegisterRoutes(r gin.IRouter, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	files := r.Group("/files", authMiddleware)
	{
		files.GET("/:id", h.ServeFile)
		files.HEAD("/:id", h.ServeFile)
		files.GET("/:id/thumbnail", h.ServeThumbnail)
		files.DELETE("/:id", adminMiddleware, h.Delete)
	}
}
