package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ft-kumarsatyam/venue-management-system/internal/auth"
	"github.com/ft-kumarsatyam/venue-management-system/internal/cluster"
	filehttp "github.com/ft-kumarsatyam/venue-management-system/internal/file/http"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/response"
	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
)

type ClusterHandler struct {
	service cluster.Service
	images  filehttp.Uploader
	upload  filehttp.ImageUpload
}

func NewHandler(service cluster.Service, images filehttp.Uploader, upload filehttp.ImageUpload) *ClusterHandler {
	return &ClusterHandler{
		service: service,
		images:  images,
		upload:  upload,
	}
}

// List retrieves a page of clusters, optionally filtered by a search term.
func (h *ClusterHandler) List(c *gin.Context) {
	var req ListClustersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, request.BadRequest("invalid query parameters", err))
		return
	}
	req.Normalize()

	clusters, total, err := h.service.List(c.Request.Context(), cluster.ClusterFilter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ClusterResponse, len(clusters))
	for i, cl := range clusters {
		items[i] = NewClusterResponse(cl)
	}

	response.Page(c, items, req.Page, req.Limit, total)
}

// Get retrieves a single cluster.
func (h *ClusterHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid cluster id", err))
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, NewClusterResponse(cl))
}

// Create adds a cluster from a multipart form with an optional image.
// Access Control: System Admin only.
func (h *ClusterHandler) Create(c *gin.Context) {
	info, ok := h.parse(c)
	if !ok {
		return
	}

	img, err := filehttp.AttachImage(c, h.images, h.upload, auth.GetUserID(c), &info.ImageURL)
	if err != nil {
		response.Error(c, err)
		return
	}

	cl, err := h.service.Create(c.Request.Context(), info)
	if err != nil {
		h.images.Discard(c, img)
		response.Error(c, err)
		return
	}

	response.Created(c, NewClusterResponse(cl))
}

// Update replaces a cluster. Optional fields sent as "null" are cleared.
// Access Control: System Admin only.
func (h *ClusterHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, request.BadRequest("invalid cluster id", err))
		return
	}

	info, ok := h.parse(c)
	if !ok {
		return
	}

	img, err := filehttp.AttachImage(c, h.images, h.upload, auth.GetUserID(c), &info.ImageURL)
	if err != nil {
		response.Error(c, err)
		return
	}

	cl, err := h.service.Update(c.Request.Context(), uri.ID, info)
	if err != nil {
		h.images.Discard(c, img)
		response.Error(c, err)
		return
	}

	response.OK(c, NewClusterResponse(cl))
}

// Delete removes a cluster; its venues are kept without a cluster.
// Access Control: System Admin only.
func (h *ClusterHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid cluster id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c)
}

func (h *ClusterHandler) parse(c *gin.Context) (site.Info, bool) {
	form, err := request.ParseForm(c, h.upload.MaxSizeBytes)
	if err != nil {
		response.Error(c, err)
		return site.Info{}, false
	}
	info, err := site.ParseInfo(form)
	if err != nil {
		response.Error(c, err)
		return site.Info{}, false
	}
	return info, true
}
