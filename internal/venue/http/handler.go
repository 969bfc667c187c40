package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ft-kumarsatyam/venue-management-system/internal/auth"
	filehttp "github.com/ft-kumarsatyam/venue-management-system/internal/file/http"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/response"
	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
	"github.com/ft-kumarsatyam/venue-management-system/internal/venue"
)

type VenueHandler struct {
	service venue.Service
	images  filehttp.Uploader
	upload  filehttp.ImageUpload
}

func NewHandler(service venue.Service, images filehttp.Uploader, upload filehttp.ImageUpload) *VenueHandler {
	return &VenueHandler{
		service: service,
		images:  images,
		upload:  upload,
	}
}

// List retrieves a page of venues, optionally scoped to one cluster.
func (h *VenueHandler) List(c *gin.Context) {
	var req ListVenuesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, request.BadRequest("invalid query parameters", err))
		return
	}
	req.Normalize()

	venues, total, err := h.service.List(c.Request.Context(), venue.VenueFilter{
		ClusterID: req.ClusterID,
		Search:    req.Search,
		Page:      req.Page,
		PageSize:  req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]VenueResponse, len(venues))
	for i, v := range venues {
		items[i] = NewVenueResponse(v)
	}

	response.Page(c, items, req.Page, req.Limit, total)
}

// Get retrieves a single venue.
func (h *VenueHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid venue id", err))
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, NewVenueResponse(v))
}

// Create adds a venue from a multipart form with an optional image.
// Access Control: System Admin only.
func (h *VenueHandler) Create(c *gin.Context) {
	d, ok := h.parse(c)
	if !ok {
		return
	}

	img, err := filehttp.AttachImage(c, h.images, h.upload, auth.GetUserID(c), &d.ImageURL)
	if err != nil {
		response.Error(c, err)
		return
	}

	v, err := h.service.Create(c.Request.Context(), d)
	if err != nil {
		h.images.Discard(c, img)
		response.Error(c, err)
		return
	}

	response.Created(c, NewVenueResponse(v))
}

// Update replaces a venue. Sending cluster_id as "null" detaches it.
// Access Control: System Admin only.
func (h *VenueHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, request.BadRequest("invalid venue id", err))
		return
	}

	d, ok := h.parse(c)
	if !ok {
		return
	}

	img, err := filehttp.AttachImage(c, h.images, h.upload, auth.GetUserID(c), &d.ImageURL)
	if err != nil {
		response.Error(c, err)
		return
	}

	v, err := h.service.Update(c.Request.Context(), uri.ID, d)
	if err != nil {
		h.images.Discard(c, img)
		response.Error(c, err)
		return
	}

	response.OK(c, NewVenueResponse(v))
}

// Delete removes a venue with its facilities.
// Access Control: System Admin only.
func (h *VenueHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid venue id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c)
}

func (h *VenueHandler) parse(c *gin.Context) (venue.Details, bool) {
	form, err := request.ParseForm(c, h.upload.MaxSizeBytes)
	if err != nil {
		response.Error(c, err)
		return venue.Details{}, false
	}

	info, err := site.ParseInfo(form)
	if err != nil {
		response.Error(c, err)
		return venue.Details{}, false
	}
	capacity, err := form.Int("capacity")
	if err != nil {
		response.Error(c, err)
		return venue.Details{}, false
	}

	return venue.Details{
		Info:      info,
		ClusterID: form.Optional("cluster_id"),
		Capacity:  capacity,
		Address:   form.String("address"),
	}, true
}
