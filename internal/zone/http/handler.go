package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ft-kumarsatyam/venue-management-system/internal/auth"
	filehttp "github.com/ft-kumarsatyam/venue-management-system/internal/file/http"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/response"
	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
	"github.com/ft-kumarsatyam/venue-management-system/internal/zone"
)

type ZoneHandler struct {
	service zone.Service
	images  filehttp.Uploader
	upload  filehttp.ImageUpload
}

func NewHandler(service zone.Service, images filehttp.Uploader, upload filehttp.ImageUpload) *ZoneHandler {
	return &ZoneHandler{
		service: service,
		images:  images,
		upload:  upload,
	}
}

// List retrieves a page of zones, optionally scoped to a venue or facility.
func (h *ZoneHandler) List(c *gin.Context) {
	var req ListZonesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, request.BadRequest("invalid query parameters", err))
		return
	}
	req.Normalize()

	zones, total, err := h.service.List(c.Request.Context(), zone.ZoneFilter{
		VenueID:    req.VenueID,
		FacilityID: req.FacilityID,
		Common:     req.Common,
		Search:     req.Search,
		Page:       req.Page,
		PageSize:   req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ZoneResponse, len(zones))
	for i, z := range zones {
		items[i] = NewZoneResponse(z)
	}

	response.Page(c, items, req.Page, req.Limit, total)
}

func (h *ZoneHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid zone id", err))
		return
	}

	z, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, NewZoneResponse(z))
}

// Create adds a zone from a multipart form with an optional image.
// Access Control: System Admin only.
func (h *ZoneHandler) Create(c *gin.Context) {
	d, ok := h.parse(c)
	if !ok {
		return
	}

	img, err := filehttp.AttachImage(c, h.images, h.upload, auth.GetUserID(c), &d.ImageURL)
	if err != nil {
		response.Error(c, err)
		return
	}

	z, err := h.service.Create(c.Request.Context(), d)
	if err != nil {
		h.images.Discard(c, img)
		response.Error(c, err)
		return
	}

	response.Created(c, NewZoneResponse(z))
}

// Update replaces a zone. Sending facility_id as "null" makes it a common zone.
// Access Control: System Admin only.
func (h *ZoneHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, request.BadRequest("invalid zone id", err))
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

	z, err := h.service.Update(c.Request.Context(), uri.ID, d)
	if err != nil {
		h.images.Discard(c, img)
		response.Error(c, err)
		return
	}

	response.OK(c, NewZoneResponse(z))
}

// Delete removes a zone and its venue links.
// Access Control: System Admin only.
func (h *ZoneHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid zone id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c)
}

func (h *ZoneHandler) parse(c *gin.Context) (zone.Details, bool) {
	form, err := request.ParseForm(c, h.upload.MaxSizeBytes)
	if err != nil {
		response.Error(c, err)
		return zone.Details{}, false
	}

	d := zone.Details{
		Code:       form.String("code"),
		Name:       form.String("name"),
		Supervisor: site.ParseSupervisor(form),
		ImageURL:   form.Optional("image_url"),
		FacilityID: form.Optional("facility_id"),
	}
	if d.Capacity, err = form.Int("capacity"); err != nil {
		response.Error(c, err)
		return zone.Details{}, false
	}
	if d.Coordinates, err = site.ParseCoordinates(form); err != nil {
		response.Error(c, err)
		return zone.Details{}, false
	}
	if d.Radius, err = form.OptionalFloat("radius"); err != nil {
		response.Error(c, err)
		return zone.Details{}, false
	}
	if d.VenueIDs, err = form.StringSet("venue_ids"); err != nil {
		response.Error(c, err)
		return zone.Details{}, false
	}
	return d, true
}
