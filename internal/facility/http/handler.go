package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ft-kumarsatyam/venue-management-system/internal/facility"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/response"
)

// maxFormMemory bounds facility forms, which carry no files.
const maxFormMemory = 1 << 20

type FacilityHandler struct {
	service facility.Service
}

func NewHandler(service facility.Service) *FacilityHandler {
	return &FacilityHandler{service: service}
}

// List retrieves a page of facilities, optionally scoped to one venue.
func (h *FacilityHandler) List(c *gin.Context) {
	var req ListFacilitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, request.BadRequest("invalid query parameters", err))
		return
	}
	req.Normalize()

	facilities, total, err := h.service.List(c.Request.Context(), facility.FacilityFilter{
		VenueID:     req.VenueID,
		SportTypeID: req.SportTypeID,
		Search:      req.Search,
		Page:        req.Page,
		PageSize:    req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]FacilityResponse, len(facilities))
	for i, f := range facilities {
		items[i] = NewFacilityResponse(f)
	}

	response.Page(c, items, req.Page, req.Limit, total)
}

func (h *FacilityHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid facility id", err))
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, NewFacilityResponse(f))
}

// Create adds a facility and claims the listed zones.
// Access Control: System Admin only.
func (h *FacilityHandler) Create(c *gin.Context) {
	d, ok := h.parse(c)
	if !ok {
		return
	}

	f, err := h.service.Create(c.Request.Context(), d)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, NewFacilityResponse(f))
}

// Update replaces a facility and its zone set.
// Access Control: System Admin only.
func (h *FacilityHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, request.BadRequest("invalid facility id", err))
		return
	}

	d, ok := h.parse(c)
	if !ok {
		return
	}

	f, err := h.service.Update(c.Request.Context(), uri.ID, d)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, NewFacilityResponse(f))
}

// Delete removes a facility; its zones become common zones.
// Access Control: System Admin only.
func (h *FacilityHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid facility id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c)
}

func (h *FacilityHandler) parse(c *gin.Context) (facility.Details, bool) {
	form, err := request.ParseForm(c, maxFormMemory)
	if err != nil {
		response.Error(c, err)
		return facility.Details{}, false
	}

	d := facility.Details{
		VenueID:     form.String("venue_id"),
		SportTypeID: form.String("sport_type_id"),
		Code:        form.String("code"),
	}
	if d.Capacity, err = form.Int("capacity"); err != nil {
		response.Error(c, err)
		return facility.Details{}, false
	}
	radius, err := form.OptionalFloat("radius")
	if err != nil {
		response.Error(c, err)
		return facility.Details{}, false
	}
	if radius != nil {
		d.Radius = *radius
	}
	if d.Amenities, err = form.StringSet("amenities"); err != nil {
		response.Error(c, err)
		return facility.Details{}, false
	}
	if d.ZoneIDs, err = form.StringSet("zone_ids"); err != nil {
		response.Error(c, err)
		return facility.Details{}, false
	}
	return d, true
}
