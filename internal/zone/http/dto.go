package http

import (
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
	"github.com/ft-kumarsatyam/venue-management-system/internal/zone"
)

// ZoneResponse is the JSON shape of a zone.
type ZoneResponse struct {
	ID                string            `json:"id"`
	Code              string            `json:"code"`
	Name              string            `json:"name"`
	Capacity          int               `json:"capacity"`
	Coordinates       *site.Coordinates `json:"coordinates"`
	Radius            *float64          `json:"radius"`
	SupervisorName    string            `json:"supervisor_name"`
	SupervisorContact string            `json:"supervisor_contact"`
	SupervisorEmail   string            `json:"supervisor_email"`
	ImageURL          *string           `json:"image_url"`
	VenueIDs          []string          `json:"venue_ids"`
	FacilityID        *string           `json:"facility_id"`
	CommonZoneStatus  bool              `json:"common_zone_status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ListZonesRequest defines query parameters for GET /zone.
type ListZonesRequest struct {
	request.ListParams
	VenueID    string `form:"venue_id" binding:"omitempty,uuid"`
	FacilityID string `form:"facility_id" binding:"omitempty,uuid"`
	Common     *bool  `form:"common"`
}

func NewZoneResponse(z *zone.Zone) ZoneResponse {
	venueIDs := z.VenueIDs
	if venueIDs == nil {
		venueIDs = []string{}
	}
	return ZoneResponse{
		ID:                z.ID,
		Code:              z.Code,
		Name:              z.Name,
		Capacity:          z.Capacity,
		Coordinates:       z.Coordinates,
		Radius:            z.Radius,
		SupervisorName:    z.Supervisor.Name,
		SupervisorContact: z.Supervisor.Contact,
		SupervisorEmail:   z.Supervisor.Email,
		ImageURL:          z.ImageURL,
		VenueIDs:          venueIDs,
		FacilityID:        z.FacilityID,
		CommonZoneStatus:  z.CommonZoneStatus(),
		CreatedAt:         z.CreatedAt,
		UpdatedAt:         z.UpdatedAt,
	}
}
