package http

import (
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/facility"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
)

type FacilityResponse struct {
	ID          string    `json:"id"`
	VenueID     string    `json:"venue_id"`
	SportTypeID string    `json:"sport_type_id"`
	Code        string    `json:"code"`
	Capacity    int       `json:"capacity"`
	Radius      float64   `json:"radius"`
	Amenities   []string  `json:"amenities"`
	ZoneIDs     []string  `json:"zone_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListFacilitiesRequest defines query parameters for GET /facility.
type ListFacilitiesRequest struct {
	request.ListParams
	VenueID     string `form:"venue_id" binding:"omitempty,uuid"`
	SportTypeID string `form:"sport_type_id" binding:"omitempty,uuid"`
}

func NewFacilityResponse(f *facility.Facility) FacilityResponse {
	return FacilityResponse{
		ID:          f.ID,
		VenueID:     f.VenueID,
		SportTypeID: f.SportTypeID,
		Code:        f.Code,
		Capacity:    f.Capacity,
		Radius:      f.Radius,
		Amenities:   orEmpty(f.Amenities),
		ZoneIDs:     orEmpty(f.ZoneIDs),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
