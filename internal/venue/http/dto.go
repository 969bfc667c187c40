package http

import (
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
	sitehttp "github.com/ft-kumarsatyam/venue-management-system/internal/site/http"
	"github.com/ft-kumarsatyam/venue-management-system/internal/venue"
)

// VenueResponse is the JSON shape of a venue.
type VenueResponse struct {
	ID string `json:"id"`
	sitehttp.SiteResponse
	ClusterID *string   `json:"cluster_id"`
	Capacity  int       `json:"capacity"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListVenuesRequest defines query parameters for GET /venue.
type ListVenuesRequest struct {
	request.ListParams
	ClusterID string `form:"cluster_id" binding:"omitempty,uuid"`
}

func NewVenueResponse(v *venue.Venue) VenueResponse {
	return VenueResponse{
		ID:           v.ID,
		SiteResponse: sitehttp.NewSiteResponse(v.Info),
		ClusterID:    v.ClusterID,
		Capacity:     v.Capacity,
		Address:      v.Address,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
