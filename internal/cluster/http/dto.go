package http

import (
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/cluster"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
	sitehttp "github.com/ft-kumarsatyam/venue-management-system/internal/site/http"
)

// ClusterResponse is the JSON shape of a cluster.
type ClusterResponse struct {
	ID string `json:"id"`
	sitehttp.SiteResponse
	VenueCount int       `json:"venue_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListClustersRequest defines query parameters for GET /cluster.
type ListClustersRequest struct {
	request.ListParams
}

func NewClusterResponse(c *cluster.Cluster) ClusterResponse {
	return ClusterResponse{
		ID:           c.ID,
		SiteResponse: sitehttp.NewSiteResponse(c.Info),
		VenueCount:   c.VenueCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
