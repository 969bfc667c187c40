package cluster

import (
	"net/http"
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
)

var (
	ErrNotFound  = apperror.New(http.StatusNotFound, "cluster not found")
	ErrCodeTaken = apperror.New(http.StatusConflict, "cluster code already exists")
)

// Cluster groups venues, e.g. a campus or a city district.
type Cluster struct {
	ID string
	site.Info
	VenueCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ClusterFilter defines filter options for listing clusters.
type ClusterFilter struct {
	Search   string // matches code or name
	Page     int
	PageSize int
}
