package venue

import (
	"net/http"
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/validation"
	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "venue not found")
	ErrCodeTaken       = apperror.New(http.StatusConflict, "venue code already exists")
	ErrClusterNotFound = apperror.New(http.StatusUnprocessableEntity, "cluster does not exist")
)

// Venue is a physical site, optionally grouped under a cluster.
type Venue struct {
	ID string
	Details
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Details is the editable part of a venue.
type Details struct {
	site.Info
	ClusterID *string `form:"cluster_id" validate:"omitempty,uuid"` // nil for orphan venues
	Capacity  int     `form:"capacity" validate:"gte=1"`
	Address   string  `form:"address" validate:"required,max=255"`
}

// Validate checks tags and the geofence rules.
func (d Details) Validate() error {
	errs := validation.Struct(d)
	d.Geofence.Check(errs)
	return site.Invalid(errs)
}

// VenueFilter defines parameters for listing venues.
type VenueFilter struct {
	ClusterID string
	Search    string // matches code, name or address
	Page      int
	PageSize  int
}
