package zone

import (
	"net/http"
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/validation"
	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "zone not found")
	ErrCodeTaken         = apperror.New(http.StatusConflict, "zone code already exists")
	ErrVenueNotFound     = apperror.New(http.StatusUnprocessableEntity, "one or more venues do not exist")
	ErrFacilityNotFound  = apperror.New(http.StatusUnprocessableEntity, "facility does not exist")
	ErrFacilityElsewhere = apperror.New(http.StatusUnprocessableEntity, "facility must belong to one of the zone's venues")
)

// Zone is an area shared by one or more venues. A zone without a facility
// is a common zone.
type Zone struct {
	ID string
	Details
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Details is the editable part of a zone.
type Details struct {
	Code        string            `form:"code" validate:"required,code"`
	Name        string            `form:"name" validate:"required,min=2,max=100"`
	Capacity    int               `form:"capacity" validate:"gte=1"`
	Coordinates *site.Coordinates `form:"coordinates"`
	Radius      *float64          `form:"radius"`
	site.Supervisor
	ImageURL   *string  `form:"image_url" validate:"omitempty,max=500"`
	VenueIDs   []string `form:"venue_ids" validate:"required,min=1,dive,uuid"`
	FacilityID *string  `form:"facility_id" validate:"omitempty,uuid"`
}

// CommonZoneStatus is derived from the facility link and cannot be set.
func (z Zone) CommonZoneStatus() bool {
	return z.FacilityID == nil || *z.FacilityID == ""
}

// Validate checks tags and the radius rule.
func (d Details) Validate() error {
	errs := validation.Struct(d)
	if d.Radius != nil {
		if *d.Radius <= 0 {
			errs.Add("radius", "must be greater than 0")
		}
		if d.Coordinates == nil {
			errs.Add("coordinates", "is required when a radius is set")
		}
	}
	return site.Invalid(errs)
}

// ZoneFilter defines parameters for listing zones.
type ZoneFilter struct {
	VenueID    string
	FacilityID string
	Common     *bool // true: only common zones, false: only facility zones
	Search     string
	Page       int
	PageSize   int
}
