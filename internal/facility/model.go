package facility

import (
	"net/http"
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/validation"
	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "facility not found")
	ErrCodeTaken         = apperror.New(http.StatusConflict, "facility code already exists in this venue")
	ErrVenueNotFound     = apperror.New(http.StatusUnprocessableEntity, "venue does not exist")
	ErrSportTypeNotFound = apperror.New(http.StatusUnprocessableEntity, "sport type does not exist")
	ErrZoneOutsideVenue  = apperror.New(http.StatusUnprocessableEntity, "zones must belong to the facility's venue")
)

// Facility is a playable unit of a venue (e.g., Court 1). Its zones are the
// zones whose facility_id points at it.
type Facility struct {
	ID string
	Details
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Details is the editable part of a facility.
type Details struct {
	VenueID     string   `form:"venue_id" validate:"required,uuid"`
	SportTypeID string   `form:"sport_type_id" validate:"required,uuid"`
	Code        string   `form:"code" validate:"required,code"`
	Capacity    int      `form:"capacity" validate:"gte=1"`
	Radius      float64  `form:"radius" validate:"gt=0"`
	Amenities   []string `form:"amenities" validate:"max=50,dive,required,max=50"`
	ZoneIDs     []string `form:"zone_ids" validate:"dive,uuid"`
}

func (d Details) Validate() error {
	return site.Invalid(validation.Struct(d))
}

// FacilityFilter defines parameters for listing facilities.
type FacilityFilter struct {
	VenueID     string
	SportTypeID string
	Search      string // matches code
	Page        int
	PageSize    int
}
