// Package site holds the fields clusters and venues share: identity,
// geofence, supervisor and image, with their form parsing, validation and
// column mapping.
package site

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/validation"
)

type GeofencingType string

const (
	GeofenceRadius  GeofencingType = "radius"
	GeofencePolygon GeofencingType = "polygon"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Supervisor is the on-site contact person.
type Supervisor struct {
	Name    string `form:"supervisor_name" validate:"required,min=2,max=100"`
	Contact string `form:"supervisor_contact" validate:"required,phone"`
	Email   string `form:"supervisor_email" validate:"required,email"`
}

// Geofence is either a circle (coordinates + radius in meters) or a polygon.
type Geofence struct {
	Type        GeofencingType `form:"geofencing_type" validate:"required,oneof=radius polygon"`
	Coordinates *Coordinates   `form:"coordinates"`
	Radius      *float64       `form:"radius"`
	Polygon     []Coordinates  `form:"polygon" validate:"omitempty,dive"`
}

// Check enforces that exactly one geofencing mode is filled in. The admin
// client repeats these rules in SiteForm.checkGeofence; keep both in step.
func (g Geofence) Check(errs validation.Errors) {
	switch g.Type {
	case GeofenceRadius:
		if g.Radius == nil || *g.Radius <= 0 {
			errs.Add("radius", "is required in radius mode")
		}
		if g.Coordinates == nil {
			errs.Add("coordinates", "is required in radius mode")
		}
		if len(g.Polygon) > 0 {
			errs.Add("polygon", "must be empty in radius mode")
		}
	case GeofencePolygon:
		if len(g.Polygon) < 3 {
			errs.Add("polygon", "needs at least 3 vertices")
		}
		if g.Radius != nil {
			errs.Add("radius", "must be empty in polygon mode")
		}
	}
}

// Info is the editable part of a cluster or venue.
type Info struct {
	Code        string  `form:"code" validate:"required,code"`
	Name        string  `form:"name" validate:"required,min=2,max=100"`
	Description *string `form:"description" validate:"omitempty,max=500"`
	Geofence
	Supervisor
	ImageURL *string `form:"image_url" validate:"omitempty,max=500"`
}

// Validate checks tags and the geofence rules.
func (i Info) Validate() error {
	errs := validation.Struct(i)
	i.Geofence.Check(errs)
	return Invalid(errs)
}

// Invalid turns collected field errors into a 400, or nil when there are none.
func Invalid(errs validation.Errors) error {
	if len(errs) == 0 {
		return nil
	}
	return apperror.Wrap(errs, http.StatusBadRequest, "validation failed: "+errs.Error())
}

// ParseInfo reads the shared fields from an entity form. Unset optional
// fields stay nil so an update clears them.
func ParseInfo(f *request.Form) (Info, error) {
	info := Info{
		Code:        f.String("code"),
		Name:        f.String("name"),
		Description: f.Optional("description"),
		Geofence: Geofence{
			Type: GeofencingType(f.String("geofencing_type")),
		},
		Supervisor: ParseSupervisor(f),
		ImageURL:   f.Optional("image_url"),
	}

	var err error
	if info.Coordinates, err = ParseCoordinates(f); err != nil {
		return Info{}, err
	}
	if info.Radius, err = f.OptionalFloat("radius"); err != nil {
		return Info{}, err
	}
	if _, err = f.JSON("polygon", &info.Polygon); err != nil {
		return Info{}, err
	}
	return info, nil
}

// ParseSupervisor reads the supervisor fields.
func ParseSupervisor(f *request.Form) Supervisor {
	return Supervisor{
		Name:    f.String("supervisor_name"),
		Contact: f.String("supervisor_contact"),
		Email:   f.String("supervisor_email"),
	}
}

// ParseCoordinates reads the JSON coordinates field.
func ParseCoordinates(f *request.Form) (*Coordinates, error) {
	var c Coordinates
	ok, err := f.JSON("coordinates", &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

// EncodePolygon renders a polygon for a jsonb column; empty polygons are NULL.
func EncodePolygon(p []Coordinates) (*string, error) {
	if len(p) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode polygon: %w", err)
	}
	s := string(b)
	return &s, nil
}

// DecodePolygon parses a jsonb polygon column.
func DecodePolygon(raw []byte) ([]Coordinates, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var p []Coordinates
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode polygon: %w", err)
	}
	return p, nil
}
