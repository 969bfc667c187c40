package admin

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ft-kumarsatyam/venue-management-system/internal/gateway"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/validation"
)

// ValidationError lists field-level problems found before any request is sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + validation.Errors(e.Fields).Error()
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// check runs struct tag validation and collects the failures into verr.
func check(v any, verr *ValidationError) {
	for field, msg := range validation.Struct(v) {
		verr.add(field, msg)
	}
}

// Upload is an image chosen for upload.
type Upload struct {
	Filename string
	Content  io.Reader
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func optional(s string) *string {
	return &s
}

// ------------------------
//   Cluster / Venue forms
// ------------------------

// SiteForm is the editable part shared by clusters and venues.
type SiteForm struct {
	Code              string         `form:"code" validate:"required,code"`
	Name              string         `form:"name" validate:"required,min=2,max=100"`
	Description       string         `form:"description" validate:"max=500"`
	GeofencingType    GeofencingType `form:"geofencing_type" validate:"required,oneof=radius polygon"`
	Coordinates       *Coordinates   `form:"coordinates"`
	Radius            *float64       `form:"radius"`
	Polygon           []Coordinates  `form:"polygon" validate:"omitempty,dive"`
	SupervisorName    string         `form:"supervisor_name" validate:"required,min=2,max=100"`
	SupervisorContact string         `form:"supervisor_contact" validate:"required,phone"`
	SupervisorEmail   string         `form:"supervisor_email" validate:"required,email"`
	ImageURL          string         `form:"-"`
	Image             *Upload        `form:"-" validate:"-"`
}

// checkGeofence enforces that exactly one geofencing mode is filled in.
// It mirrors site.Geofence.Check on the server; the messages must match.
func (f SiteForm) checkGeofence(verr *ValidationError) {
	switch f.GeofencingType {
	case GeofenceRadius:
		if f.Radius == nil || *f.Radius <= 0 {
			verr.add("radius", "is required in radius mode")
		}
		if f.Coordinates == nil {
			verr.add("coordinates", "is required in radius mode")
		}
		if len(f.Polygon) > 0 {
			verr.add("polygon", "must be empty in radius mode")
		}
	case GeofencePolygon:
		if len(f.Polygon) < 3 {
			verr.add("polygon", "needs at least 3 vertices")
		}
		if f.Radius != nil {
			verr.add("radius", "must be empty in polygon mode")
		}
	}
}

func (f SiteForm) fill(mp *gateway.Form) error {
	mp.Set("code", strings.TrimSpace(f.Code))
	mp.Set("name", strings.TrimSpace(f.Name))
	mp.SetOptional("description", optional(f.Description))
	mp.Set("geofencing_type", string(f.GeofencingType))

	var coords any
	if f.Coordinates != nil {
		coords = f.Coordinates
	}
	if err := mp.SetJSON("coordinates", coords); err != nil {
		return err
	}

	switch f.GeofencingType {
	case GeofencePolygon:
		mp.Clear("radius")
		if err := mp.SetJSON("polygon", f.Polygon); err != nil {
			return err
		}
	default:
		if f.Radius != nil {
			mp.Set("radius", formatFloat(*f.Radius))
		} else {
			mp.Clear("radius")
		}
		mp.Clear("polygon")
	}

	mp.Set("supervisor_name", strings.TrimSpace(f.SupervisorName))
	mp.Set("supervisor_contact", strings.TrimSpace(f.SupervisorContact))
	mp.Set("supervisor_email", strings.TrimSpace(f.SupervisorEmail))

	if f.Image != nil {
		mp.Attach("image", f.Image.Filename, f.Image.Content)
		mp.Remove("image_url")
	} else {
		mp.SetOptional("image_url", optional(f.ImageURL))
	}
	return nil
}

type ClusterForm struct {
	SiteForm
}

// Validate checks the form without sending anything.
func (f ClusterForm) Validate() error {
	verr := &ValidationError{}
	check(f, verr)
	f.checkGeofence(verr)
	return verr.orNil()
}

// Multipart encodes the form for create or update.
func (f ClusterForm) Multipart(mode gateway.Mode) (*gateway.Form, error) {
	mp := gateway.NewForm(mode)
	if err := f.fill(mp); err != nil {
		return nil, err
	}
	return mp, nil
}

// ClusterFormFrom prefills an edit form from a loaded cluster.
func ClusterFormFrom(c Cluster) ClusterForm {
	return ClusterForm{SiteForm: siteFormFrom(c.Site)}
}

type VenueForm struct {
	SiteForm
	ClusterID string `form:"cluster_id"`
	Capacity  int    `form:"capacity" validate:"gte=1"`
	Address   string `form:"address" validate:"required,max=255"`
}

func (f VenueForm) Validate() error {
	verr := &ValidationError{}
	check(f, verr)
	f.checkGeofence(verr)
	return verr.orNil()
}

func (f VenueForm) Multipart(mode gateway.Mode) (*gateway.Form, error) {
	mp := gateway.NewForm(mode)
	if err := f.fill(mp); err != nil {
		return nil, err
	}
	mp.SetOptional("cluster_id", optional(f.ClusterID))
	mp.Set("capacity", strconv.Itoa(f.Capacity))
	mp.Set("address", strings.TrimSpace(f.Address))
	return mp, nil
}

// VenueFormFrom prefills an edit form from a loaded venue.
func VenueFormFrom(v Venue) VenueForm {
	return VenueForm{
		SiteForm:  siteFormFrom(v.Site),
		ClusterID: v.ClusterRef(),
		Capacity:  v.Capacity,
		Address:   v.Address,
	}
}

func siteFormFrom(s Site) SiteForm {
	f := SiteForm{
		Code:              s.Code,
		Name:              s.Name,
		GeofencingType:    s.GeofencingType,
		Coordinates:       s.Coordinates,
		Radius:            s.Radius,
		Polygon:           s.Polygon,
		SupervisorName:    s.SupervisorName,
		SupervisorContact: s.SupervisorContact,
		SupervisorEmail:   s.SupervisorEmail,
	}
	if s.Description != nil {
		f.Description = *s.Description
	}
	if s.ImageURL != nil {
		f.ImageURL = *s.ImageURL
	}
	return f
}

// ------------------------
//        Zone form
// ------------------------

type ZoneForm struct {
	Code              string       `form:"code" validate:"required,code"`
	Name              string       `form:"name" validate:"required,min=2,max=100"`
	Capacity          int          `form:"capacity" validate:"gte=1"`
	Coordinates       *Coordinates `form:"coordinates"`
	Radius            *float64     `form:"radius"`
	SupervisorName    string       `form:"supervisor_name" validate:"required,min=2,max=100"`
	SupervisorContact string       `form:"supervisor_contact" validate:"required,phone"`
	SupervisorEmail   string       `form:"supervisor_email" validate:"required,email"`
	VenueIDs          []string     `form:"venue_ids" validate:"required,min=1,dive,required"`
	FacilityID        string       `form:"facility_id"`
	ImageURL          string       `form:"-"`
	Image             *Upload      `form:"-" validate:"-"`
}

func (f ZoneForm) Validate() error {
	verr := &ValidationError{}
	check(f, verr)
	if f.Radius != nil {
		if *f.Radius <= 0 {
			verr.add("radius", "must be greater than 0")
		}
		if f.Coordinates == nil {
			verr.add("coordinates", "is required when a radius is set")
		}
	}
	return verr.orNil()
}

func (f ZoneForm) Multipart(mode gateway.Mode) (*gateway.Form, error) {
	mp := gateway.NewForm(mode)
	mp.Set("code", strings.TrimSpace(f.Code))
	mp.Set("name", strings.TrimSpace(f.Name))
	mp.Set("capacity", strconv.Itoa(f.Capacity))

	var coords any
	if f.Coordinates != nil {
		coords = f.Coordinates
	}
	if err := mp.SetJSON("coordinates", coords); err != nil {
		return nil, err
	}
	if f.Radius != nil {
		mp.Set("radius", formatFloat(*f.Radius))
	} else {
		mp.Clear("radius")
	}

	mp.Set("supervisor_name", strings.TrimSpace(f.SupervisorName))
	mp.Set("supervisor_contact", strings.TrimSpace(f.SupervisorContact))
	mp.Set("supervisor_email", strings.TrimSpace(f.SupervisorEmail))

	if err := mp.SetJSON("venue_ids", uniqueStrings(f.VenueIDs)); err != nil {
		return nil, err
	}
	mp.SetOptional("facility_id", optional(f.FacilityID))

	if f.Image != nil {
		mp.Attach("image", f.Image.Filename, f.Image.Content)
		mp.Remove("image_url")
	} else {
		mp.SetOptional("image_url", optional(f.ImageURL))
	}
	return mp, nil
}

// ZoneFormFrom prefills an edit form from a loaded zone.
func ZoneFormFrom(z Zone) ZoneForm {
	f := ZoneForm{
		Code:              z.Code,
		Name:              z.Name,
		Capacity:          z.Capacity,
		Coordinates:       z.Coordinates,
		Radius:            z.Radius,
		SupervisorName:    z.SupervisorName,
		SupervisorContact: z.SupervisorContact,
		SupervisorEmail:   z.SupervisorEmail,
		VenueIDs:          append([]string(nil), z.VenueIDs...),
		FacilityID:        z.FacilityRef(),
	}
	if z.ImageURL != nil {
		f.ImageURL = *z.ImageURL
	}
	return f
}

// ------------------------
//      Facility form
// ------------------------

type FacilityForm struct {
	VenueID     string   `form:"venue_id" validate:"required"`
	SportTypeID string   `form:"sport_type_id" validate:"required"`
	Code        string   `form:"code" validate:"required,code"`
	Capacity    int      `form:"capacity" validate:"gte=1"`
	Radius      float64  `form:"radius" validate:"gt=0"`
	Amenities   []string `form:"amenities" validate:"dive,required,max=50"`
	ZoneIDs     []string `form:"zone_ids" validate:"dive,required"`
}

func (f FacilityForm) Validate() error {
	verr := &ValidationError{}
	check(f, verr)
	return verr.orNil()
}

func (f FacilityForm) Multipart(mode gateway.Mode) (*gateway.Form, error) {
	mp := gateway.NewForm(mode)
	mp.Set("venue_id", f.VenueID)
	mp.Set("sport_type_id", f.SportTypeID)
	mp.Set("code", strings.TrimSpace(f.Code))
	mp.Set("capacity", strconv.Itoa(f.Capacity))
	mp.Set("radius", formatFloat(f.Radius))
	if err := mp.SetJSON("amenities", uniqueStrings(f.Amenities)); err != nil {
		return nil, fmt.Errorf("amenities: %w", err)
	}
	if err := mp.SetJSON("zone_ids", uniqueStrings(f.ZoneIDs)); err != nil {
		return nil, fmt.Errorf("zone_ids: %w", err)
	}
	return mp, nil
}

// FacilityFormFrom prefills an edit form from a loaded facility.
func FacilityFormFrom(f Facility) FacilityForm {
	return FacilityForm{
		VenueID:     f.VenueID,
		SportTypeID: f.SportTypeID,
		Code:        f.Code,
		Capacity:    f.Capacity,
		Radius:      f.Radius,
		Amenities:   append([]string(nil), f.Amenities...),
		ZoneIDs:     append([]string(nil), f.ZoneIDs...),
	}
}

// uniqueStrings trims, drops blanks and duplicates, keeping first-seen order.
// It never returns nil so the field encodes as [].
func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
