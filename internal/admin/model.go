// Package admin composes the gateway, stores, list views and refresh policy
// into the client used by the venue admin screens.
package admin

import "time"

type GeofencingType string

const (
	GeofenceRadius  GeofencingType = "radius"
	GeofencePolygon GeofencingType = "polygon"
)

// Coordinates is a point on the map.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Site holds the fields shared by clusters and venues.
type Site struct {
	ID                string         `json:"id"`
	Code              string         `json:"code"`
	Name              string         `json:"name"`
	Description       *string        `json:"description"`
	GeofencingType    GeofencingType `json:"geofencing_type"`
	Coordinates       *Coordinates   `json:"coordinates"`
	Radius            *float64       `json:"radius"`
	Polygon           []Coordinates  `json:"polygon"`
	SupervisorName    string         `json:"supervisor_name"`
	SupervisorContact string         `json:"supervisor_contact"`
	SupervisorEmail   string         `json:"supervisor_email"`
	ImageURL          *string        `json:"image_url"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (s Site) EntityID() string { return s.ID }

type Cluster struct {
	Site
	VenueCount int `json:"venue_count"`
}

type Venue struct {
	Site
	ClusterID *string `json:"cluster_id"`
	Capacity  int     `json:"capacity"`
	Address   string  `json:"address"`
}

// ClusterRef returns the owning cluster id, empty for an orphan venue.
func (v Venue) ClusterRef() string {
	if v.ClusterID == nil {
		return ""
	}
	return *v.ClusterID
}

// Zone is an area of one or more venues, optionally scoped to a facility.
type Zone struct {
	ID                string       `json:"id"`
	Code              string       `json:"code"`
	Name              string       `json:"name"`
	Capacity          int          `json:"capacity"`
	Coordinates       *Coordinates `json:"coordinates"`
	Radius            *float64     `json:"radius"`
	SupervisorName    string       `json:"supervisor_name"`
	SupervisorContact string       `json:"supervisor_contact"`
	SupervisorEmail   string       `json:"supervisor_email"`
	ImageURL          *string      `json:"image_url"`
	VenueIDs          []string     `json:"venue_ids"`
	FacilityID        *string      `json:"facility_id"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func (z Zone) EntityID() string { return z.ID }

// FacilityRef returns the owning facility id, empty for a common zone.
func (z Zone) FacilityRef() string {
	if z.FacilityID == nil {
		return ""
	}
	return *z.FacilityID
}

// CommonZoneStatus reports whether the zone belongs to its venues directly
// rather than to a facility.
func (z Zone) CommonZoneStatus() bool {
	return z.FacilityRef() == ""
}

type Facility struct {
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

func (f Facility) EntityID() string { return f.ID }

type SportType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s SportType) EntityID() string { return s.ID }
