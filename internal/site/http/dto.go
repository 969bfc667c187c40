package http

import (
	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
)

// SiteResponse is the JSON shape of the fields clusters and venues share.
type SiteResponse struct {
	Code              string             `json:"code"`
	Name              string             `json:"name"`
	Description       *string            `json:"description"`
	GeofencingType    string             `json:"geofencing_type"`
	Coordinates       *site.Coordinates  `json:"coordinates"`
	Radius            *float64           `json:"radius"`
	Polygon           []site.Coordinates `json:"polygon"`
	SupervisorName    string             `json:"supervisor_name"`
	SupervisorContact string             `json:"supervisor_contact"`
	SupervisorEmail   string             `json:"supervisor_email"`
	ImageURL          *string            `json:"image_url"`
}

func NewSiteResponse(i site.Info) SiteResponse {
	return SiteResponse{
		Code:              i.Code,
		Name:              i.Name,
		Description:       i.Description,
		GeofencingType:    string(i.Type),
		Coordinates:       i.Coordinates,
		Radius:            i.Radius,
		Polygon:           i.Polygon,
		SupervisorName:    i.Supervisor.Name,
		SupervisorContact: i.Supervisor.Contact,
		SupervisorEmail:   i.Supervisor.Email,
		ImageURL:          i.ImageURL,
	}
}
