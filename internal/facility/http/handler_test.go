package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ft-kumarsatyam/venue-management-system/internal/facility"
)

const (
	facilityID = "5c1d2e3f-0000-4000-8000-000000000005"
	venueID    = "3b6f0f62-0000-4000-8000-000000000003"
	sportID    = "9f1d5a0e-0000-4000-8000-000000000001"
)

type fakeService struct {
	facility.Service
	got    facility.Details
	filter facility.FacilityFilter
	err    error
}

func (f *fakeService) Create(_ context.Context, d facility.Details) (*facility.Facility, error) {
	f.got = d
	if f.err != nil {
		return nil, f.err
	}
	return &facility.Facility{ID: facilityID, Details: d}, nil
}

func (f *fakeService) List(_ context.Context, filter facility.FacilityFilter) ([]*facility.Facility, int, error) {
	f.filter = filter
	return []*facility.Facility{{ID: facilityID}}, 1, nil
}

func setup() (*gin.Engine, *fakeService) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{}
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), pass, pass)
	return r, svc
}

func postForm(r *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/facility", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_ParsesSets(t *testing.T) {
	r, svc := setup()

	w := postForm(r, url.Values{
		"venue_id":      {venueID},
		"sport_type_id": {sportID},
		"code":          {"F1"},
		"capacity":      {"12"},
		"radius":        {"7.5"},
		"amenities":     {`["lights"," lights ","lockers"]`},
		"zone_ids":      {`[]`},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, []string{"lights", "lockers"}, svc.got.Amenities)
	assert.Empty(t, svc.got.ZoneIDs)
	assert.Equal(t, 7.5, svc.got.Radius)
	assert.Contains(t, w.Body.String(), `"zone_ids":[]`)
}

func TestCreate_ServiceError(t *testing.T) {
	r, svc := setup()
	svc.err = facility.ErrZoneOutsideVenue

	w := postForm(r, url.Values{"venue_id": {venueID}, "zone_ids": {`["x"]`}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"zones must belong to the facility's venue"}`, w.Body.String())
}

func TestCreate_BadRadius(t *testing.T) {
	r, _ := setup()

	w := postForm(r, url.Values{"radius": {"wide"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"radius must be a number"}`, w.Body.String())
}

func TestList_ByVenue(t *testing.T) {
	r, svc := setup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/facility?venue_id="+venueID+"&page=1&limit=10", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, facility.FacilityFilter{VenueID: venueID, Page: 1, PageSize: 10}, svc.filter)
	assert.Contains(t, w.Body.String(), `"amenities":[]`)
}
