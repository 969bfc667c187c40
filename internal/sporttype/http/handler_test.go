package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ft-kumarsatyam/venue-management-system/internal/sporttype"
)

const sportID = "9f1d5a0e-8c2b-4a57-b1f3-6a2d0c9e4b11"

type fakeService struct {
	sporttype.Service
	filter  sporttype.Filter
	created sporttype.CreateRequest
}

func (f *fakeService) Create(_ context.Context, req sporttype.CreateRequest) (*sporttype.SportType, error) {
	f.created = req
	return &sporttype.SportType{ID: sportID, Name: req.Name, Description: req.Description}, nil
}

func (f *fakeService) List(_ context.Context, filter sporttype.Filter) ([]*sporttype.SportType, int, error) {
	f.filter = filter
	return []*sporttype.SportType{{ID: sportID, Name: "Badminton"}}, 1, nil
}

func (f *fakeService) Delete(_ context.Context, id string) error {
	return sporttype.ErrInUse
}

func setup() (*gin.Engine, *fakeService) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{}
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), pass, pass)
	return r, svc
}

func TestCreate_JSON(t *testing.T) {
	r, svc := setup()

	req := httptest.NewRequest(http.MethodPost, "/v1/sport-type", strings.NewReader(`{"name":"Badminton","description":"indoor"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Badminton", svc.created.Name)
	assert.Contains(t, w.Body.String(), `"id":"`+sportID+`"`)
}

func TestCreate_MissingName(t *testing.T) {
	r, _ := setup()

	req := httptest.NewRequest(http.MethodPost, "/v1/sport-type", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestList_Sorting(t *testing.T) {
	r, svc := setup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/sport-type?limit=1000&sort_by=created_at&sort_order=desc", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sporttype.Filter{Page: 1, PageSize: 1000, SortBy: "created_at", SortOrder: "DESC"}, svc.filter)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/sport-type?sort_by=popularity", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete_InUse(t *testing.T) {
	r, _ := setup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/sport-type/"+sportID, nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"sport type is used by facilities"}`, w.Body.String())
}
