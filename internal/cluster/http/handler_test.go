package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ft-kumarsatyam/venue-management-system/internal/cluster"
	"github.com/ft-kumarsatyam/venue-management-system/internal/file"
	filehttp "github.com/ft-kumarsatyam/venue-management-system/internal/file/http"
	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
)

const clusterID = "0b5c2a5e-3f43-4c38-9f3e-0e0d2b1b7a01"

type fakeService struct {
	clusters map[string]*cluster.Cluster
	filter   cluster.ClusterFilter
}

func (f *fakeService) Create(_ context.Context, info site.Info) (*cluster.Cluster, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	c := &cluster.Cluster{ID: clusterID, Info: info}
	f.clusters[c.ID] = c
	return c, nil
}

func (f *fakeService) GetByID(_ context.Context, id string) (*cluster.Cluster, error) {
	c, ok := f.clusters[id]
	if !ok {
		return nil, cluster.ErrNotFound
	}
	return c, nil
}

func (f *fakeService) List(_ context.Context, filter cluster.ClusterFilter) ([]*cluster.Cluster, int, error) {
	f.filter = filter
	var out []*cluster.Cluster
	for _, c := range f.clusters {
		out = append(out, c)
	}
	return out, 25, nil
}

func (f *fakeService) Update(ctx context.Context, id string, info site.Info) (*cluster.Cluster, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Info = info
	return c, nil
}

func (f *fakeService) Delete(_ context.Context, id string) error {
	if _, ok := f.clusters[id]; !ok {
		return cluster.ErrNotFound
	}
	delete(f.clusters, id)
	return nil
}

func (f *fakeService) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.clusters[id]
	return ok, nil
}

type fakeUploader struct {
	saved     []*file.File
	discarded []*file.File
}

func (u *fakeUploader) Save(c *gin.Context, cfg filehttp.ImageUpload, userID string) (*file.File, error) {
	if _, err := c.FormFile("image"); err != nil {
		return nil, nil
	}
	f := &file.File{ID: "11111111-2222-3333-4444-555555555555", UserID: userID}
	u.saved = append(u.saved, f)
	return f, nil
}

func (u *fakeUploader) Discard(_ *gin.Context, f *file.File) {
	if f != nil {
		u.discarded = append(u.discarded, f)
	}
}

func setup() (*gin.Engine, *fakeService, *fakeUploader) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{clusters: map[string]*cluster.Cluster{}}
	up := &fakeUploader{}
	h := NewHandler(svc, up, filehttp.ImageUpload{MaxSizeBytes: 1 << 20})

	r := gin.New()
	pass := func(c *gin.Context) { c.Set("userID", "admin-1"); c.Next() }
	RegisterRoutes(r.Group("/v1"), h, pass, pass)
	return r, svc, up
}

func multipartBody(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withImage {
		part, err := mw.CreateFormFile("image", "north.png")
		require.NoError(t, err)
		_, _ = part.Write([]byte("png"))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"code":               "CL-01",
		"name":               "North Campus",
		"description":        "Main grounds",
		"geofencing_type":    "radius",
		"coordinates":        `{"lat":12.5,"lng":77.25}`,
		"radius":             "250",
		"supervisor_name":    "Asha Rao",
		"supervisor_contact": "+919876543210",
		"supervisor_email":   "asha@example.com",
	}
}

func do(r *gin.Engine, method, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_WithImage(t *testing.T) {
	r, svc, up := setup()

	body, ct := multipartBody(t, validFields(), true)
	w := do(r, http.MethodPost, "/v1/cluster", body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool            `json:"success"`
		Data    ClusterResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "North Campus", resp.Data.Name)
	assert.Equal(t, "radius", resp.Data.GeofencingType)
	require.NotNil(t, resp.Data.ImageURL)
	assert.Equal(t, "/v1/files/11111111-2222-3333-4444-555555555555", *resp.Data.ImageURL)

	assert.Len(t, up.saved, 1)
	assert.Equal(t, "admin-1", up.saved[0].UserID)
	assert.Contains(t, svc.clusters, clusterID)
}

func TestCreate_InvalidDiscardsImage(t *testing.T) {
	r, _, up := setup()

	fields := validFields()
	fields["geofencing_type"] = "polygon"
	body, ct := multipartBody(t, fields, true)
	w := do(r, http.MethodPost, "/v1/cluster", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"validation failed: polygon needs at least 3 vertices; radius must be empty in polygon mode"}`, w.Body.String())
	assert.Len(t, up.discarded, 1)
}

func TestUpdate_NullClearsDescription(t *testing.T) {
	r, svc, _ := setup()
	desc := "old"
	svc.clusters[clusterID] = &cluster.Cluster{ID: clusterID, Info: site.Info{Name: "Old", Description: &desc}}

	fields := validFields()
	fields["description"] = "null"
	fields["image_url"] = "null"
	body, ct := multipartBody(t, fields, false)
	w := do(r, http.MethodPut, "/v1/cluster/"+clusterID, body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Nil(t, svc.clusters[clusterID].Description)
	assert.Equal(t, "North Campus", svc.clusters[clusterID].Name)
	assert.Contains(t, w.Body.String(), `"description":null`)
}

func TestList_Envelope(t *testing.T) {
	r, svc, _ := setup()
	svc.clusters[clusterID] = &cluster.Cluster{ID: clusterID, Info: site.Info{Name: "North"}, VenueCount: 4}

	w := do(r, http.MethodGet, "/v1/cluster?page=2&limit=10&search=%20north%20", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.EqualValues(t, 25, resp["totalItems"])
	assert.EqualValues(t, 3, resp["totalPages"])
	assert.EqualValues(t, 2, resp["currentPage"])
	assert.EqualValues(t, 10, resp["itemsPerPage"])
	assert.Equal(t, true, resp["hasNextPage"])
	assert.Equal(t, true, resp["hasPrevPage"])

	data := resp["data"].([]any)
	require.Len(t, data, 1)
	assert.EqualValues(t, 4, data[0].(map[string]any)["venue_count"])

	assert.Equal(t, cluster.ClusterFilter{Search: "north", Page: 2, PageSize: 10}, svc.filter)
}

func TestList_BadQuery(t *testing.T) {
	r, _, _ := setup()
	w := do(r, http.MethodGet, "/v1/cluster?page=-1", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAndDelete(t *testing.T) {
	r, svc, _ := setup()
	svc.clusters[clusterID] = &cluster.Cluster{ID: clusterID, Info: site.Info{Name: "North"}}

	w := do(r, http.MethodGet, "/v1/cluster/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/v1/cluster/"+clusterID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = do(r, http.MethodGet, "/v1/cluster/"+clusterID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"cluster not found"}`, w.Body.String())
}
