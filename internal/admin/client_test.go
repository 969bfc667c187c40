package admin

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ft-kumarsatyam/venue-management-system/internal/gateway"
	"github.com/ft-kumarsatyam/venue-management-system/internal/refresh"
	"github.com/ft-kumarsatyam/venue-management-system/internal/store"
)

// fakeAPI records every request and answers from canned bodies keyed by
// "METHOD /path".
type fakeAPI struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string
	statuses map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{bodies: map[string]string{}, statuses: map[string]int{}}
}

func (f *fakeAPI) on(route string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[route] = status
	f.bodies[route] = body
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		_ = r.ParseMultipartForm(1 << 20)
	}
	q := r.URL.Query()
	q.Del("auth")
	route := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/v1")

	f.mu.Lock()
	f.requests = append(f.requests, route+"?"+q.Encode())
	status, ok := f.statuses[route]
	body := f.bodies[route]
	f.mu.Unlock()

	if !ok {
		status = http.StatusOK
		body = `{"success":true,"data":[],"totalItems":0,"totalPages":0,"currentPage":1,"itemsPerPage":10,"hasNextPage":false,"hasPrevPage":false}`
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (f *fakeAPI) reset() {
	f.mu.Lock()
	f.requests = nil
	f.mu.Unlock()
}

func (f *fakeAPI) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeAPI) saw(method, path string, query url.Values) bool {
	want := method + " " + path + "?" + query.Encode()
	for _, r := range f.seen() {
		if r == want {
			return true
		}
	}
	return false
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	gw, err := gateway.NewClient(gateway.Config{BaseURL: srv.URL + "/v1", Tokens: gateway.StaticToken("tok")})
	require.NoError(t, err)

	c := New(gw, Settings{ItemsPerPage: 10, Debounce: 20 * time.Millisecond, FailurePolicy: store.ClearOnFailure})
	t.Cleanup(c.Close)
	return c
}

func listQuery(kv ...string) url.Values {
	q := url.Values{"page": {"1"}, "limit": {"10"}}
	for i := 0; i+1 < len(kv); i += 2 {
		q.Set(kv[i], kv[i+1])
	}
	return q
}

func validVenueForm(clusterID string) VenueForm {
	return VenueForm{SiteForm: validSite(), ClusterID: clusterID, Capacity: 300, Address: "1 Main St"}
}

// Creating a venue under cluster 7 refetches the venue list scoped to 7 and
// not the one scoped to 8.
func TestCreateVenue_RefreshesOwnClusterOnly(t *testing.T) {
	api := newFakeAPI()
	api.on("POST /venue", http.StatusCreated, `{"success":true,"data":{"id":"v30","name":"Arena","cluster_id":"7","capacity":300}}`)
	c := newTestClient(t, api)
	ctx := context.Background()

	of7, unmount7 := c.Venues.Mount(refresh.Cluster)
	defer unmount7()
	of8, unmount8 := c.Venues.Mount(refresh.Cluster)
	defer unmount8()
	require.NoError(t, of7.SetParent(ctx, "7"))
	require.NoError(t, of8.SetParent(ctx, "8"))
	api.reset()

	created, err := c.CreateVenue(ctx, validVenueForm("7"))
	require.NoError(t, err)
	assert.Equal(t, "v30", created.ID)

	assert.True(t, api.saw(http.MethodGet, "/venue", listQuery("cluster_id", "7")))
	assert.False(t, api.saw(http.MethodGet, "/venue", listQuery("cluster_id", "8")))
	assert.True(t, api.saw(http.MethodGet, "/venue", listQuery()), "main venue list")
	assert.True(t, api.saw(http.MethodGet, "/cluster", listQuery()), "cluster list venue counts")
	assert.True(t, api.saw(http.MethodGet, "/venue", url.Values{"page": {"1"}, "limit": {"1000"}}), "venue dropdown")
}

// Deleting zone 42 of facility 5 refetches the facility's zone sublist and
// the parent venue's zone list.
func TestDeleteZone_RefreshesFacilityAndVenueLists(t *testing.T) {
	api := newFakeAPI()
	api.on("GET /zone", http.StatusOK, `{"success":true,"data":[{"id":"42","name":"Stand A","venue_ids":["3"],"facility_id":"5"}],"totalItems":1,"totalPages":1,"currentPage":1,"itemsPerPage":10,"hasNextPage":false,"hasPrevPage":false}`)
	api.on("DELETE /zone/42", http.StatusOK, `{"success":true}`)
	c := newTestClient(t, api)
	ctx := context.Background()

	require.NoError(t, c.Zones.List.Load(ctx))
	byFacility, unmountF := c.Zones.Mount(refresh.Facility)
	defer unmountF()
	byVenue, unmountV := c.Zones.Mount(refresh.Venue)
	defer unmountV()
	require.NoError(t, byFacility.SetParent(ctx, "5"))
	require.NoError(t, byVenue.SetParent(ctx, "3"))
	api.reset()

	require.NoError(t, c.DeleteZone(ctx, "42"))

	assert.True(t, api.saw(http.MethodDelete, "/zone/42", url.Values{}))
	assert.True(t, api.saw(http.MethodGet, "/zone", listQuery("facility_id", "5")))
	assert.True(t, api.saw(http.MethodGet, "/zone", listQuery("venue_id", "3")))
}

func TestDelete_FailureChangesNothing(t *testing.T) {
	api := newFakeAPI()
	api.on("GET /zone", http.StatusOK, `{"success":true,"data":[{"id":"42","venue_ids":["3"],"facility_id":"5"}],"totalItems":1,"totalPages":1,"currentPage":1,"itemsPerPage":10,"hasNextPage":false,"hasPrevPage":false}`)
	api.on("DELETE /zone/42", http.StatusInternalServerError, `{"success":false,"error":"zone is in use"}`)
	c := newTestClient(t, api)
	ctx := context.Background()

	require.NoError(t, c.Zones.List.Load(ctx))
	api.reset()

	err := c.DeleteZone(ctx, "42")
	require.Error(t, err)
	assert.True(t, gateway.IsKind(err, gateway.KindApplication))
	assert.Equal(t, []string{"DELETE /zone/42?"}, api.seen(), "no dependent refetch")

	st := c.Zones.Store().Snapshot()
	require.Len(t, st.Items, 1)
	assert.Equal(t, 1, st.Pagination.TotalItems)
}

func TestCreate_ValidationErrorSendsNothing(t *testing.T) {
	api := newFakeAPI()
	c := newTestClient(t, api)

	_, err := c.CreateCluster(context.Background(), ClusterForm{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, api.seen())
	assert.Empty(t, c.Clusters.Store().Snapshot().Error, "validation errors never reach the store")
}

func TestUpdateVenue_RefreshesOldAndNewCluster(t *testing.T) {
	api := newFakeAPI()
	api.on("GET /venue", http.StatusOK, `{"success":true,"data":[{"id":"v1","name":"Arena","cluster_id":"1","capacity":10}],"totalItems":1,"totalPages":1,"currentPage":1,"itemsPerPage":10,"hasNextPage":false,"hasPrevPage":false}`)
	api.on("PUT /venue/v1", http.StatusOK, `{"success":true,"data":{"id":"v1","name":"Arena","cluster_id":"2","capacity":10}}`)
	c := newTestClient(t, api)
	ctx := context.Background()

	require.NoError(t, c.Venues.List.Load(ctx))
	of1, unmount1 := c.Venues.Mount(refresh.Cluster)
	defer unmount1()
	of2, unmount2 := c.Venues.Mount(refresh.Cluster)
	defer unmount2()
	require.NoError(t, of1.SetParent(ctx, "1"))
	require.NoError(t, of2.SetParent(ctx, "2"))
	api.reset()

	updated, err := c.UpdateVenue(ctx, "v1", validVenueForm("2"))
	require.NoError(t, err)
	assert.Equal(t, "2", updated.ClusterRef())

	assert.True(t, api.saw(http.MethodGet, "/venue", listQuery("cluster_id", "1")))
	assert.True(t, api.saw(http.MethodGet, "/venue", listQuery("cluster_id", "2")))
}

func TestUnmountedListIsNotRefreshed(t *testing.T) {
	api := newFakeAPI()
	api.on("POST /cluster", http.StatusCreated, `{"success":true,"data":{"id":"c9","name":"New"}}`)
	c := newTestClient(t, api)
	ctx := context.Background()

	venues, unmount := c.Venues.Mount(refresh.Cluster)
	require.NoError(t, venues.SetParent(ctx, "c9"))
	unmount()
	api.reset()

	_, err := c.CreateCluster(ctx, ClusterForm{SiteForm: validSite()})
	require.NoError(t, err)
	assert.False(t, api.saw(http.MethodGet, "/venue", listQuery("cluster_id", "c9")))
	assert.True(t, api.saw(http.MethodGet, "/cluster", listQuery()))
}

func TestSelect(t *testing.T) {
	api := newFakeAPI()
	api.on("GET /facility/f1", http.StatusOK, `{"id":"f1","venue_id":"3","code":"F1","amenities":["lights"]}`)
	c := newTestClient(t, api)

	f, err := c.Facilities.Select(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"lights"}, f.Amenities)

	st := c.Facilities.Store().Snapshot()
	require.NotNil(t, st.Selected)
	assert.Equal(t, "f1", st.Selected.ID)
	assert.False(t, st.Loading)
}

func TestSportTypeOptions(t *testing.T) {
	api := newFakeAPI()
	api.on("GET /sport-type", http.StatusOK, `[{"id":"st1","name":"Badminton"},{"id":"st2","name":"Tennis"}]`)
	c := newTestClient(t, api)

	opts, err := c.SportTypes.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, opts, 2)
	assert.Equal(t, "Badminton", opts[0].Name)
}

// A zone that no loaded list holds is fetched first so its facility and
// venue lists are refetched after the delete.
func TestDeleteZone_UncachedRecordIsLookedUp(t *testing.T) {
	api := newFakeAPI()
	api.on("GET /zone/42", http.StatusOK, `{"success":true,"data":{"id":"42","name":"Stand A","venue_ids":["3"],"facility_id":"5"}}`)
	api.on("DELETE /zone/42", http.StatusOK, `{"success":true}`)
	c := newTestClient(t, api)
	ctx := context.Background()

	byFacility, unmountF := c.Zones.Mount(refresh.Facility)
	defer unmountF()
	byVenue, unmountV := c.Zones.Mount(refresh.Venue)
	defer unmountV()
	otherVenue, unmountO := c.Zones.Mount(refresh.Venue)
	defer unmountO()
	require.NoError(t, byFacility.SetParent(ctx, "5"))
	require.NoError(t, byVenue.SetParent(ctx, "3"))
	require.NoError(t, otherVenue.SetParent(ctx, "4"))
	api.reset()

	require.NoError(t, c.DeleteZone(ctx, "42"))

	assert.True(t, api.saw(http.MethodGet, "/zone/42", url.Values{}))
	assert.True(t, api.saw(http.MethodGet, "/zone", listQuery("facility_id", "5")))
	assert.True(t, api.saw(http.MethodGet, "/zone", listQuery("venue_id", "3")))
	assert.False(t, api.saw(http.MethodGet, "/zone", listQuery("venue_id", "4")))
}

// When the record cannot be looked up, every scoped list of the kind is
// refetched.
func TestDeleteZone_UnknownLinksRefreshEveryScopedList(t *testing.T) {
	api := newFakeAPI()
	api.on("GET /zone/42", http.StatusInternalServerError, `{"success":false,"error":"boom"}`)
	api.on("DELETE /zone/42", http.StatusOK, `{"success":true}`)
	c := newTestClient(t, api)
	ctx := context.Background()

	byFacility, unmountF := c.Zones.Mount(refresh.Facility)
	defer unmountF()
	byVenue, unmountV := c.Zones.Mount(refresh.Venue)
	defer unmountV()
	require.NoError(t, byFacility.SetParent(ctx, "5"))
	require.NoError(t, byVenue.SetParent(ctx, "4"))
	api.reset()

	require.NoError(t, c.DeleteZone(ctx, "42"))

	assert.True(t, api.saw(http.MethodGet, "/zone", listQuery("facility_id", "5")))
	assert.True(t, api.saw(http.MethodGet, "/zone", listQuery("venue_id", "4")))
}

func TestUpdateVenue_UncachedRefreshesPreviousCluster(t *testing.T) {
	api := newFakeAPI()
	api.on("GET /venue/v1", http.StatusOK, `{"success":true,"data":{"id":"v1","name":"Arena","cluster_id":"1","capacity":10}}`)
	api.on("PUT /venue/v1", http.StatusOK, `{"success":true,"data":{"id":"v1","name":"Arena","cluster_id":"2","capacity":10}}`)
	c := newTestClient(t, api)
	ctx := context.Background()

	of1, unmount1 := c.Venues.Mount(refresh.Cluster)
	defer unmount1()
	of2, unmount2 := c.Venues.Mount(refresh.Cluster)
	defer unmount2()
	of3, unmount3 := c.Venues.Mount(refresh.Cluster)
	defer unmount3()
	require.NoError(t, of1.SetParent(ctx, "1"))
	require.NoError(t, of2.SetParent(ctx, "2"))
	require.NoError(t, of3.SetParent(ctx, "3"))
	api.reset()

	_, err := c.UpdateVenue(ctx, "v1", validVenueForm("2"))
	require.NoError(t, err)

	assert.True(t, api.saw(http.MethodGet, "/venue", listQuery("cluster_id", "1")))
	assert.True(t, api.saw(http.MethodGet, "/venue", listQuery("cluster_id", "2")))
	assert.False(t, api.saw(http.MethodGet, "/venue", listQuery("cluster_id", "3")))
}
