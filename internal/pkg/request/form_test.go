package request

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_NullSentinel(t *testing.T) {
	f := NewForm(map[string][]string{
		"name":        {"  North  "},
		"description": {"null"},
		"address":     {"   "},
	})

	assert.Equal(t, "North", f.String("name"))
	assert.Nil(t, f.Optional("description"))
	assert.Nil(t, f.Optional("address"))
	assert.Nil(t, f.Optional("missing"))
	assert.False(t, f.Has("description"))
}

func TestForm_Numbers(t *testing.T) {
	f := NewForm(map[string][]string{"capacity": {"12"}, "radius": {"7.5"}, "bad": {"x"}, "cleared": {"null"}})

	n, err := f.Int("capacity")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	r, err := f.OptionalFloat("radius")
	require.NoError(t, err)
	assert.Equal(t, 7.5, *r)

	r, err = f.OptionalFloat("cleared")
	require.NoError(t, err)
	assert.Nil(t, r)

	_, err = f.Int("bad")
	assert.EqualError(t, err, "bad must be an integer")
}

func TestForm_JSONAndSets(t *testing.T) {
	f := NewForm(map[string][]string{
		"coordinates": {`{"lat":12.5,"lng":77.25}`},
		"venue_ids":   {`["a"," a ","b",""]`},
		"broken":      {`[`},
	})

	var c struct{ Lat, Lng float64 }
	ok, err := f.JSON("coordinates", &c)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 77.25, c.Lng)

	ids, err := f.StringSet("venue_ids")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	ids, err = f.StringSet("zone_ids")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	_, err = f.StringSet("broken")
	assert.Error(t, err)
}

func TestParseForm_Multipart(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Arena"))
	require.NoError(t, mw.WriteField("cluster_id", "null"))
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/venue", &body)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())

	f, err := ParseForm(c, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "Arena", f.String("name"))
	assert.Nil(t, f.Optional("cluster_id"))
}

func TestListParams_Normalize(t *testing.T) {
	p := ListParams{Search: "  court "}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "court", p.Search)
	assert.Equal(t, 0, p.Offset())

	p = ListParams{Page: 3, Limit: 5000}
	p.Normalize()
	assert.Equal(t, MaxPageSize, p.Limit)
	assert.Equal(t, 2000, p.Offset())
}
