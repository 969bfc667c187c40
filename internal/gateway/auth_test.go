package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SendsNoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/auth/login", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("auth"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@example.com", body["email"])

		writeJSON(w, http.StatusOK, `{"success":true,"data":{"access_token":"jwt","user":{"id":"u1","email":"admin@example.com","is_system_admin":true}}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{Tokens: TokenFunc(func() (string, error) { return "", nil })})
	s, err := c.Login(context.Background(), " admin@example.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", s.AccessToken)
	assert.True(t, s.User.IsSystemAdmin)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"error":"invalid email or password"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{})
	_, err := c.Login(context.Background(), "a@example.com", "nope")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnauthenticated))
	assert.Contains(t, err.Error(), "invalid email or password")
}
