package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
	"github.com/ft-kumarsatyam/venue-management-system/internal/user"
)

type users map[string]*user.User

func (u users) GetByID(_ context.Context, id string) (*user.User, error) {
	if found, ok := u[id]; ok {
		return found, nil
	}
	return nil, user.ErrNotFound
}

func adminEngine(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	lookup := users{
		"admin":  {ID: "admin", IsActive: true, IsSystemAdmin: true},
		"member": {ID: "member", IsActive: true},
	}
	setUser := func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	}
	r.POST("/cluster", setUser, RequireSystemAdmin(lookup), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func TestRequireSystemAdmin(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		status int
		body   string
	}{
		{"admin passes", "admin", http.StatusCreated, ""},
		{"member is forbidden", "member", http.StatusForbidden, `{"success":false,"error":"forbidden: system admin access required"}`},
		{"unknown user", "ghost", http.StatusUnauthorized, `{"success":false,"error":"unauthorized"}`},
		{"no user", "", http.StatusUnauthorized, `{"success":false,"error":"unauthorized"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			adminEngine(tt.userID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cluster", nil))
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestTimeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"request timeout"}`, w.Body.String())
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/echo", func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("name=a-very-long-value"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHoneybadger_DisabledIsPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery(), Honeybadger("", "test", logger.WithComponent("honeybadger")))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	require.NotPanics(t, func() { r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil)) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCorsConfig(t *testing.T) {
	dev := corsConfig(Config{})
	assert.True(t, dev.AllowAllOrigins)

	prod := corsConfig(Config{IsProduction: true, ProdOrigins: "https://a.example.com, ,https://b.example.com"})
	assert.False(t, prod.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, prod.AllowOrigins)
}
