package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newProtected(m *JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(m), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c)+"|"+GetUserEmail(c))
	})
	return r
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	tok, err := m.GenerateAccessToken("u1", "a@example.com")
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)

	_, err = NewJWTManager("other", time.Minute).ParseAndValidate(tok)
	assert.Error(t, err)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	tok, err := m.GenerateAccessToken("u1", "a@example.com")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(tok)
	assert.Error(t, err)
}

func TestJWTManager_RejectsForeignIssuerAndAlg(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	tok, err := foreign.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.ParseAndValidate(tok)
	assert.Error(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	tok, err = hs512.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.ParseAndValidate(tok)
	assert.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	tok, err := m.GenerateAccessToken("u1", "a@example.com")
	require.NoError(t, err)
	r := newProtected(m)

	tests := []struct {
		name   string
		target string
		header string
		status int
		body   string
	}{
		{"query parameter", "/me?auth=" + tok, "", http.StatusOK, "u1|a@example.com"},
		{"bearer header", "/me", "Bearer " + tok, http.StatusOK, "u1|a@example.com"},
		{"missing", "/me", "", http.StatusUnauthorized, `{"success":false,"error":"missing access token"}`},
		{"bad header", "/me", "Token " + tok, http.StatusUnauthorized, `{"success":false,"error":"invalid Authorization header format"}`},
		{"bad token", "/me?auth=garbage", "", http.StatusUnauthorized, `{"success":false,"error":"invalid or expired token"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			} else {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4)
	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "s3cret!"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrPasswordMismatch)
	assert.Equal(t, bcrypt.MinCost, NewBcryptPasswordHasherWithCost(1).cost)
}
