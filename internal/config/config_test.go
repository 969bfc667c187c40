package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDSNAndSecret(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")

	t.Setenv("DB_DSN", "postgres://localhost/venues")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/venues")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.False(t, cfg.IsProduction)
}

func TestLoad_ProductionNeedsOrigins(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/venues")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PROD_ORIGINS", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROD_ORIGINS")

	t.Setenv("PROD_ORIGINS", "https://admin.example.com")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.HoneybadgerAPIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/venues")
	t.Setenv("JWT_SECRET", "secret")

	t.Setenv("BCRYPT_COST", "twelve")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "soon")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadClient(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://venues.example.com/v1/")
	t.Setenv("TOKEN_KEY", "adminToken")
	t.Setenv("SEARCH_DEBOUNCE", "250ms")
	t.Setenv("STALE_DATA_POLICY", "keep")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "https://venues.example.com/v1", cfg.BaseURL)
	assert.Equal(t, "adminToken", cfg.TokenKey)
	assert.Equal(t, 250*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10, cfg.ItemsPerPage)
	assert.True(t, cfg.KeepStaleOnFail)
}

func TestLoadClient_RejectsUnknownPolicy(t *testing.T) {
	t.Setenv("STALE_DATA_POLICY", "sometimes")
	_, err := LoadClient()
	assert.Error(t, err)
}
