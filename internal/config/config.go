package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
)

const PROD_STRING = "prod"

// Config holds all server configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	DBMaxConns        int32
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int
	StoragePath       string
	MaxUploadBytes    int64
	LogLevel          string
	ShutdownTimeout   time.Duration
	RequestTimeout    time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	HoneybadgerAPIKey string
	AppEnv            string
}

// ClientConfig holds configuration of the admin client (venuectl).
type ClientConfig struct {
	BaseURL         string
	TokenFile       string
	TokenKey        string
	RequestTimeout  time.Duration
	UploadTimeout   time.Duration
	ItemsPerPage    int
	SearchDebounce  time.Duration
	KeepStaleOnFail bool
	LogLevel        string
}

// Load loads server configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.IsProduction = cfg.AppEnv == PROD_STRING
	if cfg.IsProduction && strings.TrimSpace(cfg.ProdOrigins) == "" {
		return nil, fmt.Errorf("PROD_ORIGINS is required when APP_ENV=%s", PROD_STRING)
	}

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error

	// Pool size; 0 keeps the pgx default
	maxConns, err := getEnvAsInt("DB_MAX_CONNS", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	cfg.DBMaxConns = int32(maxConns)

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg.StoragePath = getEnv("STORAGE_PATH", "./data/storage")

	maxUpload, err := getEnvAsInt("MAX_UPLOAD_BYTES", 5<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.ShutdownTimeout, err = getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	// Per-request deadline; 0 disables it
	cfg.RequestTimeout, err = getEnvAsDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	if cfg.ReadTimeout, err = getEnvAsDuration("HTTP_READ_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("HTTP_WRITE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.IdleTimeout, err = getEnvAsDuration("HTTP_IDLE_TIMEOUT", 120*time.Second); err != nil {
		return nil, err
	}

	// Error reporting stays off without a key
	cfg.HoneybadgerAPIKey = getEnv("HONEYBADGER_API_KEY", "")

	return cfg, nil
}

// LoadClient loads the admin client configuration. Nothing is required;
// every value has a default suited to a local server.
func LoadClient() (*ClientConfig, error) {
	loadDotEnv()

	cfg := &ClientConfig{
		BaseURL:   strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080/v1"), "/"),
		TokenFile: getEnv("TOKEN_FILE", defaultTokenFile()),
		TokenKey:  getEnv("TOKEN_KEY", "token"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RequestTimeout, err = getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.UploadTimeout, err = getEnvAsDuration("UPLOAD_TIMEOUT", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SearchDebounce, err = getEnvAsDuration("SEARCH_DEBOUNCE", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.ItemsPerPage, err = getEnvAsInt("ITEMS_PER_PAGE", 10); err != nil {
		return nil, fmt.Errorf("invalid ITEMS_PER_PAGE: %w", err)
	}
	if cfg.ItemsPerPage < 1 {
		return nil, fmt.Errorf("invalid ITEMS_PER_PAGE: must be positive")
	}

	// "clear" mirrors the dashboard: a failed fetch empties the list.
	switch policy := strings.ToLower(getEnv("STALE_DATA_POLICY", "clear")); policy {
	case "clear":
		cfg.KeepStaleOnFail = false
	case "keep":
		cfg.KeepStaleOnFail = true
	default:
		return nil, fmt.Errorf("invalid STALE_DATA_POLICY %q: want clear or keep", policy)
	}

	return cfg, nil
}

func loadDotEnv() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logger.WithComponent("config").Debugf("failed to load .env file: %v", err)
	}
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".venuectl.json"
	}
	return dir + string(os.PathSeparator) + "venuectl" + string(os.PathSeparator) + "storage.json"
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration parses a time.Duration value (e.g. "15m", "500ms").
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return val, nil
}
