package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ft-kumarsatyam/venue-management-system/internal/auth"
	"github.com/ft-kumarsatyam/venue-management-system/internal/cluster"
	clusterHttp "github.com/ft-kumarsatyam/venue-management-system/internal/cluster/http"
	"github.com/ft-kumarsatyam/venue-management-system/internal/facility"
	facilityHttp "github.com/ft-kumarsatyam/venue-management-system/internal/facility/http"
	"github.com/ft-kumarsatyam/venue-management-system/internal/file"
	fileHttp "github.com/ft-kumarsatyam/venue-management-system/internal/file/http"
	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
	"github.com/ft-kumarsatyam/venue-management-system/internal/sporttype"
	sportTypeHttp "github.com/ft-kumarsatyam/venue-management-system/internal/sporttype/http"
	"github.com/ft-kumarsatyam/venue-management-system/internal/user"
	userHttp "github.com/ft-kumarsatyam/venue-management-system/internal/user/http"
	"github.com/ft-kumarsatyam/venue-management-system/internal/venue"
	venueHttp "github.com/ft-kumarsatyam/venue-management-system/internal/venue/http"
	"github.com/ft-kumarsatyam/venue-management-system/internal/zone"
	zoneHttp "github.com/ft-kumarsatyam/venue-management-system/internal/zone/http"
)

// multipartOverhead is the room left for text fields on top of the image.
const multipartOverhead = 1 << 20

// Config holds the router settings and the services it exposes.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	AppEnv            string
	MaxUploadBytes    int64
	RequestTimeout    time.Duration
	HoneybadgerAPIKey string

	UserService      user.Service
	FileService      file.Service
	ClusterService   cluster.Service
	VenueService     venue.Service
	ZoneService      zone.Service
	FacilityService  facility.Service
	SportTypeService sporttype.Service
	JWTManager       *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.Logger.Writer()
	gin.DefaultErrorWriter = logger.Logger.Writer()

	r := gin.New()

	// Global Middleware:
	// - RequestLogger: one logrus line per request.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	// - Honeybadger: reports panics and 5xx, then re-panics into Recovery.
	r.Use(
		RequestLogger(logger.WithComponent("http")),
		gin.Recovery(),
		Honeybadger(cfg.HoneybadgerAPIKey, cfg.AppEnv, logger.WithComponent("honeybadger")),
		RequestTimeout(cfg.RequestTimeout),
		BodyLimit(cfg.MaxUploadBytes+multipartOverhead),
	)
	r.Use(cors.New(corsConfig(cfg)))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// sysAdminMiddleware: Further checks if the authenticated user has System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	fileHandler := fileHttp.NewHandler(cfg.FileService)
	upload := fileHttp.ImageUpload{FormFieldName: "image", MaxSizeBytes: cfg.MaxUploadBytes}

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	clusterHandler := clusterHttp.NewHandler(cfg.ClusterService, fileHandler, upload)
	venueHandler := venueHttp.NewHandler(cfg.VenueService, fileHandler, upload)
	zoneHandler := zoneHttp.NewHandler(cfg.ZoneService, fileHandler, upload)
	facilityHandler := facilityHttp.NewHandler(cfg.FacilityService)
	sportTypeHandler := sportTypeHttp.NewHandler(cfg.SportTypeService)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, sysAdminMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware, sysAdminMiddleware)
		clusterHttp.RegisterRoutes(v1, clusterHandler, authMiddleware, sysAdminMiddleware)
		venueHttp.RegisterRoutes(v1, venueHandler, authMiddleware, sysAdminMiddleware)
		zoneHttp.RegisterRoutes(v1, zoneHandler, authMiddleware, sysAdminMiddleware)
		facilityHttp.RegisterRoutes(v1, facilityHandler, authMiddleware, sysAdminMiddleware)
		sportTypeHttp.RegisterRoutes(v1, sportTypeHandler, authMiddleware, sysAdminMiddleware)
	}

	return r
}

// corsConfig allows every origin outside production and the configured
// comma-separated list in production.
func corsConfig(cfg Config) cors.Config {
	config := cors.DefaultConfig()
	if cfg.IsProduction {
		var origins []string
		for _, o := range strings.Split(cfg.ProdOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.AllowOrigins = origins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	return config
}
