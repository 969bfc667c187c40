package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ft-kumarsatyam/venue-management-system/internal/api"
	"github.com/ft-kumarsatyam/venue-management-system/internal/auth"
	"github.com/ft-kumarsatyam/venue-management-system/internal/cluster"
	"github.com/ft-kumarsatyam/venue-management-system/internal/facility"
	"github.com/ft-kumarsatyam/venue-management-system/internal/file"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/storage"
	"github.com/ft-kumarsatyam/venue-management-system/internal/sporttype"
	"github.com/ft-kumarsatyam/venue-management-system/internal/user"
	"github.com/ft-kumarsatyam/venue-management-system/internal/venue"
	"github.com/ft-kumarsatyam/venue-management-system/internal/zone"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction      bool
	AppEnv            string
	ProdOrigins       string
	DBPool            *pgxpool.Pool
	JWTSecret         string
	JWTTTL            time.Duration
	BcryptCost        int
	StoragePath       string
	MaxUploadBytes    int64
	RequestTimeout    time.Duration
	HoneybadgerAPIKey string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	localStorage, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// File Module
	fileRepo := file.NewRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, localStorage)

	// Cluster Module
	clusterRepo := cluster.NewPgxRepository(cfg.DBPool)
	clusterService := cluster.NewService(clusterRepo)

	// Venue Module
	venueRepo := venue.NewPgxRepository(cfg.DBPool)
	venueService := venue.NewService(venueRepo, clusterService)

	// SportType Module
	stRepo := sporttype.NewPgxRepository(cfg.DBPool)
	stService := sporttype.NewService(stRepo)

	// Facility Module
	// Zone membership is checked against the zone repository so the zone
	// service can in turn depend on the facility service.
	zoneRepo := zone.NewPgxRepository(cfg.DBPool)
	facilityRepo := facility.NewPgxRepository(cfg.DBPool)
	facilityService := facility.NewService(facilityRepo, venueService, stService, zoneRepo)

	// Zone Module
	zoneService := zone.NewService(zoneRepo, venueService, facilityService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		AppEnv:            cfg.AppEnv,
		MaxUploadBytes:    cfg.MaxUploadBytes,
		RequestTimeout:    cfg.RequestTimeout,
		HoneybadgerAPIKey: cfg.HoneybadgerAPIKey,
		UserService:       userService,
		FileService:       fileService,
		ClusterService:    clusterService,
		VenueService:      venueService,
		ZoneService:       zoneService,
		FacilityService:   facilityService,
		SportTypeService:  stService,
		JWTManager:        jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
