package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"syscall"

	"github.com/enrichman/httpgrace"
	"github.com/gin-gonic/gin"

	"github.com/ft-kumarsatyam/venue-management-system/internal/app"
	"github.com/ft-kumarsatyam/venue-management-system/internal/config"
	"github.com/ft-kumarsatyam/venue-management-system/internal/db"
	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
)

func main() {
	log := logger.WithComponent("main")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Warnf("invalid log level %q, keeping %s: %v", cfg.LogLevel, logger.Logger.GetLevel(), err)
	}
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("failed to migrate db: %v", err)
	}

	container, err := app.NewContainer(app.Config{
		IsProduction:      cfg.IsProduction,
		AppEnv:            cfg.AppEnv,
		ProdOrigins:       cfg.ProdOrigins,
		DBPool:            pool,
		JWTSecret:         cfg.JWTSecret,
		JWTTTL:            cfg.JWTAccessTokenTTL,
		BcryptCost:        cfg.BcryptCost,
		StoragePath:       cfg.StoragePath,
		MaxUploadBytes:    cfg.MaxUploadBytes,
		RequestTimeout:    cfg.RequestTimeout,
		HoneybadgerAPIKey: cfg.HoneybadgerAPIKey,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	srv := newServer(ctx, "api", cfg, container.Router)
	log.Infof("server running on %s", cfg.HTTPAddr)
	if err := srv.ListenAndServe(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	log.Info("server exited gracefully")
}

// newServer wraps the router in a server that drains in-flight requests on
// SIGTERM or SIGINT.
func newServer(ctx context.Context, name string, cfg *config.Config, r *gin.Engine) *httpgrace.Server {
	slogLogger := slog.New(slog.NewTextHandler(logger.Logger.Writer(), nil))

	return httpgrace.NewServer(r,
		httpgrace.WithTimeout(cfg.ShutdownTimeout),
		httpgrace.WithSignals(syscall.SIGTERM, syscall.SIGINT),
		httpgrace.WithLogger(slogLogger),
		httpgrace.WithBeforeShutdown(func() {
			logger.WithComponent("http").Infof("shutting down %s server", name)
		}),
		httpgrace.WithServerOptions(
			httpgrace.WithReadTimeout(cfg.ReadTimeout),
			httpgrace.WithWriteTimeout(cfg.WriteTimeout),
			httpgrace.WithIdleTimeout(cfg.IdleTimeout),
			func(srv *http.Server) {
				srv.BaseContext = func(_ net.Listener) context.Context {
					return ctx
				}
				srv.ErrorLog = log.New(logger.Logger.Writer(), fmt.Sprintf("[%s] ", name), log.LstdFlags)
			},
		),
	)
}
