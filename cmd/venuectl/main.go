// Command venuectl drives the venue API from a terminal: it logs in, lists
// clusters, venues, zones and facilities, and submits create, update and
// delete mutations through the same client the dashboard core uses.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ft-kumarsatyam/venue-management-system/internal/admin"
	"github.com/ft-kumarsatyam/venue-management-system/internal/config"
	"github.com/ft-kumarsatyam/venue-management-system/internal/gateway"
	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
	"github.com/ft-kumarsatyam/venue-management-system/internal/store"
	"github.com/ft-kumarsatyam/venue-management-system/internal/tokenstore"
)

func main() {
	log := logger.WithComponent("venuectl")

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Warnf("invalid log level %q: %v", cfg.LogLevel, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newCLI(cfg)
	if err != nil {
		log.Fatalf("failed to init client: %v", err)
	}
	defer app.close()

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", message(err))
		os.Exit(1)
	}
}

func newCLI(cfg *config.ClientConfig) (*cli, error) {
	tokens, err := tokenstore.Open(cfg.TokenFile, cfg.TokenKey)
	if err != nil {
		return nil, err
	}

	gw, err := gateway.NewClient(gateway.Config{
		BaseURL:       cfg.BaseURL,
		Tokens:        tokens,
		Timeout:       cfg.RequestTimeout,
		UploadTimeout: cfg.UploadTimeout,
	})
	if err != nil {
		return nil, err
	}

	policy := store.ClearOnFailure
	if cfg.KeepStaleOnFail {
		policy = store.KeepOnFailure
	}
	client := admin.New(gw, admin.Settings{
		ItemsPerPage:  cfg.ItemsPerPage,
		Debounce:      cfg.SearchDebounce,
		FailurePolicy: policy,
	})

	return &cli{gw: gw, tokens: tokens, admin: client, out: os.Stdout}, nil
}
