package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/tripmena/backend/infra/initializer"
	"github.com/tripmena/backend/pkg/config"
	"github.com/tripmena/backend/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	// Expired carts are reaped periodically; expiry is also checked on read,
	// so the sweep only reclaims storage.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			purged, err := deps.Carts.PurgeExpired(context.Background())
			if err != nil {
				logger.Error("cart purge failed", "error", err)
				continue
			}
			if purged > 0 {
				logger.Info("purged expired carts", "count", purged)
			}
		}
	}()

	fiberApp := webapi.New(webapi.Deps{
		Cfg:        cfg,
		Logger:     logger,
		UoW:        deps.UoW,
		Rates:      deps.Rates,
		Normalizer: deps.Normalizer,
		Carts:      deps.Carts,
		Checkout:   deps.Checkout,
		Payments:   deps.Payments,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return fiberApp.Listen(addr)
}
