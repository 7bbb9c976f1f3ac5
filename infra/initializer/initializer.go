// Package initializer wires configuration, logging, storage and providers
// into the dependency set the HTTP layer consumes.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	infracache "github.com/tripmena/backend/infra/cache"
	"github.com/tripmena/backend/infra/notify"
	"github.com/tripmena/backend/infra/provider/exchangerateapi"
	"github.com/tripmena/backend/infra/provider/stripepayment"
	infrarepo "github.com/tripmena/backend/infra/repository"
	"github.com/tripmena/backend/pkg/config"
	"github.com/tripmena/backend/pkg/currency"
	"github.com/tripmena/backend/pkg/exchange"
	"github.com/tripmena/backend/pkg/repository"
	"github.com/tripmena/backend/pkg/service/cart"
	"github.com/tripmena/backend/pkg/service/checkout"
	"github.com/tripmena/backend/pkg/service/payment"
	"github.com/tripmena/backend/pkg/service/pricing"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer and the server process need.
type Deps struct {
	Cfg        *config.App
	Logger     *slog.Logger
	DB         *gorm.DB
	UoW        repository.UnitOfWork
	Rates      *exchange.Cache
	Normalizer *pricing.Normalizer
	Carts      *cart.Service
	Checkout   *checkout.Orchestrator
	Payments   *payment.Handler
}

// InitializeDependencies builds the full dependency graph from configuration.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := setupDatabase(cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	uow := infrarepo.NewUoW(db)

	store, err := snapshotStore(cfg.Redis, logger)
	if err != nil {
		return nil, err
	}
	source := exchangerateapi.New(
		cfg.ExchangeRate.ApiUrl,
		cfg.ExchangeRate.ApiKey,
		cfg.ExchangeRate.HTTPTimeout,
		logger,
	)
	rates := exchange.NewCache(
		source,
		store,
		currency.Code(cfg.ExchangeRate.BaseCurrency),
		cfg.ExchangeRate.CacheTTL,
		logger,
	)

	converter := pricing.NewConverter(rates)
	normalizer := pricing.NewNormalizer(converter, pricing.Defaults{
		Activity: currency.Code(cfg.Pricing.ActivityCurrency),
		Package:  currency.Code(cfg.Pricing.PackageCurrency),
	})

	payProvider := stripepayment.New(cfg.Stripe, logger)
	notifier := notify.NewLogNotifier(logger)

	carts := cart.New(uow, cfg.Cart.TTL, currency.Code(cfg.Pricing.ActivityCurrency), logger)
	orchestrator := checkout.New(uow, payProvider, cfg.Checkout, logger)
	payments := payment.New(uow, payProvider, notifier, logger)

	return &Deps{
		Cfg:        cfg,
		Logger:     logger,
		DB:         db,
		UoW:        uow,
		Rates:      rates,
		Normalizer: normalizer,
		Carts:      carts,
		Checkout:   orchestrator,
		Payments:   payments,
	}, nil
}

// snapshotStore picks the exchange-rate snapshot store: Redis when enabled so
// a fleet shares one refresh, otherwise in-process memory.
func snapshotStore(cfg *config.Redis, logger *slog.Logger) (exchange.Store, error) {
	if !cfg.Enabled {
		return infracache.NewMemoryStore(), nil
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout
	client := redis.NewClient(opt)
	return infracache.NewRedisStore(client, cfg.KeyPrefix, logger), nil
}
