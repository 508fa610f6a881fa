package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// App holds the wired repositories and services for one process.
type App struct {
	Config     *Config
	Log        zerolog.Logger
	Portfolios *PortfolioService
	Holdings   *HoldingService

	pfRepo  PortfolioRepository
	hRepo   HoldingRepository
	closers []io.Closer
}

// NewApp opens the configured store, builds the services and seeds the
// sample portfolio when enabled.
func NewApp(ctx context.Context, cfg *Config, log zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}
	if err := a.openStorage(ctx); err != nil {
		return nil, err
	}

	prices, err := NewPriceProvider(cfg.Pricing, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Portfolios = NewPortfolioService(a.pfRepo, log)
	a.Holdings = NewHoldingService(a.hRepo, a.pfRepo, prices, cfg.Pricing.RefCurrency, log)

	if cfg.Seed.Sample {
		if _, err := SeedSample(ctx, a.pfRepo, a.hRepo, cfg.Pricing.RefCurrency, time.Now(), log); err != nil {
			a.Close()
			return nil, err
		}
	}

	log.Info().
		Str("storage", cfg.Storage.Kind).
		Str("prices", cfg.Pricing.Provider).
		Str("ref_currency", cfg.Pricing.RefCurrency).
		Msg("app ready")
	return a, nil
}

func (a *App) openStorage(ctx context.Context) error {
	sc := a.Config.Storage
	switch sc.Kind {
	case "memory":
		mem := newMemoryStore()
		a.pfRepo = NewMemoryPortfolioRepo(mem)
		a.hRepo = NewMemoryHoldingRepo(mem)
	case "csv":
		store, err := NewCSVStore(sc.DataDir)
		if err != nil {
			return fmt.Errorf("init csv store: %w", err)
		}
		a.pfRepo = NewCSVPortfolioRepo(store)
		a.hRepo = NewCSVHoldingRepo(store)
	case "sqlite":
		store, err := NewSQLiteStore(ctx, sc.SQLitePath)
		if err != nil {
			return fmt.Errorf("init sqlite store: %w", err)
		}
		a.closers = append(a.closers, store)
		a.pfRepo = NewSQLitePortfolioRepo(store)
		a.hRepo = NewSQLiteHoldingRepo(store)
	case "redis":
		store, err := NewRedisStore(ctx, sc.Redis)
		if err != nil {
			return fmt.Errorf("init redis store: %w", err)
		}
		a.closers = append(a.closers, store)
		a.pfRepo = NewRedisPortfolioRepo(store)
		a.hRepo = NewRedisHoldingRepo(store)
	default:
		return fmt.Errorf("unknown storage kind %q", sc.Kind)
	}
	return nil
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// resolvePortfolio returns the portfolio with the given id, or the first
// portfolio when id is empty.
func (a *App) resolvePortfolio(ctx context.Context, id string) (Portfolio, error) {
	if id != "" {
		return a.Portfolios.Get(ctx, id)
	}
	pfs, err := a.Portfolios.List(ctx)
	if err != nil {
		return Portfolio{}, err
	}
	if len(pfs) == 0 {
		return Portfolio{}, ErrNotFound
	}
	return pfs[0], nil
}
