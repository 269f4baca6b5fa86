// Package app wires the pricing service components from configuration.
// Both the server and the CLI build their dependency graph here.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mamasphere/pricing-service/config"
	"github.com/mamasphere/pricing-service/internal/cache"
	"github.com/mamasphere/pricing-service/internal/httpclient"
	"github.com/mamasphere/pricing-service/internal/location"
	"github.com/mamasphere/pricing-service/internal/pricing"
	"github.com/mamasphere/pricing-service/internal/quotes"
)

// App holds the constructed service components.
type App struct {
	Resolver   *location.Resolver
	Estimator  *pricing.Estimator
	Aggregator *pricing.Aggregator
	Cache      cache.Cache[pricing.ComparisonResult]

	redisCache *cache.Redis[pricing.ComparisonResult]
}

// Build constructs the component graph from configuration. The device
// coordinate source is optional: servers have none, a CLI invocation may
// carry explicit coordinates.
func Build(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, coords location.CoordinateSource) (*App, error) {
	client := httpclient.NewDefault()

	resultCache, redisCache, err := buildCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	var source quotes.Source
	if cfg.Quotes.Enabled() {
		source = &quotes.HTTPSource{
			Client:    client,
			BaseURL:   cfg.Quotes.BaseURL,
			APIKey:    cfg.Quotes.APIKey,
			MaxQuotes: cfg.Pricing.MaxExternalQuotes,
		}
	}

	tables := pricing.DefaultTables()
	estimator := pricing.NewEstimator(tables, resultCache, source, &cfg.Pricing, logger)

	return &App{
		Resolver:   buildResolver(cfg.Resolver, client, logger, coords),
		Estimator:  estimator,
		Aggregator: pricing.NewAggregator(estimator),
		Cache:      resultCache,
		redisCache: redisCache,
	}, nil
}

// Close releases held connections.
func (a *App) Close() error {
	if a.redisCache != nil {
		return a.redisCache.Close()
	}
	return nil
}

func buildCache(ctx context.Context, cfg config.CacheConfig, logger *zerolog.Logger) (cache.Cache[pricing.ComparisonResult], *cache.Redis[pricing.ComparisonResult], error) {
	if cfg.Backend != "redis" {
		return cache.NewMemory[pricing.ComparisonResult](), nil, nil
	}
	rc, err := cache.NewRedis[pricing.ComparisonResult](ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "pricing:estimate", logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build redis cache: %w", err)
	}
	return rc, rc, nil
}

func buildResolver(cfg config.ResolverConfig, client *httpclient.Client, logger *zerolog.Logger, coords location.CoordinateSource) *location.Resolver {
	strategies := make([]location.Strategy, 0, 3)

	strategies = append(strategies, &location.DeviceStrategy{
		Source: coords,
		Geocoder: &location.HTTPReverseGeocoder{
			Client:  client,
			BaseURL: cfg.ReverseGeocodeURL,
		},
		Wait:   cfg.DeviceWait,
		Logger: logger,
	})

	if cfg.IPLookupToken != "" {
		strategies = append(strategies, &location.IPStrategy{
			StrategyName: "ip_primary",
			Locator: &location.TokenIPLocator{
				Client:  client,
				BaseURL: cfg.IPLookupURL,
				Token:   cfg.IPLookupToken,
			},
		})
	}

	strategies = append(strategies, &location.IPStrategy{
		StrategyName: "ip_fallback",
		Locator: &location.FreeIPLocator{
			Client:  client,
			BaseURL: cfg.FallbackIPLookupURL,
		},
	})

	return location.NewResolver(logger, strategies...)
}
