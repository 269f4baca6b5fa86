package pricing

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mamasphere/pricing-service/internal/cache"
	"github.com/mamasphere/pricing-service/internal/location"
	"github.com/mamasphere/pricing-service/internal/quotes"
)

// Estimator computes multi-source price comparisons for grocery items.
// It consults the result cache first, then synthesizes quotes from the
// static tables and, when a source is configured, blends in external
// quotes. Estimate always returns a well-formed result.
type Estimator struct {
	tables *Tables
	cache  cache.Cache[ComparisonResult]
	source quotes.Source // nil when no credential is configured
	config *Config
	logger *zerolog.Logger
}

// NewEstimator creates an estimator. source may be nil, in which case the
// external blending step is skipped entirely.
func NewEstimator(tables *Tables, c cache.Cache[ComparisonResult], source quotes.Source, config *Config, logger *zerolog.Logger) *Estimator {
	if config == nil {
		config = Defaults()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Estimator{
		tables: tables,
		cache:  c,
		source: source,
		config: config,
		logger: logger,
	}
}

// cacheKey builds the composite cache key for an item in a city.
func cacheKey(item, city string) string {
	return normalize(item) + "|" + normalize(city)
}

// Estimate returns a price comparison for item at loc. A live cache entry
// is returned reshaped as a single "Cached" quote carrying the same
// average, best, and range as the original computation.
func (e *Estimator) Estimate(ctx context.Context, item string, loc location.Location) ComparisonResult {
	defer observeEstimate(time.Now())

	key := cacheKey(item, loc.City)
	if cached, ok := e.cache.Get(ctx, key); ok {
		estimateCacheHits.Inc()
		return asCachedResult(cached, loc.City)
	}
	estimateCacheMisses.Inc()

	result := e.compute(ctx, item, loc)
	e.cache.Set(ctx, key, result, e.config.CacheTTL)
	return result
}

// compute builds a fresh comparison from the tables and the optional
// external source.
func (e *Estimator) compute(ctx context.Context, item string, loc location.Location) ComparisonResult {
	base := e.tables.BasePriceFor(item, e.config.DefaultBasePrice, e.config.DefaultUnit)
	mult := e.tables.MultiplierFor(loc.City)
	adjusted := float64(roundHalfUp(base.Price * mult))

	result := ComparisonResult{
		Item: titler.String(normalize(item)),
		Quotes: []Quote{
			{Source: SourceLocalMarket, Price: roundHalfUp(adjusted * e.config.Ratios.LocalMarket), Unit: base.Unit, Location: loc.City},
			{Source: SourceSupermarket, Price: roundHalfUp(adjusted * e.config.Ratios.Supermarket), Unit: base.Unit, Location: loc.City},
			{Source: SourceOnlineGrocery, Price: roundHalfUp(adjusted * e.config.Ratios.OnlineGrocery), Unit: base.Unit, Location: loc.City},
			{Source: SourceWholesale, Price: roundHalfUp(adjusted * e.config.Ratios.Wholesale), Unit: base.Unit, Location: loc.City},
		},
	}

	if e.source != nil {
		result.Quotes = append(result.Quotes, e.fetchExternal(ctx, item, loc)...)
	}

	result.recalculate()
	return result
}

// fetchExternal pulls quotes from the external source. Any failure is
// logged and swallowed: external data only ever enriches a comparison.
func (e *Estimator) fetchExternal(ctx context.Context, item string, loc location.Location) []Quote {
	external, err := e.source.Fetch(ctx, item, loc.City)
	if err != nil {
		externalQuoteErrors.Inc()
		e.logger.Debug().Err(err).Str("item", item).Str("city", loc.City).
			Msg("External quote fetch failed, using synthesized quotes only")
		return nil
	}

	limit := e.config.MaxExternalQuotes
	merged := make([]Quote, 0, limit)
	for _, q := range external {
		if len(merged) == limit {
			break
		}
		merged = append(merged, Quote{
			Source:   q.Source,
			Price:    roundHalfUp(q.Price),
			Unit:     q.Unit,
			Location: loc.City,
		})
	}
	externalQuotesMerged.Add(float64(len(merged)))
	return merged
}

// asCachedResult reshapes a cached comparison into a single-quote result
// labeled as cached, preserving the computed aggregates.
func asCachedResult(r ComparisonResult, city string) ComparisonResult {
	unit := ""
	if len(r.Quotes) > 0 {
		unit = r.Quotes[0].Unit
	}
	return ComparisonResult{
		Item: r.Item,
		Quotes: []Quote{
			{Source: SourceCached, Price: r.AveragePrice, Unit: unit, Location: city},
		},
		AveragePrice: r.AveragePrice,
		BestPrice:    r.BestPrice,
		PriceRange:   r.PriceRange,
	}
}
