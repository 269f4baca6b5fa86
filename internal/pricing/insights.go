package pricing

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mamasphere/pricing-service/internal/location"
)

// Aggregator derives a location-wide market summary from estimator
// outputs over a fixed staple basket.
type Aggregator struct {
	estimator *Estimator
	tables    *Tables
	config    *Config
}

// NewAggregator creates an insight aggregator sharing the estimator's
// tables and configuration.
func NewAggregator(estimator *Estimator) *Aggregator {
	return &Aggregator{
		estimator: estimator,
		tables:    estimator.tables,
		config:    estimator.config,
	}
}

// Summarize classifies the city's price level and surfaces deals on the
// staple basket. Basket estimates run concurrently; they are independent
// and share only the cache read path.
func (a *Aggregator) Summarize(ctx context.Context, loc location.Location) MarketInsight {
	defer observeInsight(time.Now())

	mult := a.tables.MultiplierFor(loc.City)

	level := PriceLevelMedium
	switch {
	case mult > a.config.HighPriceThreshold:
		level = PriceLevelHigh
	case mult < a.config.LowPriceThreshold:
		level = PriceLevelLow
	}

	store := SourceSupermarket
	if mult > a.config.HighPriceThreshold {
		store = SourceLocalMarket
	}

	basket := a.config.StapleBasket
	results := make([]ComparisonResult, len(basket))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range basket {
		i, item := i, item
		g.Go(func() error {
			results[i] = a.estimator.Estimate(gctx, item, loc)
			return nil
		})
	}
	// Estimates cannot fail, the group is used for fan-out only.
	_ = g.Wait()

	deals := make([]Deal, 0, len(basket))
	trending := make([]string, 0, len(basket))
	for _, r := range results {
		price := onlineEquivalentPrice(r)
		deals = append(deals, Deal{
			Item:  r.Item,
			Price: roundHalfUp(float64(price) * a.config.DealRatio),
			Store: store,
		})
		trending = append(trending, r.Item)
	}

	return MarketInsight{
		AveragePriceLevel: level,
		TrendingItems:     trending,
		BestDeals:         deals,
		PriceAlertMessage: a.alertMessage(loc.City, mult),
	}
}

// onlineEquivalentPrice picks the online-grocery quote when present and
// falls back to the average for cached single-quote results.
func onlineEquivalentPrice(r ComparisonResult) int64 {
	for _, q := range r.Quotes {
		if q.Source == SourceOnlineGrocery {
			return q.Price
		}
	}
	return r.AveragePrice
}

// alertMessage renders how far the city's multiplier sits from the 1.0
// national baseline.
func (a *Aggregator) alertMessage(city string, mult float64) string {
	pct := roundHalfUp(math.Abs(mult-1.0) * 100)
	switch {
	case mult > a.config.HighPriceThreshold:
		return fmt.Sprintf("Grocery prices in %s are about %d%% higher than average. Wholesale and local markets offer the best value.", city, pct)
	case mult < a.config.LowPriceThreshold:
		return fmt.Sprintf("Grocery prices in %s are about %d%% lower than average. Great deals available across stores.", city, pct)
	default:
		return fmt.Sprintf("Grocery prices in %s are close to the national average.", city)
	}
}
