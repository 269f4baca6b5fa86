package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamasphere/pricing-service/internal/cache"
	"github.com/mamasphere/pricing-service/internal/location"
	"github.com/mamasphere/pricing-service/internal/quotes"
)

// spySource counts fetches and returns canned quotes or an error.
type spySource struct {
	quotes  []quotes.Quote
	err     error
	fetches int
}

func (s *spySource) Fetch(context.Context, string, string) ([]quotes.Quote, error) {
	s.fetches++
	return s.quotes, s.err
}

func mumbai() location.Location {
	return location.Location{City: "Mumbai", State: "Maharashtra", Country: "India"}
}

func newTestEstimator(source quotes.Source) *Estimator {
	return NewEstimator(DefaultTables(), cache.NewMemory[ComparisonResult](), source, Defaults(), nil)
}

func TestEstimateOnionInMumbai(t *testing.T) {
	// Base 30, multiplier 1.35: adjusted = round(40.5) = 41.
	e := newTestEstimator(nil)

	result := e.Estimate(context.Background(), "Onion", mumbai())

	require.Len(t, result.Quotes, 4)
	bys := map[string]int64{}
	for _, q := range result.Quotes {
		bys[q.Source] = q.Price
	}
	assert.Equal(t, int64(35), bys[SourceLocalMarket])
	assert.Equal(t, int64(45), bys[SourceSupermarket])
	assert.Equal(t, int64(41), bys[SourceOnlineGrocery])
	assert.Equal(t, int64(31), bys[SourceWholesale])

	assert.Equal(t, int64(31), result.BestPrice)
	assert.Equal(t, int64(38), result.AveragePrice) // round((35+45+41+31)/4)
	assert.Equal(t, "31 - 45", result.PriceRange)
	assert.Equal(t, "Onion", result.Item)
}

func TestEstimateUnknownCityUsesUnitMultiplier(t *testing.T) {
	e := newTestEstimator(nil)

	result := e.Estimate(context.Background(), "Tomato", location.Location{City: "UnknownCity"})

	// Base 40, multiplier 1.0: online grocery quote equals the base price.
	for _, q := range result.Quotes {
		if q.Source == SourceOnlineGrocery {
			assert.Equal(t, int64(40), q.Price)
		}
	}
}

func TestEstimateInvariants(t *testing.T) {
	e := newTestEstimator(nil)

	items := []string{"Rice", "Milk", "Paneer", "Something Unlisted", "Bitter Gourd"}
	cities := []string{"Mumbai", "Jaipur", "Nowhere"}

	for _, item := range items {
		for _, city := range cities {
			result := e.Estimate(context.Background(), item, location.Location{City: city})
			require.NotEmpty(t, result.Quotes, "%s in %s", item, city)

			var sum, min int64
			min = result.Quotes[0].Price
			for _, q := range result.Quotes {
				sum += q.Price
				if q.Price < min {
					min = q.Price
				}
			}
			assert.Equal(t, min, result.BestPrice, "%s in %s", item, city)
			assert.Equal(t, roundHalfUp(float64(sum)/float64(len(result.Quotes))), result.AveragePrice, "%s in %s", item, city)
		}
	}
}

func TestEstimateCachedWithinTTL(t *testing.T) {
	source := &spySource{quotes: []quotes.Quote{{Source: "Mandi Rates", Price: 33.4, Unit: "kg"}}}
	e := newTestEstimator(source)

	first := e.Estimate(context.Background(), "Onion", mumbai())
	second := e.Estimate(context.Background(), "Onion", mumbai())

	// The aggregates are identical and the source is not re-fetched.
	assert.Equal(t, first.AveragePrice, second.AveragePrice)
	assert.Equal(t, first.BestPrice, second.BestPrice)
	assert.Equal(t, first.PriceRange, second.PriceRange)
	assert.Equal(t, 1, source.fetches)

	// The cached reshape is a single quote labeled as cached.
	require.Len(t, second.Quotes, 1)
	assert.Equal(t, SourceCached, second.Quotes[0].Source)
	assert.Equal(t, second.AveragePrice, second.Quotes[0].Price)

	// Third call is identical to the second.
	third := e.Estimate(context.Background(), "Onion", mumbai())
	assert.Equal(t, second, third)
}

func TestEstimateCacheKeyIsCaseInsensitive(t *testing.T) {
	source := &spySource{}
	e := newTestEstimator(source)

	e.Estimate(context.Background(), "Onion", location.Location{City: "Mumbai"})
	e.Estimate(context.Background(), "ONION", location.Location{City: "mumbai"})

	assert.Equal(t, 1, source.fetches)
}

func TestEstimateRecomputesAfterCacheClear(t *testing.T) {
	source := &spySource{}
	c := cache.NewMemory[ComparisonResult]()
	e := NewEstimator(DefaultTables(), c, source, Defaults(), nil)

	e.Estimate(context.Background(), "Potato", mumbai())
	e.Estimate(context.Background(), "Potato", mumbai())
	assert.Equal(t, 1, source.fetches)

	c.Clear(context.Background())

	result := e.Estimate(context.Background(), "Potato", mumbai())
	assert.Equal(t, 2, source.fetches, "clear must force recomputation")
	assert.Len(t, result.Quotes, 4, "recomputed result carries full quotes again")
}

func TestEstimateMergesExternalQuotes(t *testing.T) {
	source := &spySource{quotes: []quotes.Quote{
		{Source: "Mandi Rates", Price: 28.6, Unit: "kg"},
		{Source: "Kirana Network", Price: 36.2, Unit: "kg"},
	}}
	e := newTestEstimator(source)

	result := e.Estimate(context.Background(), "Onion", mumbai())

	require.Len(t, result.Quotes, 6)
	bys := map[string]int64{}
	for _, q := range result.Quotes {
		bys[q.Source] = q.Price
	}
	assert.Equal(t, int64(29), bys["Mandi Rates"])
	assert.Equal(t, int64(36), bys["Kirana Network"])

	// External quotes participate in the aggregates.
	assert.Equal(t, int64(29), result.BestPrice)
	assert.Equal(t, "29 - 45", result.PriceRange)
}

func TestEstimateSurvivesExternalSourceFailure(t *testing.T) {
	source := &spySource{err: errors.New("provider down")}
	e := newTestEstimator(source)

	result := e.Estimate(context.Background(), "Onion", mumbai())

	require.Len(t, result.Quotes, 4, "failure degrades to synthesized quotes only")
	assert.Equal(t, int64(31), result.BestPrice)
}

func TestEstimateExternalQuoteCap(t *testing.T) {
	source := &spySource{quotes: []quotes.Quote{
		{Source: "A", Price: 10, Unit: "kg"},
		{Source: "B", Price: 11, Unit: "kg"},
		{Source: "C", Price: 12, Unit: "kg"},
		{Source: "D", Price: 13, Unit: "kg"},
	}}
	e := newTestEstimator(source)

	result := e.Estimate(context.Background(), "Onion", mumbai())
	assert.Len(t, result.Quotes, 4+3)
}
