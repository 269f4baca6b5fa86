// Package pricing synthesizes location-aware grocery price comparisons
// and market insights from a static base-price table, city multipliers,
// and an optional external quote source.
package pricing

import (
	"fmt"
	"math"
)

// Quote is a single channel's price for an item at a location.
type Quote struct {
	Source   string `json:"source"`
	Price    int64  `json:"price"`
	Unit     string `json:"unit"`
	Location string `json:"location"`
}

// ComparisonResult is a multi-source price comparison for one item.
// Invariants: Quotes is non-empty, BestPrice is the minimum quote price
// and AveragePrice the half-up-rounded mean.
type ComparisonResult struct {
	Item         string  `json:"item"`
	Quotes       []Quote `json:"quotes"`
	AveragePrice int64   `json:"averagePrice"`
	BestPrice    int64   `json:"bestPrice"`
	PriceRange   string  `json:"priceRange"`
}

// PriceLevel is the coarse cost-of-living classification for a city.
type PriceLevel string

const (
	PriceLevelLow    PriceLevel = "Low"
	PriceLevelMedium PriceLevel = "Medium"
	PriceLevelHigh   PriceLevel = "High"
)

// Deal is a discounted staple offer surfaced in a market insight.
type Deal struct {
	Item  string `json:"item"`
	Price int64  `json:"price"`
	Store string `json:"store"`
}

// MarketInsight is a location-wide pricing summary. It is derived from
// estimator outputs and never persisted.
type MarketInsight struct {
	AveragePriceLevel PriceLevel `json:"averagePriceLevel"`
	TrendingItems     []string   `json:"trendingItems"`
	BestDeals         []Deal     `json:"bestDeals"`
	PriceAlertMessage string     `json:"priceAlertMessage"`
}

// Quote source labels for synthesized channels.
const (
	SourceLocalMarket   = "Local Market"
	SourceSupermarket   = "Supermarket"
	SourceOnlineGrocery = "Online Grocery"
	SourceWholesale     = "Wholesale Market"
	SourceCached        = "Cached"
)

// roundHalfUp rounds to the nearest whole currency unit, halves away
// from zero for the positive prices this package deals in.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// recalculate restores the ComparisonResult invariants from its quotes.
func (r *ComparisonResult) recalculate() {
	if len(r.Quotes) == 0 {
		return
	}
	var sum, min, max int64
	min = r.Quotes[0].Price
	max = r.Quotes[0].Price
	for _, q := range r.Quotes {
		sum += q.Price
		if q.Price < min {
			min = q.Price
		}
		if q.Price > max {
			max = q.Price
		}
	}
	r.BestPrice = min
	r.AveragePrice = roundHalfUp(float64(sum) / float64(len(r.Quotes)))
	r.PriceRange = fmt.Sprintf("%d - %d", min, max)
}
