// Package handlers implements the HTTP surface of the pricing service.
package handlers

import (
	"github.com/mamasphere/pricing-service/internal/cache"
	"github.com/mamasphere/pricing-service/internal/location"
	"github.com/mamasphere/pricing-service/internal/pricing"
)

// Handlers bundles the service dependencies for the HTTP layer.
type Handlers struct {
	Resolver   *location.Resolver
	Estimator  *pricing.Estimator
	Aggregator *pricing.Aggregator
	Cache      cache.Cache[pricing.ComparisonResult]
}

// New creates the handler set.
func New(resolver *location.Resolver, estimator *pricing.Estimator, aggregator *pricing.Aggregator, c cache.Cache[pricing.ComparisonResult]) *Handlers {
	return &Handlers{
		Resolver:   resolver,
		Estimator:  estimator,
		Aggregator: aggregator,
		Cache:      c,
	}
}
