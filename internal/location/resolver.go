package location

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Strategy is a single location-detection attempt. Attempt returns the
// detected location and true on success; false means the resolver moves
// on to the next strategy. Strategies must not panic and must respect ctx.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context) (Location, bool)
}

// Resolver walks an ordered list of strategies until one succeeds and
// memoizes that result for the lifetime of the process. Because the chain
// is expected to end with a strategy that cannot fail, Resolve is a total
// function: it has no error channel.
type Resolver struct {
	strategies []Strategy
	logger     *zerolog.Logger

	mu       sync.Mutex
	resolved *Location
}

// NewResolver creates a resolver over the given strategy chain. The
// fallback strategy is appended unconditionally so that resolution can
// never exhaust.
func NewResolver(logger *zerolog.Logger, strategies ...Strategy) *Resolver {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	all := make([]Strategy, 0, len(strategies)+1)
	all = append(all, strategies...)
	all = append(all, fallbackStrategy{})
	return &Resolver{strategies: all, logger: logger}
}

// Resolve returns the caller's location. The first call walks the
// strategy chain; later calls return the memoized result without touching
// any external system, until ClearCached is invoked.
func (r *Resolver) Resolve(ctx context.Context) Location {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolved != nil {
		return *r.resolved
	}

	for _, s := range r.strategies {
		loc, ok := s.Attempt(ctx)
		if !ok {
			r.logger.Debug().Str("strategy", s.Name()).Msg("Location strategy failed, trying next")
			strategyFailures.WithLabelValues(s.Name()).Inc()
			continue
		}
		r.logger.Info().
			Str("strategy", s.Name()).
			Str("city", loc.City).
			Str("country", loc.Country).
			Msg("Location resolved")
		strategySuccesses.WithLabelValues(s.Name()).Inc()
		r.resolved = &loc
		return loc
	}

	// Unreachable: the fallback strategy always succeeds.
	loc := Default()
	r.resolved = &loc
	return loc
}

// Cached returns the memoized location, if one exists.
func (r *Resolver) Cached() (Location, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved == nil {
		return Location{}, false
	}
	return *r.resolved, true
}

// ClearCached drops the memoized location so the next Resolve walks the
// chain again. It is independent of the pricing result cache.
func (r *Resolver) ClearCached() {
	r.mu.Lock()
	r.resolved = nil
	r.mu.Unlock()
}

// fallbackStrategy yields the hard-coded default location. It terminates
// every chain and never fails.
type fallbackStrategy struct{}

func (fallbackStrategy) Name() string { return "default" }

func (fallbackStrategy) Attempt(context.Context) (Location, bool) {
	return Default(), true
}
