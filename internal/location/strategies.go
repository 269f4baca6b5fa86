package location

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CoordinateSource supplies device-reported coordinates, e.g. forwarded
// from a client that obtained browser geolocation. It may block until the
// device answers or the context expires.
type CoordinateSource interface {
	Coordinates(ctx context.Context) (Coordinates, error)
}

// Place is the administrative area a geocoder maps coordinates to.
type Place struct {
	City       string
	State      string
	Country    string
	PostalCode string
}

// ReverseGeocoder converts coordinates to place details.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error)
}

// IPLocator produces a best-effort location from the caller's IP address.
type IPLocator interface {
	Locate(ctx context.Context) (Location, error)
}

// DeviceStrategy waits for device coordinates within a bounded window and
// enriches them through reverse geocoding. A geocoding failure is not a
// strategy failure: the coordinates are kept with an Unknown city/state.
type DeviceStrategy struct {
	Source   CoordinateSource
	Geocoder ReverseGeocoder
	Wait     time.Duration
	Logger   *zerolog.Logger
}

func (s *DeviceStrategy) Name() string { return "device" }

func (s *DeviceStrategy) Attempt(ctx context.Context) (Location, bool) {
	if s.Source == nil {
		return Location{}, false
	}

	wait := s.Wait
	if wait <= 0 {
		wait = 8 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	coords, err := s.Source.Coordinates(ctx)
	if err != nil {
		return Location{}, false
	}

	loc := Location{
		City:        UnknownPlace,
		State:       UnknownPlace,
		Country:     UnknownPlace,
		Coordinates: coords,
	}

	if s.Geocoder != nil {
		place, err := s.Geocoder.ReverseGeocode(ctx, coords.Latitude, coords.Longitude)
		if err == nil {
			loc.City = place.City
			loc.State = place.State
			loc.Country = place.Country
			loc.PostalCode = place.PostalCode
		} else if s.Logger != nil {
			s.Logger.Debug().Err(err).Msg("Reverse geocoding failed, keeping coordinates")
		}
	}

	return loc, true
}

// IPStrategy wraps an IP geolocation lookup as a resolver strategy.
type IPStrategy struct {
	StrategyName string
	Locator      IPLocator
}

func (s *IPStrategy) Name() string { return s.StrategyName }

func (s *IPStrategy) Attempt(ctx context.Context) (Location, bool) {
	if s.Locator == nil {
		return Location{}, false
	}
	loc, err := s.Locator.Locate(ctx)
	if err != nil {
		return Location{}, false
	}
	if loc.City == "" {
		return Location{}, false
	}
	return loc, true
}

// StaticCoordinateSource returns fixed coordinates. Used when a caller
// already carries device coordinates, e.g. from a request parameter.
type StaticCoordinateSource struct {
	Coords Coordinates
}

func (s *StaticCoordinateSource) Coordinates(context.Context) (Coordinates, error) {
	return s.Coords, nil
}
