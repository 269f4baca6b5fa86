package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	name     string
	loc      Location
	ok       bool
	attempts int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Attempt(context.Context) (Location, bool) {
	s.attempts++
	return s.loc, s.ok
}

type errCoordinateSource struct{}

func (errCoordinateSource) Coordinates(context.Context) (Coordinates, error) {
	return Coordinates{}, errors.New("device unavailable")
}

type errGeocoder struct{}

func (errGeocoder) ReverseGeocode(context.Context, float64, float64) (Place, error) {
	return Place{}, errors.New("geocoder down")
}

func TestResolveFirstSuccessWins(t *testing.T) {
	jaipur := Location{City: "Jaipur", State: "Rajasthan", Country: "India"}
	first := &stubStrategy{name: "first", ok: false}
	second := &stubStrategy{name: "second", loc: jaipur, ok: true}
	third := &stubStrategy{name: "third", loc: Location{City: "Delhi"}, ok: true}

	r := NewResolver(nil, first, second, third)
	got := r.Resolve(context.Background())

	assert.Equal(t, jaipur, got)
	assert.Equal(t, 1, first.attempts)
	assert.Equal(t, 1, second.attempts)
	assert.Equal(t, 0, third.attempts, "later strategies must not run after a success")
}

func TestResolveIsTotalWhenAllStrategiesFail(t *testing.T) {
	failing := &stubStrategy{name: "failing", ok: false}

	r := NewResolver(nil, failing, &stubStrategy{name: "also-failing", ok: false})
	got := r.Resolve(context.Background())

	assert.Equal(t, Default(), got)
	assert.NotEmpty(t, got.City)
	assert.NotZero(t, got.Coordinates.Latitude)
}

func TestResolveMemoizesFirstResult(t *testing.T) {
	s := &stubStrategy{name: "s", loc: Location{City: "Pune", State: "Maharashtra"}, ok: true}
	r := NewResolver(nil, s)

	first := r.Resolve(context.Background())
	second := r.Resolve(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.attempts, "second call must not re-invoke strategies")
}

func TestClearCachedForcesReresolution(t *testing.T) {
	s := &stubStrategy{name: "s", loc: Location{City: "Pune"}, ok: true}
	r := NewResolver(nil, s)

	r.Resolve(context.Background())
	_, ok := r.Cached()
	require.True(t, ok)

	r.ClearCached()
	_, ok = r.Cached()
	require.False(t, ok)

	r.Resolve(context.Background())
	assert.Equal(t, 2, s.attempts)
}

func TestDeviceStrategySkipsWithoutSource(t *testing.T) {
	s := &DeviceStrategy{}
	_, ok := s.Attempt(context.Background())
	assert.False(t, ok)
}

func TestDeviceStrategyFailsWhenDeviceUnavailable(t *testing.T) {
	s := &DeviceStrategy{Source: errCoordinateSource{}, Wait: time.Second}
	_, ok := s.Attempt(context.Background())
	assert.False(t, ok)
}

func TestDeviceStrategyKeepsCoordinatesOnGeocodeFailure(t *testing.T) {
	coords := Coordinates{Latitude: 18.52, Longitude: 73.85}
	s := &DeviceStrategy{
		Source:   &StaticCoordinateSource{Coords: coords},
		Geocoder: errGeocoder{},
		Wait:     time.Second,
	}

	loc, ok := s.Attempt(context.Background())
	require.True(t, ok)
	assert.Equal(t, coords, loc.Coordinates)
	assert.Equal(t, UnknownPlace, loc.City)
	assert.Equal(t, UnknownPlace, loc.State)
}

func TestIPStrategyRejectsEmptyCity(t *testing.T) {
	s := &IPStrategy{StrategyName: "ip", Locator: emptyCityLocator{}}
	_, ok := s.Attempt(context.Background())
	assert.False(t, ok)
}

type emptyCityLocator struct{}

func (emptyCityLocator) Locate(context.Context) (Location, error) {
	return Location{Country: "India"}, nil
}

func TestResolveConcurrentCallsShareOneResolution(t *testing.T) {
	s := &stubStrategy{name: "s", loc: Location{City: "Chennai"}, ok: true}
	r := NewResolver(nil, s)

	done := make(chan Location, 16)
	for i := 0; i < 16; i++ {
		go func() { done <- r.Resolve(context.Background()) }()
	}
	for i := 0; i < 16; i++ {
		got := <-done
		assert.Equal(t, "Chennai", got.City)
	}
	assert.Equal(t, 1, s.attempts)
}
