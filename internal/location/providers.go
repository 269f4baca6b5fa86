package location

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mamasphere/pricing-service/internal/httpclient"
)

// HTTPReverseGeocoder looks up place details from a Nominatim-compatible
// reverse geocoding endpoint.
type HTTPReverseGeocoder struct {
	Client  *httpclient.Client
	BaseURL string
}

type reverseGeocodeResponse struct {
	Address struct {
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
		State    string `json:"state"`
		Country  string `json:"country"`
		Postcode string `json:"postcode"`
	} `json:"address"`
}

func (g *HTTPReverseGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error) {
	u := fmt.Sprintf("%s/reverse?format=json&lat=%f&lon=%f", g.BaseURL, lat, lon)

	var resp reverseGeocodeResponse
	if err := g.Client.GetJSON(ctx, u, nil, &resp); err != nil {
		return Place{}, fmt.Errorf("reverse geocode: %w", err)
	}

	city := resp.Address.City
	if city == "" {
		city = resp.Address.Town
	}
	if city == "" {
		city = resp.Address.Village
	}
	if city == "" {
		return Place{}, fmt.Errorf("reverse geocode: no city in response for %f,%f", lat, lon)
	}

	return Place{
		City:       city,
		State:      resp.Address.State,
		Country:    resp.Address.Country,
		PostalCode: resp.Address.Postcode,
	}, nil
}

// TokenIPLocator is the credentialed IP geolocation lookup (ipinfo-style
// API). It is only wired into the chain when a token is configured.
type TokenIPLocator struct {
	Client  *httpclient.Client
	BaseURL string
	Token   string
}

type tokenIPResponse struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Postal  string `json:"postal"`
	Loc     string `json:"loc"` // "lat,lon"
}

func (l *TokenIPLocator) Locate(ctx context.Context) (Location, error) {
	u := fmt.Sprintf("%s/json?token=%s", l.BaseURL, url.QueryEscape(l.Token))

	var resp tokenIPResponse
	if err := l.Client.GetJSON(ctx, u, nil, &resp); err != nil {
		return Location{}, fmt.Errorf("ip lookup: %w", err)
	}

	loc := Location{
		City:       resp.City,
		State:      resp.Region,
		Country:    resp.Country,
		PostalCode: resp.Postal,
	}
	// loc is "lat,lon"; a parse failure leaves zero coordinates, which is
	// acceptable for a best-effort lookup.
	fmt.Sscanf(resp.Loc, "%f,%f", &loc.Coordinates.Latitude, &loc.Coordinates.Longitude)
	return loc, nil
}

// FreeIPLocator is the credential-free backup lookup (ip-api-style API).
type FreeIPLocator struct {
	Client  *httpclient.Client
	BaseURL string
}

type freeIPResponse struct {
	Status     string  `json:"status"`
	City       string  `json:"city"`
	RegionName string  `json:"regionName"`
	Country    string  `json:"country"`
	Zip        string  `json:"zip"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

func (l *FreeIPLocator) Locate(ctx context.Context) (Location, error) {
	var resp freeIPResponse
	if err := l.Client.GetJSON(ctx, l.BaseURL+"/json", nil, &resp); err != nil {
		return Location{}, fmt.Errorf("ip lookup: %w", err)
	}
	if resp.Status != "" && resp.Status != "success" {
		return Location{}, fmt.Errorf("ip lookup: provider returned status %q", resp.Status)
	}

	return Location{
		City:       resp.City,
		State:      resp.RegionName,
		Country:    resp.Country,
		PostalCode: resp.Zip,
		Coordinates: Coordinates{
			Latitude:  resp.Lat,
			Longitude: resp.Lon,
		},
	}, nil
}
