// Package location resolves the caller's location through an ordered
// chain of detection strategies, memoizing the first success.
package location

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is a resolved user location. It is immutable once produced by
// the resolver.
type Location struct {
	City        string      `json:"city"`
	State       string      `json:"state"`
	Country     string      `json:"country"`
	PostalCode  string      `json:"postalCode,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// UnknownPlace is the city/state placeholder used when coordinates are
// known but reverse geocoding failed.
const UnknownPlace = "Unknown"

// Default returns the hard-coded fallback location. The final resolver
// strategy always yields this, which is what makes resolution total.
func Default() Location {
	return Location{
		City:    "Mumbai",
		State:   "Maharashtra",
		Country: "India",
		Coordinates: Coordinates{
			Latitude:  19.0760,
			Longitude: 72.8777,
		},
	}
}
