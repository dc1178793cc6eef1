package domain

import "context"

// Sentinels a reverse geocoder reports for address parts it could not find.
const (
	StreetNotFound = "Street not found"
	CityNotFound   = "City not found"
	CountyNotFound = "County not found"
)

// Address is the street-level result of reverse geocoding.
type Address struct {
	Street string
	City   string
	County string
}

// Resolved reports whether both the street and the city are known.
func (a Address) Resolved() bool {
	return a.Street != "" && a.Street != StreetNotFound &&
		a.City != "" && a.City != CityNotFound
}

// Geocoder resolves coordinates to a street address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (Address, error)
}
