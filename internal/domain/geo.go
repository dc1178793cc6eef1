package domain

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// EarthRadiusMiles is the mean Earth radius used for haversine distances.
const EarthRadiusMiles = 3958.8

const metersPerMile = 1609.344

var cardinals = [8]string{"North", "North-East", "East", "South-East", "South", "South-West", "West", "North-West"}

// DistanceMiles returns the great-circle distance between two coordinates in
// miles.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusMiles * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Distance is DistanceMiles for orb points.
func Distance(a, b orb.Point) float64 {
	return DistanceMiles(a.Lat(), a.Lon(), b.Lat(), b.Lon())
}

// WithinRadius reports whether p lies within miles of center. A padded
// bounding box rejects far away points before the haversine is computed,
// unless the circle reaches a pole or crosses the antimeridian, where the box
// is undefined or wraps.
func WithinRadius(center, p orb.Point, miles float64) bool {
	bound := geo.NewBoundAroundPoint(center, miles*metersPerMile*1.01)
	if usableBound(bound) && !bound.Contains(p) {
		return false
	}
	return Distance(center, p) <= miles
}

func usableBound(b orb.Bound) bool {
	for _, v := range []float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Min.Lon() >= -180 && b.Max.Lon() <= 180 && b.Min.Lat() >= -90 && b.Max.Lat() <= 90
}

// BearingToCardinal maps a bearing in degrees to one of the eight compass
// names. Callers should pass bearings in [0, 360); other values are folded
// onto the circle.
func BearingToCardinal(bearing float64) string {
	idx := int(math.RoundToEven(bearing/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return cardinals[idx]
}

// NormalizeBearing folds any bearing into [0, 360).
func NormalizeBearing(bearing float64) float64 {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	return b
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
