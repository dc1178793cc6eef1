package domain

import (
	"context"
	"log/slog"
)

// EnrichVehicle reverse geocodes a vehicle position. ok is false when there is
// no geocoder, no position, the lookup failed, or the street or city is
// unknown; such vehicles are left out of the report.
func EnrichVehicle(ctx context.Context, v VehicleFact, geocoder Geocoder, logger *slog.Logger) (VehicleFact, bool) {
	if geocoder == nil || !v.HasPosition {
		return v, false
	}

	addr, err := geocoder.ReverseGeocode(ctx, v.Position.Lat(), v.Position.Lon())
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"vehicle_id", v.ID,
			"lat", v.Position.Lat(),
			"lon", v.Position.Lon(),
			"error", err,
		)
		return v, false
	}
	if !addr.Resolved() {
		logger.Debug("vehicle address not resolved",
			"vehicle_id", v.ID,
			"street", addr.Street,
			"city", addr.City,
		)
		return v, false
	}

	v.Street = addr.Street
	v.City = addr.City
	v.County = addr.County
	return v, true
}
