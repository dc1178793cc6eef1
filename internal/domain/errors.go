package domain

import "errors"

// Recoverable failure kinds. Adapters wrap these so callers can count and log
// them; none of them stops a report.
var (
	ErrFeedUnavailable    = errors.New("feed unavailable")
	ErrGeocodeUnavailable = errors.New("reverse geocoding unavailable")
)
