package domain

// RawRoadCondition is one record from the roadconditions feed.
type RawRoadCondition struct {
	RoadwayName      string  `json:"RoadwayName"`
	RoadCondition    *string `json:"RoadCondition"`
	WeatherCondition *string `json:"WeatherCondition"`
}

// RawMountainPass is one record from the mountainpasses feed.
// Visibility is left untyped because UDOT sends numbers, numeric strings,
// "None", empty strings and nulls interchangeably.
type RawMountainPass struct {
	Name       string `json:"Name"`
	Roadway    string `json:"Roadway"`
	Visibility any    `json:"Visibility"`
}

// RawAdvisory is one record from the alerts feed. The epochs are untyped so
// one malformed record cannot fail the decode of the whole feed.
type RawAdvisory struct {
	Message   string   `json:"Message"`
	Regions   []string `json:"Regions"`
	StartTime any      `json:"StartTime"`
	EndTime   any      `json:"EndTime"`
}

// RawServiceVehicle is one record from the servicevehicles feed. Numeric
// fields are untyped for the same reason as RawAdvisory's.
type RawServiceVehicle struct {
	ID          any `json:"Id"`
	Bearing     any `json:"Bearing"`
	Latitude    any `json:"Latitude"`
	Longitude   any `json:"Longitude"`
	LastUpdated any `json:"LastUpdated"`
}

// Feeds holds the raw records of all four feeds for one report. A nil slice
// means the feed was unavailable.
type Feeds struct {
	RoadConditions  []RawRoadCondition
	MountainPasses  []RawMountainPass
	Advisories      []RawAdvisory
	ServiceVehicles []RawServiceVehicle
}
