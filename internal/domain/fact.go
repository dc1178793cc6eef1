package domain

import (
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// Sentinels substituted for missing feed fields.
const (
	UnknownCondition = "Unknown"
	NoVisibility     = "None"
)

// Canonical "nothing to report" road values.
const (
	ClearRoadCondition    = "Dry"
	ClearWeatherCondition = "Fair"
)

// RoadFact is a normalized road condition record.
type RoadFact struct {
	RoadwayName      string
	RoadCondition    string
	WeatherCondition string
}

// Notable reports whether the roadway is anything other than dry and fair.
func (f RoadFact) Notable() bool {
	return f.RoadCondition != ClearRoadCondition || f.WeatherCondition != ClearWeatherCondition
}

// PassFact is a normalized mountain pass record. Visibility keeps the feed's
// text ("None" when absent); use VisibilityMiles to read it as a number.
type PassFact struct {
	PassName   string
	Roadway    string
	Visibility string
}

// VisibilityMiles parses the visibility reading. ok is false when the value
// is absent or malformed.
func (f PassFact) VisibilityMiles() (miles float64, ok bool) {
	return ParseNumber(f.Visibility)
}

// AdvisoryFact is a normalized advisory.
type AdvisoryFact struct {
	Message string
	Regions []string
	Start   time.Time
	End     time.Time
}

// VehicleFact is a normalized service vehicle position. Street and City are
// filled in by reverse geocoding.
type VehicleFact struct {
	ID          string
	Bearing     float64
	HasBearing  bool
	Position    orb.Point
	HasPosition bool
	LastUpdated time.Time

	Street string
	City   string
	County string
}

// Report is the ordered list of sentences that make up one broadcast.
type Report struct {
	Sentences   []string
	GeneratedAt time.Time
}

// Narrative joins the sentences into the single block of text sent to speech
// synthesis.
func (r Report) Narrative() string {
	return strings.Join(r.Sentences, " ")
}
