package domain

import (
	"maps"
	"slices"
	"time"

	"github.com/paulmach/orb"
)

// SeasonalClosurePhrase marks standing advisories that are never reported.
const SeasonalClosurePhrase = "Seasonal Road Closures"

// Default policy values.
const (
	DefaultMaxDistanceMiles = 15
	DefaultVehicleWindow    = time.Hour
)

// PolicyConfig is the input to NewPolicy.
type PolicyConfig struct {
	Roadways         []string
	Passes           map[string]string // pass name -> roadway
	Regions          []string
	Reference        orb.Point
	MaxDistanceMiles float64
	VehicleWindow    time.Duration
	Location         *time.Location

	// ModerateVisibilitySuppressesAllClear makes a pass in the "lowered"
	// tier (4 < v <= 8 miles) cancel the all-clear sentence. When false only
	// the "low" tier does.
	ModerateVisibilitySuppressesAllClear bool
}

// Policy is the immutable set of interests and thresholds a report is built
// against. Build it with NewPolicy.
type Policy struct {
	roadways map[string]struct{}
	passes   map[string]string
	regions  map[string]struct{}

	reference        orb.Point
	maxDistanceMiles float64
	vehicleWindow    time.Duration
	location         *time.Location
	moderateBlocks   bool
}

// NewPolicy copies cfg into a Policy, filling in defaults for zero values.
func NewPolicy(cfg PolicyConfig) Policy {
	p := Policy{
		roadways:         toSet(cfg.Roadways),
		passes:           maps.Clone(cfg.Passes),
		regions:          toSet(cfg.Regions),
		reference:        cfg.Reference,
		maxDistanceMiles: cfg.MaxDistanceMiles,
		vehicleWindow:    cfg.VehicleWindow,
		location:         cfg.Location,
		moderateBlocks:   cfg.ModerateVisibilitySuppressesAllClear,
	}
	if p.passes == nil {
		p.passes = map[string]string{}
	}
	if p.maxDistanceMiles <= 0 {
		p.maxDistanceMiles = DefaultMaxDistanceMiles
	}
	if p.vehicleWindow <= 0 {
		p.vehicleWindow = DefaultVehicleWindow
	}
	if p.location == nil {
		p.location = time.Local
	}
	return p
}

// WatchesRoadway reports whether name is a roadway of interest.
func (p Policy) WatchesRoadway(name string) bool {
	_, ok := p.roadways[name]
	return ok
}

// WatchesPass reports whether the (pass, roadway) pair is of interest.
func (p Policy) WatchesPass(name, roadway string) bool {
	want, ok := p.passes[name]
	return ok && want == roadway
}

// WatchesAnyRegion reports whether regions intersects the regions of interest.
func (p Policy) WatchesAnyRegion(regions []string) bool {
	for _, r := range regions {
		if _, ok := p.regions[r]; ok {
			return true
		}
	}
	return false
}

// Reference is the point vehicle distances are measured from.
func (p Policy) Reference() orb.Point { return p.reference }

// MaxDistanceMiles is the vehicle search radius.
func (p Policy) MaxDistanceMiles() float64 { return p.maxDistanceMiles }

// VehicleWindow is how recently a vehicle must have reported.
func (p Policy) VehicleWindow() time.Duration { return p.vehicleWindow }

// Location is the zone advisory times are spoken in.
func (p Policy) Location() *time.Location { return p.location }

// Roadways returns the roadways of interest, sorted.
func (p Policy) Roadways() []string { return slices.Sorted(maps.Keys(p.roadways)) }

// Regions returns the regions of interest, sorted.
func (p Policy) Regions() []string { return slices.Sorted(maps.Keys(p.regions)) }

// Passes returns a copy of the pass -> roadway interest map.
func (p Policy) Passes() map[string]string { return maps.Clone(p.passes) }

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}
