package domain

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

// Visibility thresholds in miles.
const (
	LowVisibilityMiles     = 4
	LoweredVisibilityMiles = 8
)

// VisibilityTier classifies a poor visibility reading.
type VisibilityTier int

const (
	// VisibilityLow is at or below LowVisibilityMiles.
	VisibilityLow VisibilityTier = iota + 1
	// VisibilityLowered is above LowVisibilityMiles and at or below LoweredVisibilityMiles.
	VisibilityLowered
)

func (t VisibilityTier) String() string {
	switch t {
	case VisibilityLow:
		return "low"
	case VisibilityLowered:
		return "lowered"
	default:
		return "unknown"
	}
}

// PassFinding is a pass of interest with poor visibility.
type PassFinding struct {
	PassName string
	Roadway  string
	Miles    float64
	Tier     VisibilityTier
}

// PassSelection is the outcome of the mountain pass filter.
type PassSelection struct {
	Findings []PassFinding
	AllClear bool
}

// Selection holds everything that made it past the filters, per category.
type Selection struct {
	Roads      []RoadFact
	Passes     PassSelection
	Advisories []AdvisoryFact
	Vehicles   []VehicleFact
}

// Filter decides which normalized facts are newsworthy. Each category is
// filtered on its own; nothing carries over between categories.
type Filter struct {
	policy Policy
	clock  clockwork.Clock
}

// NewFilter creates a Filter. A nil clock uses the wall clock.
func NewFilter(policy Policy, clock clockwork.Clock) *Filter {
	return &Filter{policy: policy, clock: clockOrReal(clock)}
}

// Policy returns the policy the filter was built with.
func (f *Filter) Policy() Policy { return f.policy }

// Now is the filter's notion of the current time.
func (f *Filter) Now() time.Time { return f.clock.Now() }

// Roads returns the notable roadways of interest in feed order. An empty
// result means the all-clear sentence applies.
func (f *Filter) Roads(facts []RoadFact) []RoadFact {
	var notable []RoadFact
	for _, fact := range facts {
		if f.policy.WatchesRoadway(fact.RoadwayName) && fact.Notable() {
			notable = append(notable, fact)
		}
	}
	return notable
}

// Passes returns the passes of interest with poor visibility in feed order.
// Readings that are absent or malformed are skipped. AllClear stays true
// unless a pass hit the low tier, or the lowered tier when the policy says
// moderate visibility counts.
func (f *Filter) Passes(facts []PassFact) PassSelection {
	sel := PassSelection{AllClear: true}
	for _, fact := range facts {
		if !f.policy.WatchesPass(fact.PassName, fact.Roadway) {
			continue
		}
		miles, ok := fact.VisibilityMiles()
		if !ok {
			continue
		}

		var tier VisibilityTier
		switch {
		case miles <= LowVisibilityMiles:
			tier = VisibilityLow
			sel.AllClear = false
		case miles <= LoweredVisibilityMiles:
			tier = VisibilityLowered
			if f.policy.moderateBlocks {
				sel.AllClear = false
			}
		default:
			continue
		}
		sel.Findings = append(sel.Findings, PassFinding{
			PassName: fact.PassName,
			Roadway:  fact.Roadway,
			Miles:    miles,
			Tier:     tier,
		})
	}
	return sel
}

// Advisories returns advisories touching a region of interest, minus the
// standing seasonal closure notices, in feed order.
func (f *Filter) Advisories(facts []AdvisoryFact) []AdvisoryFact {
	var out []AdvisoryFact
	for _, fact := range facts {
		if strings.Contains(fact.Message, SeasonalClosurePhrase) {
			continue
		}
		if !f.policy.WatchesAnyRegion(fact.Regions) {
			continue
		}
		out = append(out, fact)
	}
	return out
}

// VehicleCandidates applies the checks that need no network: a readable
// bearing, a position, the distance limit, and the reporting window.
func (f *Filter) VehicleCandidates(facts []VehicleFact) []VehicleFact {
	cutoff := f.clock.Now().Add(-f.policy.vehicleWindow)

	var out []VehicleFact
	for _, v := range facts {
		if !v.HasBearing || !v.HasPosition {
			continue
		}
		if v.LastUpdated.Before(cutoff) {
			continue
		}
		if !WithinRadius(f.policy.reference, v.Position, f.policy.maxDistanceMiles) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Vehicles returns the candidates that also reverse geocode to a street and
// city, in feed order. Lookups run one at a time.
func (f *Filter) Vehicles(ctx context.Context, facts []VehicleFact, geocoder Geocoder, logger *slog.Logger) []VehicleFact {
	var out []VehicleFact
	for _, v := range f.VehicleCandidates(facts) {
		if ctx.Err() != nil {
			break
		}
		enriched, ok := EnrichVehicle(ctx, v, geocoder, logger)
		if !ok {
			continue
		}
		out = append(out, enriched)
	}
	return out
}
