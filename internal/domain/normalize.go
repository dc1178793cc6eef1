package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// NormalizeRoadConditions converts roadconditions records into RoadFacts,
// substituting "Unknown" for missing condition fields. Order is preserved.
func NormalizeRoadConditions(raws []RawRoadCondition) []RoadFact {
	facts := make([]RoadFact, 0, len(raws))
	for _, r := range raws {
		facts = append(facts, RoadFact{
			RoadwayName:      r.RoadwayName,
			RoadCondition:    stringOrUnknown(r.RoadCondition),
			WeatherCondition: stringOrUnknown(r.WeatherCondition),
		})
	}
	return facts
}

// NormalizeMountainPasses converts mountainpasses records into PassFacts.
// Missing visibility becomes "None".
func NormalizeMountainPasses(raws []RawMountainPass) []PassFact {
	facts := make([]PassFact, 0, len(raws))
	for _, r := range raws {
		facts = append(facts, PassFact{
			PassName:   r.Name,
			Roadway:    r.Roadway,
			Visibility: visibilityText(r.Visibility),
		})
	}
	return facts
}

// NormalizeAdvisories converts alerts records into AdvisoryFacts. Records
// whose start or end time is not an epoch are skipped.
func NormalizeAdvisories(raws []RawAdvisory) []AdvisoryFact {
	facts := make([]AdvisoryFact, 0, len(raws))
	for _, r := range raws {
		start, ok := epochTime(r.StartTime)
		if !ok {
			continue
		}
		end, ok := epochTime(r.EndTime)
		if !ok {
			continue
		}
		regions := make([]string, len(r.Regions))
		copy(regions, r.Regions)
		facts = append(facts, AdvisoryFact{
			Message: r.Message,
			Regions: regions,
			Start:   start,
			End:     end,
		})
	}
	return facts
}

// NormalizeServiceVehicles converts servicevehicles records into VehicleFacts.
// Records without a readable LastUpdated are skipped. Coordinates that are
// absent, malformed or exactly zero leave HasPosition false; a bearing that
// does not parse leaves HasBearing false.
func NormalizeServiceVehicles(raws []RawServiceVehicle) []VehicleFact {
	facts := make([]VehicleFact, 0, len(raws))
	for _, r := range raws {
		updated, ok := epochTime(r.LastUpdated)
		if !ok {
			continue
		}
		f := VehicleFact{LastUpdated: updated}
		if r.ID != nil {
			f.ID = fmt.Sprint(r.ID)
		}
		if b, ok := ParseNumber(r.Bearing); ok {
			f.Bearing = NormalizeBearing(b)
			f.HasBearing = true
		}
		lat, latOK := ParseNumber(r.Latitude)
		lon, lonOK := ParseNumber(r.Longitude)
		if latOK && lonOK && lat != 0 && lon != 0 {
			f.Position = orb.Point{lon, lat}
			f.HasPosition = true
		}
		facts = append(facts, f)
	}
	return facts
}

// epochTime reads Unix seconds, keeping any fractional part.
func epochTime(v any) (time.Time, bool) {
	secs, ok := ParseNumber(v)
	if !ok {
		return time.Time{}, false
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))), true
}

func stringOrUnknown(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return UnknownCondition
	}
	return *s
}

func visibilityText(v any) string {
	switch t := v.(type) {
	case nil:
		return NoVisibility
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
