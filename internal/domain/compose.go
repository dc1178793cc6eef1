package domain

import (
	"fmt"
	"time"
)

// Fixed sentences.
const (
	DefaultIntro = "Here is your Radio traffic report! With the help of U-DOT, we provide you the most up to date information."
	DefaultOutro = "We hope you found this traffic report helpful. Drive safely out there."

	RoadsAllClear  = "All roadways are clear in the area."
	PassesAllClear = "All mountain passes are clear with good visibility."
)

// AdvisoryTimeLayout renders advisory start and end times, e.g. "January 05 at 3:04 PM".
const AdvisoryTimeLayout = "January 02 at 3:04 PM"

// Composer turns a Selection into report sentences.
type Composer struct {
	intro    string
	outro    string
	location *time.Location
}

// NewComposer creates a Composer that speaks times in loc. Empty intro or
// outro fall back to the defaults.
func NewComposer(intro, outro string, loc *time.Location) *Composer {
	if intro == "" {
		intro = DefaultIntro
	}
	if outro == "" {
		outro = DefaultOutro
	}
	if loc == nil {
		loc = time.Local
	}
	return &Composer{intro: intro, outro: outro, location: loc}
}

// Compose builds the report: intro, roads, passes, advisories, vehicles,
// outro. Sentences within a category keep the order of sel.
func (c *Composer) Compose(sel Selection, generatedAt time.Time) Report {
	sentences := []string{c.intro}

	if len(sel.Roads) == 0 {
		sentences = append(sentences, RoadsAllClear)
	}
	for _, r := range sel.Roads {
		sentences = append(sentences, RoadSentence(r))
	}

	for _, p := range sel.Passes.Findings {
		sentences = append(sentences, PassSentence(p))
	}
	if sel.Passes.AllClear {
		sentences = append(sentences, PassesAllClear)
	}

	for _, a := range sel.Advisories {
		sentences = append(sentences, AdvisorySentence(a, c.location))
	}

	for _, v := range sel.Vehicles {
		sentences = append(sentences, VehicleSentence(v))
	}

	sentences = append(sentences, c.outro)
	return Report{Sentences: sentences, GeneratedAt: generatedAt}
}

// RoadSentence describes a notable roadway.
func RoadSentence(r RoadFact) string {
	return fmt.Sprintf("%s is %s with %s weather.", r.RoadwayName, r.RoadCondition, r.WeatherCondition)
}

// PassSentence describes a pass with poor visibility.
func PassSentence(p PassFinding) string {
	if p.Tier == VisibilityLow {
		return fmt.Sprintf("%s has low visibility due to the current weather conditions.", p.Roadway)
	}
	return fmt.Sprintf("%s has lowered visibility due to the current weather conditions.", p.Roadway)
}

// AdvisorySentence reads out an advisory and its time range.
func AdvisorySentence(a AdvisoryFact, loc *time.Location) string {
	return fmt.Sprintf("According to U-Dot, as of %s, %s, This advisory is in place until %s.",
		a.Start.In(loc).Format(AdvisoryTimeLayout),
		a.Message,
		a.End.In(loc).Format(AdvisoryTimeLayout),
	)
}

// VehicleSentence places a snowplow on a street.
func VehicleSentence(v VehicleFact) string {
	return fmt.Sprintf("There is a snowplow on %s in %s heading %s.", v.Street, v.City, BearingToCardinal(v.Bearing))
}
