// Command validate audits an interests file against the UDOT feeds. It checks
// that every roadway, pass, and region of interest actually occurs in the
// feed data, so a typo in the interests file does not silently drop a
// category from every report.
//
// Usage:
//
//	go run ./cmd/validate -interests interests.yaml -feeds-dir testdata/feeds
//
// Without -feeds-dir the feeds are fetched live using UDOT_API_KEY.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/paulmach/orb"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/adapter/udot"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/config"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
)

// phase tracks pass/fail for a validation phase. Notes are informational and
// never fail the phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	interestsPath := flag.String("interests", sharedcfg.EnvOrDefault("INTERESTS_FILE", "/etc/radio_weather_report/interests.yaml"), "path to the interests YAML file")
	feedsDir := flag.String("feeds-dir", "", "directory of feed snapshots written by cmd/snapshot; empty fetches live feeds")
	flag.Parse()

	if code := run(*interestsPath, *feedsDir); code != 0 {
		os.Exit(code)
	}
}

func run(interestsPath, feedsDir string) int {
	fmt.Println("=== Traffic Report Interests Audit ===")
	fmt.Println()

	interests, err := config.LoadInterests(interestsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	var feeds domain.Feeds
	if feedsDir != "" {
		feeds, err = loadSnapshots(feedsDir)
	} else {
		feeds, err = fetchLive()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load feeds: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRoadways(interests, feeds.RoadConditions),
		validatePasses(interests, feeds.MountainPasses),
		validateRegions(interests, feeds.Advisories),
		validateVehicleCoverage(interests, feeds.ServiceVehicles),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d road conditions, %d mountain passes, %d alerts, %d service vehicles\n",
		len(feeds.RoadConditions), len(feeds.MountainPasses), len(feeds.Advisories), len(feeds.ServiceVehicles))

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.notes) == 0 {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
		for _, n := range p.notes {
			fmt.Printf("  note: %s\n", n)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Loading ─────────────────────────────────────────────────

func loadSnapshots(dir string) (domain.Feeds, error) {
	var feeds domain.Feeds
	var err error
	if feeds.RoadConditions, err = loadJSON[domain.RawRoadCondition](filepath.Join(dir, udot.FeedRoadConditions+".json")); err != nil {
		return feeds, err
	}
	if feeds.MountainPasses, err = loadJSON[domain.RawMountainPass](filepath.Join(dir, udot.FeedMountainPasses+".json")); err != nil {
		return feeds, err
	}
	if feeds.Advisories, err = loadJSON[domain.RawAdvisory](filepath.Join(dir, udot.FeedAlerts+".json")); err != nil {
		return feeds, err
	}
	if feeds.ServiceVehicles, err = loadJSON[domain.RawServiceVehicle](filepath.Join(dir, udot.FeedServiceVehicles+".json")); err != nil {
		return feeds, err
	}
	return feeds, nil
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// fetchLive reads all four feeds. Unlike a report run, a failed feed is an
// error here: an audit against missing data proves nothing.
func fetchLive() (domain.Feeds, error) {
	apiKey := os.Getenv("UDOT_API_KEY")
	if apiKey == "" {
		return domain.Feeds{}, fmt.Errorf("UDOT_API_KEY is required without -feeds-dir")
	}
	client := udot.NewClient(apiKey, sharedcfg.EnvOrDefault("UDOT_BASE_URL", udot.DefaultBaseURL), 30*time.Second,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var feeds domain.Feeds
	var err error
	if feeds.RoadConditions, err = client.RoadConditions(ctx); err != nil {
		return feeds, err
	}
	if feeds.MountainPasses, err = client.MountainPasses(ctx); err != nil {
		return feeds, err
	}
	if feeds.Advisories, err = client.Advisories(ctx); err != nil {
		return feeds, err
	}
	if feeds.ServiceVehicles, err = client.ServiceVehicles(ctx); err != nil {
		return feeds, err
	}
	return feeds, nil
}

// ── Phases ──────────────────────────────────────────────────

func validateRoadways(in *config.Interests, roads []domain.RawRoadCondition) *phase {
	p := &phase{name: "Phase 1: Roadways in roadconditions feed"}
	fmt.Println("Phase 1: Checking roadways of interest...")

	seen := make(map[string]bool, len(roads))
	for _, r := range roads {
		seen[r.RoadwayName] = true
	}
	for _, name := range in.Roadways {
		if !seen[name] {
			p.errorf("roadway %q never appears in the roadconditions feed", name)
		}
	}
	return p
}

func validatePasses(in *config.Interests, passes []domain.RawMountainPass) *phase {
	p := &phase{name: "Phase 2: Passes in mountainpasses feed"}
	fmt.Println("Phase 2: Checking mountain passes of interest...")

	roadwaysByPass := map[string][]string{}
	for _, mp := range passes {
		roadwaysByPass[mp.Name] = append(roadwaysByPass[mp.Name], mp.Roadway)
	}
	for _, name := range sortedKeys(in.Passes) {
		roadway := in.Passes[name]
		roadways, ok := roadwaysByPass[name]
		switch {
		case !ok:
			p.errorf("pass %q never appears in the mountainpasses feed", name)
		case !slices.Contains(roadways, roadway):
			p.errorf("pass %q is on %v in the feed, not %q", name, roadways, roadway)
		}
	}
	return p
}

// validateRegions only notes missing regions; the alerts feed is empty for a
// region whenever nothing is going on there.
func validateRegions(in *config.Interests, advisories []domain.RawAdvisory) *phase {
	p := &phase{name: "Phase 3: Regions in alerts feed"}
	fmt.Println("Phase 3: Checking regions of interest...")

	seen := map[string]bool{}
	for _, a := range advisories {
		for _, r := range a.Regions {
			seen[r] = true
		}
	}
	for _, region := range in.Regions {
		if !seen[region] {
			p.notef("region %q has no current alerts", region)
		}
	}
	return p
}

func validateVehicleCoverage(in *config.Interests, vehicles []domain.RawServiceVehicle) *phase {
	p := &phase{name: "Phase 4: Service vehicles near reference"}
	fmt.Println("Phase 4: Checking service vehicle coverage...")

	center := orb.Point{in.Reference.Longitude, in.Reference.Latitude}
	near := 0
	for _, v := range domain.NormalizeServiceVehicles(vehicles) {
		if v.HasPosition && domain.WithinRadius(center, v.Position, in.MaxDistanceMiles) {
			near++
		}
	}
	p.notef("%d of %d service vehicles are within %.1f miles of the reference point",
		near, len(vehicles), in.MaxDistanceMiles)
	return p
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
