// Command snapshot captures the four live UDOT feeds as JSON fixtures for
// tests and for cmd/validate, and prints a summary of what they contain.
//
// Usage:
//
//	UDOT_API_KEY=... go run ./cmd/snapshot -out testdata/feeds [-interests interests.yaml]
//
// With -interests the summary also previews which facts a report built from
// the snapshot would include (vehicles are counted before geocoding).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/jonboulle/clockwork"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/adapter/udot"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/config"
	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "", "directory to write <feed>.json snapshots into")
	interestsPath := flag.String("interests", "", "optional interests file for a report preview")
	timeout := flag.Duration("timeout", 30*time.Second, "per-feed request timeout")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	apiKey := os.Getenv("UDOT_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("UDOT_API_KEY is required")
	}

	client := udot.NewClient(apiKey, sharedcfg.EnvOrDefault("UDOT_BASE_URL", udot.DefaultBaseURL), *timeout, slog.Default())
	ctx, cancel := context.WithTimeout(context.Background(), 4*(*timeout))
	defer cancel()

	var feeds domain.Feeds
	var err error
	if feeds.RoadConditions, err = client.RoadConditions(ctx); err != nil {
		return err
	}
	if feeds.MountainPasses, err = client.MountainPasses(ctx); err != nil {
		return err
	}
	if feeds.Advisories, err = client.Advisories(ctx); err != nil {
		return err
	}
	if feeds.ServiceVehicles, err = client.ServiceVehicles(ctx); err != nil {
		return err
	}

	snapshots := []struct {
		feed    string
		records any
		count   int
	}{
		{udot.FeedRoadConditions, feeds.RoadConditions, len(feeds.RoadConditions)},
		{udot.FeedMountainPasses, feeds.MountainPasses, len(feeds.MountainPasses)},
		{udot.FeedAlerts, feeds.Advisories, len(feeds.Advisories)},
		{udot.FeedServiceVehicles, feeds.ServiceVehicles, len(feeds.ServiceVehicles)},
	}
	for _, s := range snapshots {
		path := filepath.Join(*outDir, s.feed+".json")
		if err := writeJSON(path, s.records); err != nil {
			return fmt.Errorf("writing %s snapshot: %w", s.feed, err)
		}
		log.Printf("%s: %d records -> %s", s.feed, s.count, path)
	}

	printStats(feeds)

	if *interestsPath != "" {
		interests, err := config.LoadInterests(*interestsPath)
		if err != nil {
			return err
		}
		printPreview(feeds, interests)
	}
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(feeds domain.Feeds) {
	fmt.Println()
	fmt.Println("=== Road conditions ===")
	conditions := map[string]int{}
	for _, r := range domain.NormalizeRoadConditions(feeds.RoadConditions) {
		conditions[r.RoadCondition+" / "+r.WeatherCondition]++
	}
	printCounts(conditions)

	fmt.Println()
	fmt.Println("=== Mountain pass visibility ===")
	tiers := map[string]int{}
	for _, p := range domain.NormalizeMountainPasses(feeds.MountainPasses) {
		miles, ok := p.VisibilityMiles()
		switch {
		case !ok:
			tiers["no reading"]++
		case miles <= domain.LowVisibilityMiles:
			tiers["low"]++
		case miles <= domain.LoweredVisibilityMiles:
			tiers["lowered"]++
		default:
			tiers["clear"]++
		}
	}
	printCounts(tiers)

	fmt.Println()
	fmt.Println("=== Service vehicles ===")
	positioned := 0
	for _, v := range domain.NormalizeServiceVehicles(feeds.ServiceVehicles) {
		if v.HasPosition {
			positioned++
		}
	}
	fmt.Printf("  %d of %d report a position\n", positioned, len(feeds.ServiceVehicles))
}

// printPreview runs the filters without a geocoder, so vehicles are the
// candidates that would be looked up.
func printPreview(feeds domain.Feeds, interests *config.Interests) {
	cfg := &config.Config{VehicleWindow: domain.DefaultVehicleWindow, ReportLocation: time.Local}
	filter := domain.NewFilter(cfg.Policy(interests), clockwork.NewRealClock())

	roads := filter.Roads(domain.NormalizeRoadConditions(feeds.RoadConditions))
	passes := filter.Passes(domain.NormalizeMountainPasses(feeds.MountainPasses))
	advisories := filter.Advisories(domain.NormalizeAdvisories(feeds.Advisories))
	vehicles := filter.VehicleCandidates(domain.NormalizeServiceVehicles(feeds.ServiceVehicles))

	fmt.Println()
	fmt.Println("=== Report preview ===")
	for _, r := range roads {
		fmt.Printf("  road:     %s\n", domain.RoadSentence(r))
	}
	for _, p := range passes.Findings {
		fmt.Printf("  pass:     %s (%s, %.1f mi)\n", domain.PassSentence(p), p.PassName, p.Miles)
	}
	for _, a := range advisories {
		fmt.Printf("  advisory: %s\n", domain.AdvisorySentence(a, time.Local))
	}
	fmt.Printf("  vehicles: %d candidates for geocoding\n", len(vehicles))
	fmt.Printf("  roads all clear: %v, passes all clear: %v\n", len(roads) == 0, passes.AllClear)
}

func printCounts(counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return counts[keys[i]] > counts[keys[j]] })
	for _, k := range keys {
		fmt.Printf("  %-40s %d\n", k, counts[k])
	}
}
