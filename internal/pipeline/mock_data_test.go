package pipeline_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
)

// fixtureNow is the report time the testdata feeds were captured against:
// 2025-01-15 12:00 UTC.
var fixtureNow = time.Unix(1736942400, 0).UTC()

// loadFixture decodes one testdata feed the same way the UDOT client does.
func loadFixture[T any](t *testing.T, name string) []T {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	var records []T
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func loadFixtureFeeds(t *testing.T) domain.Feeds {
	t.Helper()
	return domain.Feeds{
		RoadConditions:  loadFixture[domain.RawRoadCondition](t, "roadconditions.json"),
		MountainPasses:  loadFixture[domain.RawMountainPass](t, "mountainpasses.json"),
		Advisories:      loadFixture[domain.RawAdvisory](t, "alerts.json"),
		ServiceVehicles: loadFixture[domain.RawServiceVehicle](t, "servicevehicles.json"),
	}
}

// fixtureSource serves canned feeds. A non-nil entry in errs fails that feed;
// delay holds every response so the fetches overlap.
type fixtureSource struct {
	feeds domain.Feeds
	errs  map[string]error
	delay time.Duration
	calls atomic.Int64
}

func (s *fixtureSource) wait(ctx context.Context, feed string) error {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.errs[feed]
}

func (s *fixtureSource) RoadConditions(ctx context.Context) ([]domain.RawRoadCondition, error) {
	if err := s.wait(ctx, "roadconditions"); err != nil {
		return nil, err
	}
	return s.feeds.RoadConditions, nil
}

func (s *fixtureSource) MountainPasses(ctx context.Context) ([]domain.RawMountainPass, error) {
	if err := s.wait(ctx, "mountainpasses"); err != nil {
		return nil, err
	}
	return s.feeds.MountainPasses, nil
}

func (s *fixtureSource) Advisories(ctx context.Context) ([]domain.RawAdvisory, error) {
	if err := s.wait(ctx, "alerts"); err != nil {
		return nil, err
	}
	return s.feeds.Advisories, nil
}

func (s *fixtureSource) ServiceVehicles(ctx context.Context) ([]domain.RawServiceVehicle, error) {
	if err := s.wait(ctx, "servicevehicles"); err != nil {
		return nil, err
	}
	return s.feeds.ServiceVehicles, nil
}

// morganGeocoder resolves the Old Highway Road position used in the vehicle
// fixture and returns "Street not found" everywhere else.
type morganGeocoder struct {
	calls atomic.Int64
}

func (g *morganGeocoder) ReverseGeocode(_ context.Context, lat, lon float64) (domain.Address, error) {
	g.calls.Add(1)
	if lat == 41.10 && lon == -111.70 {
		return domain.Address{Street: "Old Highway Road", City: "Morgan", County: "Morgan County"}, nil
	}
	return domain.Address{Street: domain.StreetNotFound, City: "Morgan", County: "Morgan County"}, nil
}
