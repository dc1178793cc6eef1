package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
)

// Interests is what a station cares about, loaded from YAML.
type Interests struct {
	Roadways         []string          `yaml:"roadways"`
	Passes           map[string]string `yaml:"passes"` // pass name -> roadway
	Regions          []string          `yaml:"regions"`
	Reference        *Coordinate       `yaml:"reference"`
	MaxDistanceMiles float64           `yaml:"max_distance_miles"`
}

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// LoadInterests loads and validates the interests file at path. An omitted
// max_distance_miles takes the default radius.
func LoadInterests(path string) (*Interests, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read interests file: %w", err)
	}

	var in Interests
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse interests file: %w", err)
	}
	if in.MaxDistanceMiles == 0 {
		in.MaxDistanceMiles = domain.DefaultMaxDistanceMiles
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid interests file %s: %w", path, err)
	}
	return &in, nil
}

// Validate checks the reference point and search radius.
func (in *Interests) Validate() error {
	if in.Reference == nil {
		return errors.New("reference is required")
	}
	if in.Reference.Latitude < -90 || in.Reference.Latitude > 90 {
		return fmt.Errorf("reference latitude %v out of range [-90, 90]", in.Reference.Latitude)
	}
	if in.Reference.Longitude < -180 || in.Reference.Longitude > 180 {
		return fmt.Errorf("reference longitude %v out of range [-180, 180]", in.Reference.Longitude)
	}
	if in.MaxDistanceMiles <= 0 {
		return fmt.Errorf("max_distance_miles must be positive, got %v", in.MaxDistanceMiles)
	}
	for pass, roadway := range in.Passes {
		if roadway == "" {
			return fmt.Errorf("pass %q has no roadway", pass)
		}
	}
	return nil
}

// Policy combines the interests with the run settings into the immutable
// policy the report is filtered against.
func (c *Config) Policy(in *Interests) domain.Policy {
	cfg := domain.PolicyConfig{
		Roadways:                             in.Roadways,
		Passes:                               in.Passes,
		Regions:                              in.Regions,
		MaxDistanceMiles:                     in.MaxDistanceMiles,
		VehicleWindow:                        c.VehicleWindow,
		Location:                             c.ReportLocation,
		ModerateVisibilitySuppressesAllClear: c.PassModerateSuppressesAllClear,
	}
	if in.Reference != nil {
		cfg.Reference = orb.Point{in.Reference.Longitude, in.Reference.Latitude}
	}
	return domain.NewPolicy(cfg)
}
