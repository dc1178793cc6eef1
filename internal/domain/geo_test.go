package domain

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestDistanceMiles(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		delta                  float64
	}{
		{name: "same point", lat1: 41.0361, lon1: -111.6769, lat2: 41.0361, lon2: -111.6769, want: 0, delta: 0},
		{name: "london to paris", lat1: 51.5074, lon1: -0.1278, lat2: 48.8566, lon2: 2.3522, want: 213.5, delta: 1},
		{name: "one degree on the equator", lat1: 0, lon1: 0, lat2: 0, lon2: 1, want: 69.09, delta: 0.05},
		{name: "morgan to salt lake city", lat1: 41.0361, lon1: -111.6769, lat2: 40.7608, lon2: -111.8910, want: 22.1, delta: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceMiles(tt.lat1, tt.lon1, tt.lat2, tt.lon2), tt.delta)
		})
	}
}

func TestDistanceMiles_ZeroForIdenticalPoints(t *testing.T) {
	for _, p := range [][2]float64{{0, 0}, {90, 0}, {-90, 180}, {41.0361, -111.6769}, {-33.86, 151.21}} {
		assert.Zero(t, DistanceMiles(p[0], p[1], p[0], p[1]), "point %v", p)
	}
}

func TestDistanceMiles_Symmetric(t *testing.T) {
	points := []orb.Point{
		{-111.6769, 41.0361},
		{-111.8910, 40.7608},
		{2.3522, 48.8566},
		{151.21, -33.86},
		{-179.9, 0.5},
	}
	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, Distance(a, b), Distance(b, a), "%v <-> %v", a, b)
		}
	}
}

func TestWithinRadius(t *testing.T) {
	ref := orb.Point{-111.6769, 41.0361}

	assert.True(t, WithinRadius(ref, ref, 15))
	assert.True(t, WithinRadius(ref, orb.Point{-111.70, 41.10}, 15))
	assert.False(t, WithinRadius(ref, orb.Point{-111.8910, 40.7608}, 15))
	assert.True(t, WithinRadius(ref, orb.Point{-111.8910, 40.7608}, 25))
}

func TestWithinRadius_AcrossAntimeridian(t *testing.T) {
	center := orb.Point{179.99, 0}

	assert.True(t, WithinRadius(center, orb.Point{-179.99, 0}, 5))
	assert.False(t, WithinRadius(center, orb.Point{-178, 0}, 5))
}

func TestWithinRadius_NearPole(t *testing.T) {
	center := orb.Point{0, 89.99}

	assert.True(t, WithinRadius(center, orb.Point{180, 89.99}, 5))
	assert.False(t, WithinRadius(center, orb.Point{0, 89}, 5))
}

func TestBearingToCardinal(t *testing.T) {
	tests := []struct {
		bearing float64
		want    string
	}{
		{0, "North"},
		{44, "North-East"},
		{45, "North-East"},
		{90, "East"},
		{135, "South-East"},
		{180, "South"},
		{225, "South-West"},
		{270, "West"},
		{315, "North-West"},
		{337.4, "North-West"},
		{337.6, "North"},
		{359, "North"},
		{360, "North"},
		{22.5, "North"}, // half rounds to even sector 0
		{67.5, "East"},  // half rounds to even sector 2
		{22.6, "North-East"},
		{-45, "North-West"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BearingToCardinal(tt.bearing), "bearing %v", tt.bearing)
	}
}

func TestBearingToCardinal_Periodic(t *testing.T) {
	for b := 0.0; b < 360; b += 7 {
		assert.Equal(t, BearingToCardinal(b), BearingToCardinal(b+360), "bearing %v", b)
	}
}

func TestBearingToCardinal_EvenSpacing(t *testing.T) {
	for i, name := range cardinals {
		center := float64(i) * 45
		assert.Equal(t, name, BearingToCardinal(center))
		assert.Equal(t, name, BearingToCardinal(NormalizeBearing(center-22)))
		assert.Equal(t, name, BearingToCardinal(center+22))
	}
}

func TestNormalizeBearing(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeBearing(0))
	assert.Equal(t, 0.0, NormalizeBearing(360))
	assert.Equal(t, 315.0, NormalizeBearing(-45))
	assert.Equal(t, 90.0, NormalizeBearing(450))
}
