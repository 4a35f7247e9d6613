package geo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSamplePointInDiscContainment(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	center := Point{Lat: 48.8584, Lng: 2.2945}
	radius := 500.0

	for i := 0; i < 10000; i++ {
		p := SamplePointInDisc(rnd, center.Lat, center.Lng, radius)
		d := Distance(center, p)
		require.LessOrEqual(t, d, radius*1.001, "sample %d escaped the disc (%.2fm)", i, d)
	}
}

func TestSamplePointInDiscAreaUniform(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	center := Point{Lat: 10.762622, Lng: 106.660172}
	radius := 1000.0

	n := 20000
	inner := 0
	for i := 0; i < n; i++ {
		p := SamplePointInDisc(rnd, center.Lat, center.Lng, radius)
		if Distance(center, p) <= radius/2 {
			inner++
		}
	}

	// The inner half-radius disc covers a quarter of the area, so roughly a
	// quarter of the samples land there. Uniform-in-radius sampling would
	// put half of them there instead.
	frac := float64(inner) / float64(n)
	require.InDelta(t, 0.25, frac, 0.02)
}

func TestSamplePointInDiscHighLatitude(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	center := Point{Lat: 64.1466, Lng: -21.9426} // Reykjavik
	radius := 800.0

	for i := 0; i < 5000; i++ {
		p := SamplePointInDisc(rnd, center.Lat, center.Lng, radius)
		require.LessOrEqual(t, Distance(center, p), radius*1.005)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// One degree of latitude along a meridian.
	a := Point{Lat: 0, Lng: 0}
	b := Point{Lat: 1, Lng: 0}
	require.InDelta(t, 111195, Distance(a, b), 50)
}

func TestWithinRangeBoundary(t *testing.T) {
	p := Point{Lat: 51.5007, Lng: -0.1246}
	require.True(t, WithinRange(p, p, 0), "zero distance must pass a zero threshold")

	q := Point{Lat: 51.5008, Lng: -0.1244}
	d := Distance(p, q)
	require.True(t, WithinRange(p, q, d), "threshold is inclusive")
	require.False(t, WithinRange(p, q, d-1))
	require.True(t, WithinRange(p, q, d+1))
}
