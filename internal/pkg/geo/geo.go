package geo

import (
	"math"
	"math/rand"
)

const (
	// EarthRadiusMeters is the mean earth radius used for great-circle math.
	EarthRadiusMeters = 6371000.0

	// metersPerDegree approximates one degree of latitude at the equator.
	metersPerDegree = 111320.0
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SamplePointInDisc draws a point uniformly over the area of the disc with
// the given center and radius. The radial draw uses sqrt(u) so density is
// uniform per unit area rather than per unit radius, and the longitude
// offset is stretched by 1/cos(lat) to correct for meridian convergence.
//
// The caller must not pass polar centers (cos(lat) -> 0 blows up the
// longitude correction).
func SamplePointInDisc(rnd *rand.Rand, centerLat, centerLng, radiusMeters float64) Point {
	theta := rnd.Float64() * 2 * math.Pi
	r := radiusMeters * math.Sqrt(rnd.Float64())

	latOffset := (r * math.Cos(theta)) / metersPerDegree
	lngOffset := (r * math.Sin(theta)) / (metersPerDegree * math.Cos(centerLat*math.Pi/180))

	return Point{
		Lat: centerLat + latOffset,
		Lng: centerLng + lngOffset,
	}
}

// Distance returns the Haversine great-circle distance between two points
// in meters.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// WithinRange reports whether a and b are at most thresholdMeters apart.
// The threshold is inclusive.
func WithinRange(a, b Point, thresholdMeters float64) bool {
	return Distance(a, b) <= thresholdMeters
}
