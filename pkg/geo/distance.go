// Package geo has the small amount of spherical geometry needed to turn OSM
// coordinates into integer edge weights and to measure snap distances.
package geo

import "math"

const (
	earthRadiusMeters = 6_371_000.0
	radPerDeg         = math.Pi / 180

	// MetersPerDegree is the arc length of one degree on a great circle.
	MetersPerDegree = radPerDeg * earthRadiusMeters
)

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat, Lng float64
}

// Valid reports whether p lies within the latitude/longitude ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180 &&
		!math.IsNaN(p.Lat) && !math.IsNaN(p.Lng)
}

// Haversine returns the great-circle distance in meters between two points.
func Haversine(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * radPerDeg
	dLng := (b.Lng - a.Lng) * radPerDeg
	sLat := math.Sin(dLat / 2)
	sLng := math.Sin(dLng / 2)

	h := sLat*sLat + math.Cos(a.Lat*radPerDeg)*math.Cos(b.Lat*radPerDeg)*sLng*sLng
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Equirectangular returns an approximate distance in meters. It is close to
// Haversine over a few kilometers and much cheaper; use it for snapping and
// comparisons, not for edge weights.
func Equirectangular(a, b Point) float64 {
	x := (b.Lng - a.Lng) * math.Cos((a.Lat+b.Lat)/2*radPerDeg)
	y := b.Lat - a.Lat
	return math.Sqrt(x*x+y*y) * MetersPerDegree
}

// WeightMillimeters converts a great-circle length to an integer edge weight.
// Lengths that round to zero become 1 so that no imported edge is free.
func WeightMillimeters(a, b Point) int64 {
	mm := int64(math.Round(Haversine(a, b) * 1000))
	if mm == 0 {
		mm = 1
	}
	return mm
}
