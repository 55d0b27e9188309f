// Package geo provides the pure geospatial math for the expedition trail:
// great-circle distance between tracker pings and the cumulative
// distance/elevation profile rendered under the map.
package geo

import (
	"math"

	"github.com/expeditiontrail/backend/internal/domain"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

const degToRad = math.Pi / 180

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Distance returns the haversine great-circle distance between a and b in
// kilometers:
//
//	d = 2R·asin(sqrt(hav))
//	hav = (1-cos(Δlat))/2 + cos(lat_a)·cos(lat_b)·(1-cos(Δlon))/2
//
// It is symmetric up to floating-point tolerance and zero for identical
// coordinates.
func Distance(a, b Coordinate) float64 {
	hav := (1-math.Cos((b.Latitude-a.Latitude)*degToRad))/2 +
		math.Cos(a.Latitude*degToRad)*math.Cos(b.Latitude*degToRad)*
			(1-math.Cos((b.Longitude-a.Longitude)*degToRad))/2

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(hav))
}

// ProfilePoint is one entry of a height profile: the cumulative trail
// distance from the first point, paired with that point's elevation.
type ProfilePoint struct {
	DistanceKm float64 `json:"distanceKm"`
	Elevation  float64 `json:"elevation"`
}

// HeightProfile derives a cumulative distance/elevation profile from a
// time-ordered point sequence. The result has one entry per input point:
// entry 0 sits at distance 0, and each subsequent entry adds the great-circle
// distance from its predecessor. Points without a recorded elevation
// contribute 0.
//
// The input must already be ordered ascending by timestamp; the function
// does not sort. It is a pure function of its input and recomputes the full
// profile on every call.
func HeightProfile(points []domain.LocationPoint) []ProfilePoint {
	profile := make([]ProfilePoint, len(points))
	var total float64
	for i, p := range points {
		if i > 0 {
			total += Distance(pointCoordinate(points[i-1]), pointCoordinate(p))
		}
		profile[i] = ProfilePoint{DistanceKm: total, Elevation: pointElevation(p)}
	}
	return profile
}

func pointCoordinate(p domain.LocationPoint) Coordinate {
	return Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}

func pointElevation(p domain.LocationPoint) float64 {
	if p.Elevation == nil {
		return 0
	}
	return *p.Elevation
}
