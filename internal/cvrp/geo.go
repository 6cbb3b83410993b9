package cvrp

import (
	"math"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// earthRadiusKM and averageSpeedKMH are compile-time constants of the
// routing engine. They are deliberately not configuration.
const (
	earthRadiusKM  = 6371.0
	averageSpeedKMH = 40.0
	distancePrecision = 0.001
)

// haversineDistance returns the great-circle distance in km between two
// WGS-84 coordinates, rounded to the nearest distancePrecision. Non-finite
// inputs yield 0 rather than NaN/Inf propagating into a route's metrics.
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	if !validCoordinate(lat1, lon1) || !validCoordinate(lat2, lon2) {
		return 0
	}

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	d := earthRadiusKM * c

	return roundTo(d, distancePrecision)
}

// validCoordinate reports whether a lat/lon pair is finite. It does not
// check range (±90/±180), and neither does ValidateInstance (validate.go),
// which rejects only non-finite coordinates.
func validCoordinate(lat, lon float64) bool {
	return !math.IsNaN(lat) && !math.IsInf(lat, 0) &&
		!math.IsNaN(lon) && !math.IsInf(lon, 0)
}

// roundTo rounds v to the nearest multiple of step.
func roundTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// durationMinutes converts a distance in km to a duration in minutes at
// the CORE's fixed average speed, rounded to the nearest minute.
func durationMinutes(distanceKM float64) int {
	return int(math.Round(distanceKM / averageSpeedKMH * 60))
}

// polarAngle returns atan2(loc.lat - depot.lat, loc.lon - depot.lon), used
// by Sweep (§4.7) and the angular-continuity factor of Enhanced
// Clarke-Wright (§4.5).
func polarAngle(depot, loc models.Location) float64 {
	return math.Atan2(loc.Latitude-depot.Latitude, loc.Longitude-depot.Longitude)
}
