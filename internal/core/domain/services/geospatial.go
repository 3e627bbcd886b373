package services

import (
	"math"

	"dispatch/internal/core/domain/model/deviation"
	"dispatch/internal/core/domain/model/kernel"
)

const (
	// earthRadiusKm is the mean Earth radius used for great-circle distances.
	earthRadiusKm = 6371.0

	// DefaultGeofenceRadiusKm is the arrival radius applied when a stop has no
	// per-stop radius configured.
	DefaultGeofenceRadiusKm = 0.1

	// kmPerDegree approximates one degree of arc as kilometers for the
	// corridor distance. Good enough at city scale; the corridor check is a
	// monitoring heuristic, not a navigation computation.
	kmPerDegree = 111.0

	// Deviation grading thresholds, in kilometers from the corridor.
	deviationToleranceKm = 0.25
	deviationMinorKm     = 0.5
	deviationWarningKm   = 1.0
)

// DistanceKm returns the great-circle distance between two points in
// kilometers, using the haversine formula.
func DistanceKm(a, b kernel.GeoPoint) float64 {
	latA := a.Lat() * math.Pi / 180
	latB := b.Lat() * math.Pi / 180
	dLat := (b.Lat() - a.Lat()) * math.Pi / 180
	dLon := (b.Lon() - a.Lon()) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// IsWithinGeofence reports whether position lies within radiusKm of
// destination, and returns the measured distance. The boundary is inclusive:
// a courier exactly at the radius is inside.
func IsWithinGeofence(position, destination kernel.GeoPoint, radiusKm float64) (bool, float64) {
	if radiusKm <= 0 {
		radiusKm = DefaultGeofenceRadiusKm
	}

	distance := DistanceKm(position, destination)
	return distance <= radiusKm, distance
}

// DistanceToCorridorKm returns the shortest distance from position to the
// polyline through the corridor points, in kilometers. The minimum is taken
// over the projected segment distances and the great-circle distances to the
// vertices themselves, so a position near a corner is measured against the
// corner rather than the flat projection of its segments. A single-point
// corridor degenerates to the distance to that point.
func DistanceToCorridorKm(position kernel.GeoPoint, corridor []kernel.GeoPoint) float64 {
	if len(corridor) == 0 {
		return 0
	}

	best := math.MaxFloat64
	for _, vertex := range corridor {
		if d := DistanceKm(position, vertex); d < best {
			best = d
		}
	}
	for i := 0; i < len(corridor)-1; i++ {
		if d := distanceToSegmentKm(position, corridor[i], corridor[i+1]); d < best {
			best = d
		}
	}
	return best
}

// distanceToSegmentKm measures the distance from p to the segment a-b by
// projecting in a flat degree space and scaling by kmPerDegree.
func distanceToSegmentKm(p, a, b kernel.GeoPoint) float64 {
	px, py := p.Lon(), p.Lat()
	ax, ay := a.Lon(), a.Lat()
	bx, by := b.Lon(), b.Lat()

	dx, dy := bx-ax, by-ay
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return DistanceKm(p, a)
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))

	nx, ny := ax+t*dx, ay+t*dy
	ddx, ddy := px-nx, py-ny
	return math.Sqrt(ddx*ddx+ddy*ddy) * kmPerDegree
}

// ClassifyDeviation grades a corridor distance into a severity tier. Each
// tier boundary belongs to the lower tier: exactly 0.25 km is still within
// tolerance, exactly 0.5 km is still minor, exactly 1.0 km is still warning.
func ClassifyDeviation(distanceKm float64) deviation.Severity {
	switch {
	case distanceKm <= deviationToleranceKm:
		return deviation.SeverityNone
	case distanceKm <= deviationMinorKm:
		return deviation.SeverityMinor
	case distanceKm <= deviationWarningKm:
		return deviation.SeverityWarning
	default:
		return deviation.SeverityCritical
	}
}
