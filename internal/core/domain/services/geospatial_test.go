package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/deviation"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(t *testing.T, lon, lat float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lon, lat)
	require.NoError(t, err)
	return p
}

func TestDistanceKm(t *testing.T) {
	t.Run("zero for identical points", func(t *testing.T) {
		p := point(t, 36.8219, -1.2921)
		assert.Zero(t, services.DistanceKm(p, p))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := point(t, 36.8219, -1.2921)
		b := point(t, 36.7820, -1.3032)
		assert.InDelta(t, services.DistanceKm(a, b), services.DistanceKm(b, a), 1e-12)
	})

	t.Run("matches a known city-scale distance", func(t *testing.T) {
		// One degree of latitude on the equator is about 111.2 km.
		a := point(t, 36.0, 0.0)
		b := point(t, 36.0, 1.0)
		assert.InDelta(t, 111.2, services.DistanceKm(a, b), 0.3)
	})
}

func TestIsWithinGeofence(t *testing.T) {
	destination := point(t, 36.8219, -1.2921)

	t.Run("at the destination", func(t *testing.T) {
		inside, distance := services.IsWithinGeofence(destination, destination, services.DefaultGeofenceRadiusKm)
		assert.True(t, inside)
		assert.Zero(t, distance)
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		// About 0.1 km north of the destination.
		onBoundary := point(t, 36.8219, -1.2921+0.1/111.1949)

		_, distance := services.IsWithinGeofence(onBoundary, destination, services.DefaultGeofenceRadiusKm)
		assert.InDelta(t, 0.1, distance, 0.0005)

		// A radius exactly equal to the measured distance is still inside.
		inside, _ := services.IsWithinGeofence(onBoundary, destination, distance)
		assert.True(t, inside)
	})

	t.Run("outside the radius", func(t *testing.T) {
		// Roughly 0.5 km away.
		outside := point(t, 36.8219, -1.2921+0.5/111.1949)

		inside, distance := services.IsWithinGeofence(outside, destination, services.DefaultGeofenceRadiusKm)

		assert.False(t, inside)
		assert.Greater(t, distance, services.DefaultGeofenceRadiusKm)
	})

	t.Run("non-positive radius falls back to the default", func(t *testing.T) {
		nearby := point(t, 36.8219, -1.2921+0.05/111.1949)

		inside, _ := services.IsWithinGeofence(nearby, destination, 0)

		assert.True(t, inside)
	})
}

func TestClassifyDeviation(t *testing.T) {
	cases := []struct {
		distanceKm float64
		want       deviation.Severity
	}{
		{0.0, deviation.SeverityNone},
		{0.24, deviation.SeverityNone},
		{0.25, deviation.SeverityNone},
		{0.26, deviation.SeverityMinor},
		{0.49, deviation.SeverityMinor},
		{0.5, deviation.SeverityMinor},
		{0.51, deviation.SeverityWarning},
		{0.99, deviation.SeverityWarning},
		{1.0, deviation.SeverityWarning},
		{1.01, deviation.SeverityCritical},
		{5.0, deviation.SeverityCritical},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, services.ClassifyDeviation(tc.distanceKm),
			"distance %.2f km", tc.distanceKm)
	}
}

func TestDistanceToCorridorKm(t *testing.T) {
	corridor := []kernel.GeoPoint{
		point(t, 36.80, -1.29),
		point(t, 36.82, -1.29),
		point(t, 36.84, -1.29),
	}

	t.Run("on a corridor vertex", func(t *testing.T) {
		assert.InDelta(t, 0, services.DistanceToCorridorKm(corridor[1], corridor), 1e-9)
	})

	t.Run("on a segment between vertices", func(t *testing.T) {
		onSegment := point(t, 36.81, -1.29)
		assert.InDelta(t, 0, services.DistanceToCorridorKm(onSegment, corridor), 1e-9)
	})

	t.Run("off the corridor", func(t *testing.T) {
		// 0.01 degrees of latitude north of the middle segment, about 1.1 km.
		off := point(t, 36.81, -1.28)
		assert.InDelta(t, 1.11, services.DistanceToCorridorKm(off, corridor), 0.02)
	})

	t.Run("beyond the corridor end measures to the endpoint", func(t *testing.T) {
		past := point(t, 36.86, -1.29)
		want := services.DistanceKm(past, corridor[2])
		assert.InDelta(t, want, services.DistanceToCorridorKm(past, corridor), 0.05)
	})

	t.Run("single point corridor", func(t *testing.T) {
		off := point(t, 36.81, -1.29)
		want := services.DistanceKm(off, corridor[0])
		assert.InDelta(t, want, services.DistanceToCorridorKm(off, corridor[:1]), 1e-9)
	})

	t.Run("outside a sharp turn measures to the corner vertex", func(t *testing.T) {
		// At latitude 60 a degree of longitude spans about 55 km, so the flat
		// projection of the segments reads ~1.57 km here while the
		// great-circle distance to the corner is ~1.24 km.
		turn := []kernel.GeoPoint{
			point(t, 30.00, 60.10),
			point(t, 30.00, 60.00),
			point(t, 30.10, 60.00),
		}
		outside := point(t, 29.99, 59.99)

		want := services.DistanceKm(outside, turn[1])
		got := services.DistanceToCorridorKm(outside, turn)

		assert.InDelta(t, want, got, 1e-9)
		assert.Less(t, got, 1.5)
	})
}
