package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/meals-service/internal/domain"
)

func TestDistanceKm(t *testing.T) {
	paris := domain.Coordinates{Lat: 48.8566, Lng: 2.3522}
	london := domain.Coordinates{Lat: 51.5074, Lng: -0.1278}

	distance := DistanceKm(paris, london)
	assert.InDelta(t, 344, distance, 5)

	// symmetric
	assert.InDelta(t, distance, DistanceKm(london, paris), 1e-9)
}

func TestDistanceKmSamePoint(t *testing.T) {
	p := domain.Coordinates{Lat: 45.5017, Lng: -73.5673}
	assert.InDelta(t, 0, DistanceKm(p, p), 1e-9)
}
