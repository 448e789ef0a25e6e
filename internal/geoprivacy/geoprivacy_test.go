package geoprivacy

import (
	"math/rand"
	"testing"

	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransformer(seed int64) *Transformer {
	return New(rand.NewSource(seed), DefaultMaxFuzzMeters, DefaultGridSizeMeters)
}

func TestFuzz_WithinMaxOffset(t *testing.T) {
	tr := newTestTransformer(1)

	points := [][2]float64{
		{-23.5505, -46.6333}, // São Paulo
		{0.0, 0.0},
		{59.93, 30.33},
		{-33.87, 151.21},
	}

	for _, p := range points {
		for i := 0; i < 200; i++ {
			lat, lon := tr.Fuzz(p[0], p[1])
			d := HaversineMeters(p[0], p[1], lat, lon)
			require.LessOrEqualf(t, d, DefaultMaxFuzzMeters+1.0,
				"fuzzed point drifted %fm from (%f,%f)", d, p[0], p[1])
		}
	}
}

func TestFuzz_IndependentlyRandomized(t *testing.T) {
	tr := newTestTransformer(42)

	lat1, lon1 := tr.Fuzz(-23.5505, -46.6333)
	lat2, lon2 := tr.Fuzz(-23.5505, -46.6333)

	// Two draws landing on the same point is vanishingly unlikely.
	assert.False(t, lat1 == lat2 && lon1 == lon2)
}

func TestSnap_Deterministic(t *testing.T) {
	lat1, lon1 := Snap(-23.5505, -46.6333, DefaultGridSizeMeters)
	lat2, lon2 := Snap(-23.5505, -46.6333, DefaultGridSizeMeters)

	assert.Equal(t, lat1, lat2)
	assert.Equal(t, lon1, lon2)
}

func TestSnap_Idempotent(t *testing.T) {
	lat, lon := Snap(-23.5505, -46.6333, DefaultGridSizeMeters)
	lat2, lon2 := Snap(lat, lon, DefaultGridSizeMeters)

	assert.InDelta(t, lat, lat2, 1e-9)
	assert.InDelta(t, lon, lon2, 1e-9)
}

func TestSnap_ClustersNearbyPoints(t *testing.T) {
	// Two reports ~30m apart inside the same ~200m cell share one pin.
	lat1, lon1 := Snap(-23.55050, -46.63330, DefaultGridSizeMeters)
	lat2, lon2 := Snap(-23.55060, -46.63355, DefaultGridSizeMeters)

	assert.InDelta(t, lat1, lat2, 1e-9)
	assert.InDelta(t, lon1, lon2, 1e-9)
}

func TestPublicPoint_SensitiveTypeSnaps(t *testing.T) {
	tr := newTestTransformer(7)

	lat, lon := tr.PublicPoint(models.TypeTiroteio, 23.55, -46.63)

	// Sensitive types must be snapped, so the result matches a direct snap
	// and differs from the true point.
	wantLat, wantLon := Snap(23.55, -46.63, DefaultGridSizeMeters)
	assert.Equal(t, wantLat, lat)
	assert.Equal(t, wantLon, lon)
	assert.False(t, lat == 23.55 && lon == -46.63)
}

func TestPublicPoint_OrdinaryTypeFuzzes(t *testing.T) {
	tr := newTestTransformer(7)

	lat, lon := tr.PublicPoint(models.TypeAlagamento, -23.5505, -46.6333)
	d := HaversineMeters(-23.5505, -46.6333, lat, lon)

	assert.LessOrEqual(t, d, DefaultMaxFuzzMeters+1.0)
}
