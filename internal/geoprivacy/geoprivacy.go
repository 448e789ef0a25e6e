package geoprivacy

import (
	"math"
	"math/rand"
	"sync"

	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
)

// metersPerDegree is the approximate length of one degree of latitude.
// Longitude degrees are scaled by cos(latitude).
const metersPerDegree = 111_000.0

const (
	DefaultMaxFuzzMeters  = 150.0
	DefaultGridSizeMeters = 200.0
)

// Transformer maps a true reporter coordinate to the publicly visible one.
// The random source is injected so fuzz behaviour is testable.
type Transformer struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	maxFuzzM float64
	gridM    float64
}

// New builds a Transformer with the given random source and displacement
// parameters. Non-positive parameters fall back to the defaults.
func New(src rand.Source, maxFuzzM, gridM float64) *Transformer {
	if maxFuzzM <= 0 {
		maxFuzzM = DefaultMaxFuzzMeters
	}
	if gridM <= 0 {
		gridM = DefaultGridSizeMeters
	}
	return &Transformer{
		rnd:      rand.New(src),
		maxFuzzM: maxFuzzM,
		gridM:    gridM,
	}
}

// PublicPoint applies the privacy policy for the incident type: sensitive
// types are snapped to the grid, everything else gets a random fuzz. The
// policy choice is fixed per type and not caller-overridable.
func (t *Transformer) PublicPoint(typ models.IncidentType, lat, lon float64) (float64, float64) {
	if typ.Sensitive() {
		return Snap(lat, lon, t.gridM)
	}
	return t.Fuzz(lat, lon)
}

// Fuzz displaces the coordinate by a uniformly random bearing and a
// uniformly random distance in [0, maxFuzzM] meters. Every call is
// independently randomized.
func (t *Transformer) Fuzz(lat, lon float64) (float64, float64) {
	t.mu.Lock()
	angle := t.rnd.Float64() * 2 * math.Pi
	distance := t.rnd.Float64() * t.maxFuzzM
	t.mu.Unlock()

	latOffset := (distance * math.Cos(angle)) / metersPerDegree
	lonOffset := (distance * math.Sin(angle)) / (metersPerDegree * math.Cos(lat*math.Pi/180))

	return lat + latOffset, lon + lonOffset
}

// Snap rounds the coordinate to the nearest line of a grid approximately
// gridM meters wide. Deterministic: identical inputs always produce the
// same public point, so reports from one micro-area share one pin.
func Snap(lat, lon, gridM float64) (float64, float64) {
	gridLat := gridM / metersPerDegree
	gridLon := gridM / (metersPerDegree * math.Cos(lat*math.Pi/180))

	snappedLat := math.Round(lat/gridLat) * gridLat
	snappedLon := math.Round(lon/gridLon) * gridLon

	return snappedLat, snappedLon
}

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusM = 6_371_000.0

	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
