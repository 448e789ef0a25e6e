package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertPreference is a user's subscription to incident notifications.
// Radius mode carries a center coordinate and radius; neighborhood mode
// carries only a name (its geometric matching lives outside this engine).
type AlertPreference struct {
	ID               uuid.UUID      `json:"id"`
	UserID           uuid.UUID      `json:"user_id"`
	Mode             AlertMode      `json:"mode"`
	NeighborhoodName string         `json:"neighborhood_name,omitempty"`
	CenterLatitude   *float64       `json:"center_lat,omitempty"`
	CenterLongitude  *float64       `json:"center_lon,omitempty"`
	RadiusKM         *float64       `json:"radius_km,omitempty"`
	Types            []IncidentType `json:"types,omitempty"`
	MinSeverity      Severity       `json:"min_severity"`
	Enabled          bool           `json:"enabled"`
	CreatedAt        time.Time      `json:"created_at"`
}

// AlertFeedItem is one matched incident in a user's alert feed, with the
// distance from the preference center to the incident's public point.
type AlertFeedItem struct {
	IncidentID uuid.UUID    `json:"incident_id"`
	Type       IncidentType `json:"type"`
	Severity   Severity     `json:"severity"`
	Description string      `json:"description,omitempty"`
	Latitude   float64      `json:"lat"`
	Longitude  float64      `json:"lon"`
	DistanceKM float64      `json:"distance_km"`
	CreatedAt  time.Time    `json:"created_at"`
}

// AlertCandidate is a row returned by the open-incidents radius query before
// severity filtering and deduplication.
type AlertCandidate struct {
	Incident       Incident
	DistanceMeters float64
}
