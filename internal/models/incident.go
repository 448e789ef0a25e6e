package models

import (
	"time"

	"github.com/google/uuid"
)

// Incident is a reported urban event. TrueLatitude/TrueLongitude hold the
// exact reporter coordinate and are never exposed to non-privileged
// consumers; Latitude/Longitude hold the privacy-transformed public point
// computed once at creation.
type Incident struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	Type          IncidentType   `json:"type"`
	Severity      Severity       `json:"severity"`
	Status        IncidentStatus `json:"status"`
	Description   string         `json:"description,omitempty"`
	PhotoURL      string         `json:"photo_url,omitempty"`
	TrueLatitude  float64        `json:"-"`
	TrueLongitude float64        `json:"-"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	CreatedAt     time.Time      `json:"created_at"`
	ExpiresAt     *time.Time     `json:"expires_at,omitempty"`
}

// IncidentStats carries the vote-derived fields attached to an incident when
// it is read back: total confirmations/refutations and the viewing user's
// own vote, if any.
type IncidentStats struct {
	Confirmations int       `json:"confirmations"`
	Refutations   int       `json:"refutations"`
	UserVote      *VoteType `json:"user_vote,omitempty"`
}

// IncidentWithStats is the read model for listings and single-incident views.
type IncidentWithStats struct {
	Incident
	IncidentStats
}

// IncidentQuery describes a nearby-incident listing request.
type IncidentQuery struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	Status       IncidentStatus
	Type         IncidentType
	Offset       int
	Limit        int
}
