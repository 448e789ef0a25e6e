package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentVote is one user's stance on one incident. The pair
// (IncidentID, UserID) is unique at the storage layer; votes are never
// updated or retracted.
type IncidentVote struct {
	ID         uuid.UUID `json:"id"`
	IncidentID uuid.UUID `json:"incident_id"`
	UserID     uuid.UUID `json:"user_id"`
	Vote       VoteType  `json:"vote"`
	CreatedAt  time.Time `json:"created_at"`
}

// IncidentComment is an append-only free-text annotation on an incident.
type IncidentComment struct {
	ID         uuid.UUID `json:"id"`
	IncidentID uuid.UUID `json:"incident_id"`
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
