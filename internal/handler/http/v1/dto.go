package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateIncidentRequest is the incident submission DTO.
// @Description DTO for submitting an incident
type CreateIncidentRequest struct {
	Type        string  `json:"type" validate:"required,oneof=alagamento tiroteio assalto acidente incendio policia perigo lixo obras queda_arvore buraco deslizamento falta_luz falta_agua animal manifestacao outros"`
	Severity    string  `json:"severity" validate:"required,oneof=baixa media alta"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	PhotoURL    string  `json:"photo_url,omitempty" validate:"omitempty,max=500"`
	Latitude    float64 `json:"lat" validate:"latitude"`
	Longitude   float64 `json:"lon" validate:"longitude"`
}

// VoteRequest is the vote-casting DTO.
// @Description DTO for casting a vote on an incident
type VoteRequest struct {
	Vote string `json:"vote" validate:"required,oneof=confirm refute resolved"`
}

// CommentRequest is the comment-creation DTO.
// @Description DTO for adding a comment to an incident
type CommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// IncidentResponse is the incident read DTO with vote-derived fields.
// @Description DTO describing an incident with its vote counts
type IncidentResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Type          string     `json:"type"`
	Severity      string     `json:"severity"`
	Status        string     `json:"status"`
	Description   string     `json:"description,omitempty"`
	PhotoURL      string     `json:"photo_url,omitempty"`
	Latitude      float64    `json:"lat"`
	Longitude     float64    `json:"lon"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Confirmations int        `json:"confirmations"`
	Refutations   int        `json:"refutations"`
	UserVote      *string    `json:"user_vote,omitempty"`
}

// IncidentListResponse wraps a page of incidents with the total match count.
// @Description DTO for a paginated incident listing
type IncidentListResponse struct {
	Incidents []*IncidentResponse `json:"incidents"`
	Total     int                 `json:"total"`
}

// VoteResponse reports the state of the incident after a vote.
// @Description DTO for the result of a recorded vote
type VoteResponse struct {
	Detail        string `json:"detail"`
	Status        string `json:"status"`
	Confirmations int    `json:"confirmations"`
	Refutations   int    `json:"refutations"`
}

// CommentResponse is the comment read DTO.
// @Description DTO describing an incident comment
type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	IncidentID uuid.UUID `json:"incident_id"`
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateAlertPreferenceRequest is the alert preference creation DTO.
// @Description DTO for creating an alert preference
type CreateAlertPreferenceRequest struct {
	Mode             string   `json:"mode" validate:"required,oneof=radius neighborhood"`
	NeighborhoodName string   `json:"neighborhood_name,omitempty" validate:"omitempty,max=200"`
	CenterLatitude   *float64 `json:"center_lat,omitempty" validate:"omitempty,latitude"`
	CenterLongitude  *float64 `json:"center_lon,omitempty" validate:"omitempty,longitude"`
	RadiusKM         *float64 `json:"radius_km,omitempty" validate:"omitempty,gt=0.1,lte=50"`
	Types            []string `json:"types,omitempty" validate:"omitempty,dive,oneof=alagamento tiroteio assalto acidente incendio policia perigo lixo obras queda_arvore buraco deslizamento falta_luz falta_agua animal manifestacao outros"`
	MinSeverity      string   `json:"min_severity,omitempty" validate:"omitempty,oneof=baixa media alta"`
	Enabled          *bool    `json:"enabled,omitempty"`
}

// AlertPreferenceResponse is the alert preference read DTO.
// @Description DTO describing an alert preference
type AlertPreferenceResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Mode             string    `json:"mode"`
	NeighborhoodName string    `json:"neighborhood_name,omitempty"`
	CenterLatitude   *float64  `json:"center_lat,omitempty"`
	CenterLongitude  *float64  `json:"center_lon,omitempty"`
	RadiusKM         *float64  `json:"radius_km,omitempty"`
	Types            []string  `json:"types,omitempty"`
	MinSeverity      string    `json:"min_severity"`
	Enabled          bool      `json:"enabled"`
	CreatedAt        time.Time `json:"created_at"`
}

// AlertFeedItemResponse is one matched incident in the alert feed.
// @Description DTO describing an alert feed entry
type AlertFeedItemResponse struct {
	IncidentID  uuid.UUID `json:"incident_id"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description,omitempty"`
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lon"`
	DistanceKM  float64   `json:"distance_km"`
	CreatedAt   time.Time `json:"created_at"`
}
