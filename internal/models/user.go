package models

import "github.com/google/uuid"

// User holds the reputation-relevant slice of a user record. Account data
// and authentication live outside this service.
type User struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Reputation int       `json:"reputation"`
	Role       string    `json:"role"`
}
