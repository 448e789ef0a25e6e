package service

import "errors"

// Sentinel errors for the trust engine. Handlers branch on these with
// errors.Is to map each cause to a stable HTTP status.
var (
	// ErrValidation marks malformed input rejected before any gate runs.
	ErrValidation = errors.New("validation failed")

	// ErrPermission marks insufficient reputation for a restricted incident type.
	ErrPermission = errors.New("permission denied")

	// ErrDuplicateIncident marks a submission that matches a recent nearby
	// report of the same type.
	ErrDuplicateIncident = errors.New("a similar incident was already reported nearby")

	// ErrAlreadyVoted marks a second vote by the same user on the same incident.
	ErrAlreadyVoted = errors.New("already voted")

	// ErrNotFound marks a missing incident or preference, or one not owned
	// by the caller.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited marks a submission rejected by the rate gate.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrDependency marks a failing collaborator (spatial query, storage
	// transaction, rate limiter). Never treated as "no duplicate" or
	// "vote succeeded".
	ErrDependency = errors.New("dependency unavailable")
)
