package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	eventQueueKey = "incident_events"
)

// Event names published by the trust engine.
const (
	EventIncidentCreated       = "incident.created"
	EventIncidentStatusChanged = "incident.status_changed"
)

// IncidentEvent is the payload handed to the notification boundary. It
// carries only the public coordinate of the incident.
type IncidentEvent struct {
	Event      string                `json:"event"`
	IncidentID uuid.UUID             `json:"incident_id"`
	Type       models.IncidentType   `json:"type"`
	Severity   models.Severity       `json:"severity"`
	Status     models.IncidentStatus `json:"status"`
	Latitude   float64               `json:"latitude"`
	Longitude  float64               `json:"longitude"`
	Timestamp  time.Time             `json:"timestamp"`
}

// Publisher enqueues incident events for delivery outside the engine.
type Publisher interface {
	Publish(ctx context.Context, event IncidentEvent) error
}

// RedisPublisher implements Publisher on a Redis list used as a queue.
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher creates a new RedisPublisher.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish pushes the event onto the Redis queue.
func (p *RedisPublisher) Publish(ctx context.Context, event IncidentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal incident event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, eventQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish incident event to Redis: %w", err)
	}
	return nil
}
