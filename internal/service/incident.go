package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/config"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/geoprivacy"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/ratelimit"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/webhook"
	"github.com/sirupsen/logrus"
)

// StatusDecision computes the incident status that must hold after a vote,
// from the total confirm/refute counts. It is pure; the repository runs it
// inside the vote transaction so the status update commits with the vote.
type StatusDecision func(confirms, refutes int) models.IncidentStatus

// VoteOutcome is what the vote unit of work reports back.
type VoteOutcome struct {
	Confirmations int
	Refutations   int
	Status        models.IncidentStatus
	StatusChanged bool
}

// IncidentRepository is the storage contract for incidents, votes and
// comments.
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	GetStats(ctx context.Context, incidentID, viewerID uuid.UUID) (*models.IncidentStats, error)
	ListNearby(ctx context.Context, q models.IncidentQuery, viewerID uuid.UUID) ([]*models.IncidentWithStats, int, error)
	CountNearbySince(ctx context.Context, typ models.IncidentType, lat, lon, radiusM float64, since time.Time) (int, error)
	RecordVote(ctx context.Context, vote *models.IncidentVote, authorID uuid.UUID, reputationDelta int, decide StatusDecision) (*VoteOutcome, error)
	ExpireOpenIncidents(ctx context.Context, now time.Time) (int64, error)
	CreateComment(ctx context.Context, comment *models.IncidentComment) error
	ListComments(ctx context.Context, incidentID uuid.UUID) ([]*models.IncidentComment, error)
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// UserRepository looks up the reputation-relevant user record. GetByID
// returns (nil, nil) when the user does not exist.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SubmitIncidentInput is the ingestion request after transport decoding.
type SubmitIncidentInput struct {
	UserID      uuid.UUID
	Type        models.IncidentType
	Severity    models.Severity
	Description string
	PhotoURL    string
	Latitude    float64
	Longitude   float64
}

// IncidentService is the business-logic contract for the incident trust
// engine.
type IncidentService interface {
	SubmitIncident(ctx context.Context, in SubmitIncidentInput) (*models.IncidentWithStats, error)
	GetIncident(ctx context.Context, id, viewerID uuid.UUID) (*models.IncidentWithStats, error)
	ListIncidents(ctx context.Context, q models.IncidentQuery, viewerID uuid.UUID) ([]*models.IncidentWithStats, int, error)
	CastVote(ctx context.Context, incidentID, voterID uuid.UUID, vote models.VoteType) (*VoteOutcome, error)
	AddComment(ctx context.Context, incidentID, userID uuid.UUID, text string) (*models.IncidentComment, error)
	ListComments(ctx context.Context, incidentID uuid.UUID) ([]*models.IncidentComment, error)
	ExpireOldIncidents(ctx context.Context) (int64, error)
}

type incidentService struct {
	repo        IncidentRepository
	users       UserRepository
	limiter     ratelimit.Limiter
	transformer *geoprivacy.Transformer
	publisher   webhook.Publisher
	logger      *logrus.Logger
	cfg         *config.Config
	now         func() time.Time
}

func NewIncidentService(
	repo IncidentRepository,
	users UserRepository,
	limiter ratelimit.Limiter,
	transformer *geoprivacy.Transformer,
	publisher webhook.Publisher,
	logger *logrus.Logger,
	cfg *config.Config,
) IncidentService {
	return &incidentService{
		repo:        repo,
		users:       users,
		limiter:     limiter,
		transformer: transformer,
		publisher:   publisher,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
	}
}

// SubmitIncident runs the ingestion pipeline: rate gate, reputation gate
// for restricted types, duplicate gate, privacy transform, persist. Every
// gate is hard; the first failure aborts with no partial write.
func (s *incidentService) SubmitIncident(ctx context.Context, in SubmitIncidentInput) (*models.IncidentWithStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "SubmitIncident",
		"user_id": in.UserID,
		"type":    in.Type,
	})
	log.Info("Attempting to submit a new incident")

	if err := validateSubmitInput(in); err != nil {
		log.WithError(err).Warn("Rejected invalid incident submission")
		return nil, err
	}

	// 1. Rate gate
	rateKey := fmt.Sprintf("create_incident:u:%s", in.UserID)
	allowed, err := s.limiter.Allow(ctx, rateKey, s.cfg.IncidentRateLimitPerHour, time.Hour)
	if err != nil {
		log.WithError(err).Error("Rate limiter unavailable")
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrDependency, err)
	}
	if !allowed {
		log.Warn("Incident submission rate limited")
		return nil, ErrRateLimited
	}

	// 2. Reputation gate for restricted types
	if in.Type.Restricted() {
		user, err := s.users.GetByID(ctx, in.UserID)
		if err != nil {
			log.WithError(err).Error("Failed to look up author reputation")
			return nil, fmt.Errorf("%w: author lookup: %v", ErrDependency, err)
		}
		reputation := 0
		if user != nil {
			reputation = user.Reputation
		}
		if reputation < s.cfg.MinReputationForRestrictedType {
			log.WithField("reputation", reputation).Warn("Reputation too low for restricted incident type")
			return nil, fmt.Errorf("%w: minimum reputation of %d required for this incident type",
				ErrPermission, s.cfg.MinReputationForRestrictedType)
		}
	}

	// 3. Duplicate gate: same type, near the candidate point, inside the
	// trailing window. A failing spatial query is a hard failure, never
	// treated as "no duplicate".
	since := s.now().Add(-s.cfg.IncidentDuplicateWindow)
	count, err := s.repo.CountNearbySince(ctx, in.Type, in.Latitude, in.Longitude, s.cfg.IncidentDuplicateRadiusM, since)
	if err != nil {
		log.WithError(err).Error("Duplicate detection query failed")
		return nil, fmt.Errorf("%w: duplicate detection: %v", ErrDependency, err)
	}
	if count > 0 {
		log.WithField("nearby_count", count).Info("Duplicate incident rejected")
		return nil, fmt.Errorf("%w: try confirming the existing one", ErrDuplicateIncident)
	}

	// 4. Privacy transform: snap for sensitive types, fuzz otherwise
	pubLat, pubLon := s.transformer.PublicPoint(in.Type, in.Latitude, in.Longitude)

	// 5. Persist
	expiresAt := s.now().Add(s.cfg.IncidentTTL)
	incident := &models.Incident{
		UserID:        in.UserID,
		Type:          in.Type,
		Severity:      in.Severity,
		Status:        models.StatusOpen,
		Description:   in.Description,
		PhotoURL:      in.PhotoURL,
		TrueLatitude:  in.Latitude,
		TrueLongitude: in.Longitude,
		Latitude:      pubLat,
		Longitude:     pubLon,
		ExpiresAt:     &expiresAt,
	}
	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("%w: could not create incident: %v", ErrDependency, err)
	}

	s.publishEvent(ctx, log, webhook.EventIncidentCreated, incident)

	log.WithField("incident_id", incident.ID).Info("Incident submitted successfully")
	return &models.IncidentWithStats{Incident: *incident}, nil
}

// GetIncident returns one incident with its vote-derived fields for the
// viewing user. The base incident goes through the Redis cache; the stats
// are always read fresh because they are viewer-dependent.
func (s *incidentService) GetIncident(ctx context.Context, id, viewerID uuid.UUID) (*models.IncidentWithStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	incident, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Incident cache lookup failed, falling back to DB")
	}
	if incident == nil {
		incident, err = s.repo.GetByID(ctx, id)
		if err != nil {
			log.WithError(err).Warn("Failed to get incident from repository")
			return nil, fmt.Errorf("could not get incident: %w", err)
		}
		if cacheErr := s.repo.SetIncidentCache(ctx, incident); cacheErr != nil {
			log.WithError(cacheErr).Warn("Failed to cache incident")
		}
	}

	stats, err := s.repo.GetStats(ctx, id, viewerID)
	if err != nil {
		log.WithError(err).Error("Failed to get vote stats")
		return nil, fmt.Errorf("%w: vote stats: %v", ErrDependency, err)
	}

	return &models.IncidentWithStats{Incident: *incident, IncidentStats: *stats}, nil
}

// ListIncidents returns incidents near a point, most recent first, with
// vote counts and the viewer's own vote attached.
func (s *incidentService) ListIncidents(ctx context.Context, q models.IncidentQuery, viewerID uuid.UUID) ([]*models.IncidentWithStats, int, error) {
	if q.Limit < 1 || q.Limit > 200 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.RadiusMeters < 100 || q.RadiusMeters > 50000 {
		q.RadiusMeters = 1000
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
		"limit":   q.Limit,
	})

	incidents, total, err := s.repo.ListNearby(ctx, q, viewerID)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, 0, fmt.Errorf("%w: could not list incidents: %v", ErrDependency, err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, total, nil
}

// AddComment appends a free-text comment to an existing incident.
func (s *incidentService) AddComment(ctx context.Context, incidentID, userID uuid.UUID, text string) (*models.IncidentComment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "AddComment",
		"incident_id": incidentID,
	})

	if text == "" || len(text) > 1000 {
		return nil, fmt.Errorf("%w: comment text must be 1-1000 characters", ErrValidation)
	}

	if _, err := s.repo.GetByID(ctx, incidentID); err != nil {
		log.WithError(err).Warn("Attempted to comment on a missing incident")
		return nil, fmt.Errorf("incident for comment: %w", err)
	}

	comment := &models.IncidentComment{
		IncidentID: incidentID,
		UserID:     userID,
		Text:       text,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		log.WithError(err).Error("Failed to create comment in repository")
		return nil, fmt.Errorf("%w: could not create comment: %v", ErrDependency, err)
	}

	log.WithField("comment_id", comment.ID).Info("Comment added")
	return comment, nil
}

// ListComments returns the incident's comments, oldest first.
func (s *incidentService) ListComments(ctx context.Context, incidentID uuid.UUID) ([]*models.IncidentComment, error) {
	comments, err := s.repo.ListComments(ctx, incidentID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list comments from repository")
		return nil, fmt.Errorf("%w: could not list comments: %v", ErrDependency, err)
	}
	return comments, nil
}

// ExpireOldIncidents resolves open incidents past their expires_at. The
// schedule that fires it lives in main; the rule lives here.
func (s *incidentService) ExpireOldIncidents(ctx context.Context) (int64, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ExpireOldIncidents",
	})

	expired, err := s.repo.ExpireOpenIncidents(ctx, s.now())
	if err != nil {
		log.WithError(err).Error("Failed to expire incidents")
		return 0, fmt.Errorf("%w: could not expire incidents: %v", ErrDependency, err)
	}

	if expired > 0 {
		log.WithField("expired", expired).Info("Expired stale incidents")
	}
	return expired, nil
}

// publishEvent hands an incident event to the notification boundary.
// Delivery is best-effort and never fails the calling pipeline.
func (s *incidentService) publishEvent(ctx context.Context, log *logrus.Entry, event string, incident *models.Incident) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, webhook.IncidentEvent{
		Event:      event,
		IncidentID: incident.ID,
		Type:       incident.Type,
		Severity:   incident.Severity,
		Status:     incident.Status,
		Latitude:   incident.Latitude,
		Longitude:  incident.Longitude,
		Timestamp:  s.now(),
	})
	if err != nil {
		log.WithError(err).Warn("Failed to publish incident event")
	}
}

func validateSubmitInput(in SubmitIncidentInput) error {
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown incident type %q", ErrValidation, in.Type)
	}
	if !in.Severity.Valid() {
		return fmt.Errorf("%w: unknown severity %q", ErrValidation, in.Severity)
	}
	if in.Latitude < -90 || in.Latitude > 90 || in.Longitude < -180 || in.Longitude > 180 {
		return fmt.Errorf("%w: coordinate out of range", ErrValidation)
	}
	if len(in.Description) > 2000 {
		return fmt.Errorf("%w: description too long", ErrValidation)
	}
	return nil
}
