package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/config"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/sirupsen/logrus"
)

// AlertRepository is the storage contract for alert preferences and the
// open-incident radius query feeding the matching engine.
type AlertRepository interface {
	CreatePreference(ctx context.Context, pref *models.AlertPreference) error
	ListPreferences(ctx context.Context, userID uuid.UUID) ([]*models.AlertPreference, error)
	DeletePreference(ctx context.Context, id, userID uuid.UUID) error
	FindOpenNearby(ctx context.Context, lat, lon, radiusM float64, types []models.IncidentType, limit int) ([]*models.AlertCandidate, error)
}

// AlertService manages alert preferences and produces the matched feed.
type AlertService interface {
	CreatePreference(ctx context.Context, pref *models.AlertPreference) (*models.AlertPreference, error)
	ListPreferences(ctx context.Context, userID uuid.UUID) ([]*models.AlertPreference, error)
	DeletePreference(ctx context.Context, id, userID uuid.UUID) error
	Feed(ctx context.Context, userID uuid.UUID) ([]*models.AlertFeedItem, error)
}

type alertService struct {
	repo   AlertRepository
	logger *logrus.Logger
	cfg    *config.Config
}

func NewAlertService(repo AlertRepository, logger *logrus.Logger, cfg *config.Config) AlertService {
	return &alertService{
		repo:   repo,
		logger: logger,
		cfg:    cfg,
	}
}

// CreatePreference validates and stores a new alert preference for its owner.
func (s *alertService) CreatePreference(ctx context.Context, pref *models.AlertPreference) (*models.AlertPreference, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "CreatePreference",
		"user_id": pref.UserID,
		"mode":    pref.Mode,
	})

	if err := validatePreference(pref); err != nil {
		log.WithError(err).Warn("Rejected invalid alert preference")
		return nil, err
	}

	if err := s.repo.CreatePreference(ctx, pref); err != nil {
		log.WithError(err).Error("Failed to create alert preference in repository")
		return nil, fmt.Errorf("%w: could not create alert preference: %v", ErrDependency, err)
	}

	log.WithField("preference_id", pref.ID).Info("Alert preference created")
	return pref, nil
}

// ListPreferences returns all of the user's preferences, newest first.
func (s *alertService) ListPreferences(ctx context.Context, userID uuid.UUID) ([]*models.AlertPreference, error) {
	prefs, err := s.repo.ListPreferences(ctx, userID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list alert preferences from repository")
		return nil, fmt.Errorf("%w: could not list alert preferences: %v", ErrDependency, err)
	}
	return prefs, nil
}

// DeletePreference removes one of the user's own preferences.
func (s *alertService) DeletePreference(ctx context.Context, id, userID uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "alert",
		"method":        "DeletePreference",
		"preference_id": id,
	})

	if err := s.repo.DeletePreference(ctx, id, userID); err != nil {
		log.WithError(err).Warn("Failed to delete alert preference")
		return fmt.Errorf("could not delete alert preference: %w", err)
	}

	log.Info("Alert preference deleted")
	return nil
}

// Feed runs the matching engine over the user's enabled radius-mode
// preferences: per preference, open incidents within radius_km, newest
// first, capped; then severity-filtered, deduplicated across preferences,
// and globally re-sorted by creation time descending.
func (s *alertService) Feed(ctx context.Context, userID uuid.UUID) ([]*models.AlertFeedItem, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "Feed",
		"user_id": userID,
	})

	prefs, err := s.repo.ListPreferences(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list alert preferences for feed")
		return nil, fmt.Errorf("%w: could not load alert preferences: %v", ErrDependency, err)
	}

	items := make([]*models.AlertFeedItem, 0)
	seen := make(map[uuid.UUID]struct{})

	for _, pref := range prefs {
		if !pref.Enabled || pref.Mode != models.AlertModeRadius {
			continue
		}
		if pref.CenterLatitude == nil || pref.CenterLongitude == nil || pref.RadiusKM == nil {
			continue
		}

		radiusM := *pref.RadiusKM * 1000
		candidates, err := s.repo.FindOpenNearby(ctx, *pref.CenterLatitude, *pref.CenterLongitude,
			radiusM, pref.Types, s.cfg.AlertFeedLimitPerPreference)
		if err != nil {
			log.WithError(err).Error("Alert feed radius query failed")
			return nil, fmt.Errorf("%w: alert feed query: %v", ErrDependency, err)
		}

		minRank := pref.MinSeverity.Rank()
		for _, cand := range candidates {
			inc := cand.Incident
			if _, dup := seen[inc.ID]; dup {
				continue
			}
			if inc.Severity.Rank() < minRank {
				continue
			}
			seen[inc.ID] = struct{}{}
			items = append(items, &models.AlertFeedItem{
				IncidentID:  inc.ID,
				Type:        inc.Type,
				Severity:    inc.Severity,
				Description: inc.Description,
				Latitude:    inc.Latitude,
				Longitude:   inc.Longitude,
				DistanceKM:  roundKM(cand.DistanceMeters),
				CreatedAt:   inc.CreatedAt,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	log.WithField("count", len(items)).Info("Alert feed assembled")
	return items, nil
}

// roundKM converts meters to kilometers rounded to two decimals.
func roundKM(meters float64) float64 {
	return math.Round(meters/10) / 100
}

func validatePreference(pref *models.AlertPreference) error {
	switch pref.Mode {
	case models.AlertModeRadius:
		if pref.CenterLatitude == nil || pref.CenterLongitude == nil || pref.RadiusKM == nil {
			return fmt.Errorf("%w: radius mode requires center coordinates and radius_km", ErrValidation)
		}
		if *pref.CenterLatitude < -90 || *pref.CenterLatitude > 90 ||
			*pref.CenterLongitude < -180 || *pref.CenterLongitude > 180 {
			return fmt.Errorf("%w: center coordinate out of range", ErrValidation)
		}
		if *pref.RadiusKM <= 0.1 || *pref.RadiusKM > 50 {
			return fmt.Errorf("%w: radius_km must be in (0.1, 50]", ErrValidation)
		}
	case models.AlertModeNeighborhood:
		if pref.NeighborhoodName == "" {
			return fmt.Errorf("%w: neighborhood mode requires a neighborhood name", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown alert mode %q", ErrValidation, pref.Mode)
	}

	if !pref.MinSeverity.Valid() {
		return fmt.Errorf("%w: unknown severity %q", ErrValidation, pref.MinSeverity)
	}
	for _, t := range pref.Types {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown incident type %q", ErrValidation, t)
		}
	}
	return nil
}
