package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/config"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/service"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAlertService(t *testing.T) (service.AlertService, *mocks.MockAlertRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockAlertRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{AlertFeedLimitPerPreference: 50}
	return service.NewAlertService(repoMock, logger, cfg), repoMock
}

func floatPtr(v float64) *float64 { return &v }

func radiusPref(userID uuid.UUID, lat, lon, radiusKM float64, minSeverity models.Severity) *models.AlertPreference {
	return &models.AlertPreference{
		ID:              uuid.New(),
		UserID:          userID,
		Mode:            models.AlertModeRadius,
		CenterLatitude:  floatPtr(lat),
		CenterLongitude: floatPtr(lon),
		RadiusKM:        floatPtr(radiusKM),
		MinSeverity:     minSeverity,
		Enabled:         true,
	}
}

func candidate(id uuid.UUID, severity models.Severity, distanceM float64, createdAt time.Time) *models.AlertCandidate {
	return &models.AlertCandidate{
		Incident: models.Incident{
			ID:        id,
			Type:      models.TypeAlagamento,
			Severity:  severity,
			Status:    models.StatusOpen,
			CreatedAt: createdAt,
		},
		DistanceMeters: distanceM,
	}
}

func TestCreatePreference_RadiusModeRequiresGeometry(t *testing.T) {
	svc, repoMock := newTestAlertService(t)

	repoMock.EXPECT().CreatePreference(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CreatePreference(context.Background(), &models.AlertPreference{
		UserID:      uuid.New(),
		Mode:        models.AlertModeRadius,
		MinSeverity: models.SeverityBaixa,
		Enabled:     true,
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreatePreference_RadiusTooLarge(t *testing.T) {
	svc, repoMock := newTestAlertService(t)

	repoMock.EXPECT().CreatePreference(gomock.Any(), gomock.Any()).Times(0)

	pref := radiusPref(uuid.New(), -23.55, -46.63, 80, models.SeverityBaixa)
	_, err := svc.CreatePreference(context.Background(), pref)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreatePreference_NeighborhoodRequiresName(t *testing.T) {
	svc, repoMock := newTestAlertService(t)

	repoMock.EXPECT().CreatePreference(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CreatePreference(context.Background(), &models.AlertPreference{
		UserID:      uuid.New(),
		Mode:        models.AlertModeNeighborhood,
		MinSeverity: models.SeverityBaixa,
		Enabled:     true,
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreatePreference_Success(t *testing.T) {
	svc, repoMock := newTestAlertService(t)

	pref := radiusPref(uuid.New(), -23.55, -46.63, 2, models.SeverityMedia)
	repoMock.EXPECT().CreatePreference(gomock.Any(), pref).Return(nil).Times(1)

	created, err := svc.CreatePreference(context.Background(), pref)
	require.NoError(t, err)
	assert.Equal(t, pref.ID, created.ID)
}

func TestFeed_FiltersDeduplicatesAndSorts(t *testing.T) {
	svc, repoMock := newTestAlertService(t)
	userID := uuid.New()
	now := time.Now()

	prefHome := radiusPref(userID, -23.55, -46.63, 2, models.SeverityMedia)
	prefWork := radiusPref(userID, -23.56, -46.65, 1, models.SeverityBaixa)

	sharedID := uuid.New()
	oldID := uuid.New()
	newID := uuid.New()

	repoMock.EXPECT().ListPreferences(gomock.Any(), userID).
		Return([]*models.AlertPreference{prefHome, prefWork}, nil).Times(1)
	repoMock.EXPECT().
		FindOpenNearby(gomock.Any(), -23.55, -46.63, 2000.0, gomock.Any(), 50).
		Return([]*models.AlertCandidate{
			candidate(sharedID, models.SeverityAlta, 1234, now.Add(-2*time.Minute)),
			candidate(oldID, models.SeverityBaixa, 300, now.Add(-10*time.Minute)), // below media
		}, nil).Times(1)
	repoMock.EXPECT().
		FindOpenNearby(gomock.Any(), -23.56, -46.65, 1000.0, gomock.Any(), 50).
		Return([]*models.AlertCandidate{
			candidate(sharedID, models.SeverityAlta, 900, now.Add(-2*time.Minute)), // duplicate
			candidate(newID, models.SeverityBaixa, 450, now.Add(-1*time.Minute)),
		}, nil).Times(1)

	items, err := svc.Feed(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Newest first, and the shared incident appears once with the distance
	// from the preference that matched it first.
	assert.Equal(t, newID, items[0].IncidentID)
	assert.Equal(t, sharedID, items[1].IncidentID)
	assert.Equal(t, 1.23, items[1].DistanceKM)
}

func TestFeed_SkipsDisabledAndNeighborhoodPreferences(t *testing.T) {
	svc, repoMock := newTestAlertService(t)
	userID := uuid.New()

	disabled := radiusPref(userID, -23.55, -46.63, 2, models.SeverityBaixa)
	disabled.Enabled = false
	neighborhood := &models.AlertPreference{
		ID:               uuid.New(),
		UserID:           userID,
		Mode:             models.AlertModeNeighborhood,
		NeighborhoodName: "Centro",
		MinSeverity:      models.SeverityBaixa,
		Enabled:          true,
	}

	repoMock.EXPECT().ListPreferences(gomock.Any(), userID).
		Return([]*models.AlertPreference{disabled, neighborhood}, nil).Times(1)
	repoMock.EXPECT().
		FindOpenNearby(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	items, err := svc.Feed(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFeed_QueryFailure(t *testing.T) {
	svc, repoMock := newTestAlertService(t)
	userID := uuid.New()
	pref := radiusPref(userID, -23.55, -46.63, 2, models.SeverityBaixa)

	repoMock.EXPECT().ListPreferences(gomock.Any(), userID).
		Return([]*models.AlertPreference{pref}, nil).Times(1)
	repoMock.EXPECT().
		FindOpenNearby(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down")).Times(1)

	_, err := svc.Feed(context.Background(), userID)
	assert.ErrorIs(t, err, service.ErrDependency)
}

func TestDeletePreference_NotFound(t *testing.T) {
	svc, repoMock := newTestAlertService(t)
	prefID := uuid.New()
	userID := uuid.New()

	repoMock.EXPECT().DeletePreference(gomock.Any(), prefID, userID).
		Return(service.ErrNotFound).Times(1)

	err := svc.DeletePreference(context.Background(), prefID, userID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
