package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/config"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/geoprivacy"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	limiter_mocks "github.com/mcoutinho2512/app-Sentynela-Urban/internal/ratelimit/mocks"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/service"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/service/mocks"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/webhook"
	webhook_mocks "github.com/mcoutinho2512/app-Sentynela-Urban/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type incidentServiceMocks struct {
	repo      *mocks.MockIncidentRepository
	users     *mocks.MockUserRepository
	limiter   *limiter_mocks.MockLimiter
	publisher *webhook_mocks.MockPublisher
}

// newTestIncidentService builds the service with every collaborator mocked
// and a seeded transformer so fuzzing is repeatable.
func newTestIncidentService(t *testing.T) (service.IncidentService, incidentServiceMocks) {
	ctrl := gomock.NewController(t)
	m := incidentServiceMocks{
		repo:      mocks.NewMockIncidentRepository(ctrl),
		users:     mocks.NewMockUserRepository(ctrl),
		limiter:   limiter_mocks.NewMockLimiter(ctrl),
		publisher: webhook_mocks.NewMockPublisher(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // keep test output clean

	cfg := &config.Config{
		IncidentRateLimitPerHour:       5,
		IncidentDuplicateRadiusM:       50,
		IncidentDuplicateWindow:        10 * time.Minute,
		IncidentTTL:                    24 * time.Hour,
		GeoFuzzMaxOffsetM:              150,
		GeoSnapGridM:                   200,
		ReputationConfirmBonus:         2,
		ReputationRefutePenalty:        3,
		ReputationResolveBonus:         5,
		ReputationThresholdConfirms:    3,
		ReputationThresholdRefutes:     3,
		MinReputationForRestrictedType: 10,
	}

	transformer := geoprivacy.New(rand.NewSource(1), cfg.GeoFuzzMaxOffsetM, cfg.GeoSnapGridM)
	svc := service.NewIncidentService(m.repo, m.users, m.limiter, transformer, m.publisher, logger, cfg)
	return svc, m
}

func submitInput(typ models.IncidentType) service.SubmitIncidentInput {
	return service.SubmitIncidentInput{
		UserID:      uuid.New(),
		Type:        typ,
		Severity:    models.SeverityMedia,
		Description: "test report",
		Latitude:    -23.5505,
		Longitude:   -46.6333,
	}
}

func TestSubmitIncident_InvalidType(t *testing.T) {
	svc, m := newTestIncidentService(t)

	m.limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.SubmitIncident(context.Background(), submitInput("ufo_sighting"))
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestSubmitIncident_RateLimited(t *testing.T) {
	svc, m := newTestIncidentService(t)
	in := submitInput(models.TypeBuraco)

	m.limiter.EXPECT().
		Allow(gomock.Any(), fmt.Sprintf("create_incident:u:%s", in.UserID), 5, gomock.Any()).
		Return(false, nil).Times(1)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.SubmitIncident(context.Background(), in)
	assert.ErrorIs(t, err, service.ErrRateLimited)
}

func TestSubmitIncident_LimiterFailure(t *testing.T) {
	svc, m := newTestIncidentService(t)
	in := submitInput(models.TypeBuraco)

	m.limiter.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, errors.New("redis down")).Times(1)

	_, err := svc.SubmitIncident(context.Background(), in)
	assert.ErrorIs(t, err, service.ErrDependency)
}

func TestSubmitIncident_RestrictedTypeLowReputation(t *testing.T) {
	svc, m := newTestIncidentService(t)
	in := submitInput(models.TypeTiroteio)

	m.limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(1)
	m.users.EXPECT().GetByID(gomock.Any(), in.UserID).Return(&models.User{ID: in.UserID, Reputation: 4}, nil).Times(1)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.SubmitIncident(context.Background(), in)
	assert.ErrorIs(t, err, service.ErrPermission)
}

func TestSubmitIncident_RestrictedTypeUnknownUser(t *testing.T) {
	svc, m := newTestIncidentService(t)
	in := submitInput(models.TypeAssalto)

	m.limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(1)
	m.users.EXPECT().GetByID(gomock.Any(), in.UserID).Return(nil, nil).Times(1)

	_, err := svc.SubmitIncident(context.Background(), in)
	assert.ErrorIs(t, err, service.ErrPermission)
}

func TestSubmitIncident_Duplicate(t *testing.T) {
	svc, m := newTestIncidentService(t)
	in := submitInput(models.TypeAlagamento)

	m.limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(1)
	m.repo.EXPECT().
		CountNearbySince(gomock.Any(), in.Type, in.Latitude, in.Longitude, 50.0, gomock.Any()).
		Return(1, nil).Times(1)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.SubmitIncident(context.Background(), in)
	assert.ErrorIs(t, err, service.ErrDuplicateIncident)
}

func TestSubmitIncident_DuplicateQueryFailure(t *testing.T) {
	svc, m := newTestIncidentService(t)
	in := submitInput(models.TypeAlagamento)

	m.limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(1)
	m.repo.EXPECT().
		CountNearbySince(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, errors.New("db down")).Times(1)

	_, err := svc.SubmitIncident(context.Background(), in)
	assert.ErrorIs(t, err, service.ErrDependency)
}

func TestSubmitIncident_Success_OrdinaryTypeFuzzed(t *testing.T) {
	svc, m := newTestIncidentService(t)
	in := submitInput(models.TypeBuraco)

	m.limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(1)
	m.repo.EXPECT().
		CountNearbySince(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, nil).Times(1)

	var created *models.Incident
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, incident *models.Incident) error {
			created = incident
			return nil
		}).Times(1)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event webhook.IncidentEvent) error {
			assert.Equal(t, webhook.EventIncidentCreated, event.Event)
			return nil
		}).Times(1)

	result, err := svc.SubmitIncident(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, models.StatusOpen, created.Status)
	assert.Equal(t, in.Latitude, created.TrueLatitude)
	assert.Equal(t, in.Longitude, created.TrueLongitude)
	require.NotNil(t, created.ExpiresAt)

	// The public point is fuzzed, never the raw coordinate.
	offset := geoprivacy.HaversineMeters(in.Latitude, in.Longitude, created.Latitude, created.Longitude)
	assert.LessOrEqual(t, offset, 151.0)

	assert.Equal(t, created.Latitude, result.Latitude)
	assert.Equal(t, 0, result.Confirmations)
}

func TestSubmitIncident_Success_SensitiveTypeSnapped(t *testing.T) {
	svc, m := newTestIncidentService(t)
	in := submitInput(models.TypeTiroteio)

	m.limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(1)
	m.users.EXPECT().GetByID(gomock.Any(), in.UserID).Return(&models.User{ID: in.UserID, Reputation: 25}, nil).Times(1)
	m.repo.EXPECT().
		CountNearbySince(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, nil).Times(1)

	var created *models.Incident
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, incident *models.Incident) error {
			created = incident
			return nil
		}).Times(1)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := svc.SubmitIncident(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, created)

	wantLat, wantLon := geoprivacy.Snap(in.Latitude, in.Longitude, 200)
	assert.Equal(t, wantLat, created.Latitude)
	assert.Equal(t, wantLon, created.Longitude)
}

func TestSubmitIncident_PublishFailureDoesNotFailPipeline(t *testing.T) {
	svc, m := newTestIncidentService(t)
	in := submitInput(models.TypeLixo)

	m.limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(1)
	m.repo.EXPECT().
		CountNearbySince(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, nil).Times(1)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("queue down")).Times(1)

	_, err := svc.SubmitIncident(context.Background(), in)
	assert.NoError(t, err)
}

func TestGetIncident_FromCache(t *testing.T) {
	svc, m := newTestIncidentService(t)
	incidentID := uuid.New()
	viewerID := uuid.New()
	cached := &models.Incident{ID: incidentID, Type: models.TypeBuraco, Status: models.StatusOpen}

	m.repo.EXPECT().GetIncidentFromCache(gomock.Any(), incidentID).Return(cached, nil).Times(1)
	m.repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)
	m.repo.EXPECT().GetStats(gomock.Any(), incidentID, viewerID).
		Return(&models.IncidentStats{Confirmations: 2, Refutations: 1}, nil).Times(1)

	result, err := svc.GetIncident(context.Background(), incidentID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, incidentID, result.ID)
	assert.Equal(t, 2, result.Confirmations)
	assert.Equal(t, 1, result.Refutations)
}

func TestGetIncident_CacheMissFallsBackToDB(t *testing.T) {
	svc, m := newTestIncidentService(t)
	incidentID := uuid.New()
	viewerID := uuid.New()
	stored := &models.Incident{ID: incidentID, Type: models.TypeIncendio, Status: models.StatusOpen}

	m.repo.EXPECT().GetIncidentFromCache(gomock.Any(), incidentID).Return(nil, nil).Times(1)
	m.repo.EXPECT().GetByID(gomock.Any(), incidentID).Return(stored, nil).Times(1)
	m.repo.EXPECT().SetIncidentCache(gomock.Any(), stored).Return(nil).Times(1)
	m.repo.EXPECT().GetStats(gomock.Any(), incidentID, viewerID).
		Return(&models.IncidentStats{}, nil).Times(1)

	result, err := svc.GetIncident(context.Background(), incidentID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, models.TypeIncendio, result.Type)
}

func TestGetIncident_NotFound(t *testing.T) {
	svc, m := newTestIncidentService(t)
	incidentID := uuid.New()

	m.repo.EXPECT().GetIncidentFromCache(gomock.Any(), incidentID).Return(nil, nil).Times(1)
	m.repo.EXPECT().GetByID(gomock.Any(), incidentID).
		Return(nil, fmt.Errorf("incident %s: %w", incidentID, service.ErrNotFound)).Times(1)

	_, err := svc.GetIncident(context.Background(), incidentID, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListIncidents_ClampsQuery(t *testing.T) {
	svc, m := newTestIncidentService(t)
	viewerID := uuid.New()

	m.repo.EXPECT().ListNearby(gomock.Any(), gomock.Any(), viewerID).
		DoAndReturn(func(_ context.Context, q models.IncidentQuery, _ uuid.UUID) ([]*models.IncidentWithStats, int, error) {
			assert.Equal(t, 50, q.Limit)
			assert.Equal(t, 0, q.Offset)
			assert.Equal(t, 1000, q.RadiusMeters)
			return []*models.IncidentWithStats{}, 0, nil
		}).Times(1)

	_, total, err := svc.ListIncidents(context.Background(), models.IncidentQuery{
		Latitude:     -23.55,
		Longitude:    -46.63,
		RadiusMeters: 0,
		Offset:       -5,
		Limit:        0,
	}, viewerID)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestAddComment_EmptyText(t *testing.T) {
	svc, m := newTestIncidentService(t)

	m.repo.EXPECT().CreateComment(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.AddComment(context.Background(), uuid.New(), uuid.New(), "")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestAddComment_Success(t *testing.T) {
	svc, m := newTestIncidentService(t)
	incidentID := uuid.New()
	userID := uuid.New()

	m.repo.EXPECT().GetByID(gomock.Any(), incidentID).
		Return(&models.Incident{ID: incidentID}, nil).Times(1)
	m.repo.EXPECT().CreateComment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, comment *models.IncidentComment) error {
			comment.ID = uuid.New()
			return nil
		}).Times(1)

	comment, err := svc.AddComment(context.Background(), incidentID, userID, "saw it too")
	require.NoError(t, err)
	assert.Equal(t, incidentID, comment.IncidentID)
	assert.Equal(t, "saw it too", comment.Text)
}

func TestExpireOldIncidents(t *testing.T) {
	svc, m := newTestIncidentService(t)

	m.repo.EXPECT().ExpireOpenIncidents(gomock.Any(), gomock.Any()).Return(int64(3), nil).Times(1)

	expired, err := svc.ExpireOldIncidents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), expired)
}
