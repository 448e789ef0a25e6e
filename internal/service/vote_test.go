package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/service"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func openIncident(authorID uuid.UUID) *models.Incident {
	return &models.Incident{
		ID:       uuid.New(),
		UserID:   authorID,
		Type:     models.TypeBuraco,
		Severity: models.SeverityMedia,
		Status:   models.StatusOpen,
	}
}

func TestCastVote_InvalidVoteType(t *testing.T) {
	svc, m := newTestIncidentService(t)

	m.repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CastVote(context.Background(), uuid.New(), uuid.New(), "maybe")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCastVote_IncidentNotFound(t *testing.T) {
	svc, m := newTestIncidentService(t)
	incidentID := uuid.New()

	m.repo.EXPECT().GetByID(gomock.Any(), incidentID).
		Return(nil, fmt.Errorf("incident %s: %w", incidentID, service.ErrNotFound)).Times(1)
	m.repo.EXPECT().RecordVote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CastVote(context.Background(), incidentID, uuid.New(), models.VoteConfirm)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCastVote_AlreadyVoted(t *testing.T) {
	svc, m := newTestIncidentService(t)
	incident := openIncident(uuid.New())

	m.repo.EXPECT().GetByID(gomock.Any(), incident.ID).Return(incident, nil).Times(1)
	m.repo.EXPECT().
		RecordVote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("vote: %w", service.ErrAlreadyVoted)).Times(1)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CastVote(context.Background(), incident.ID, uuid.New(), models.VoteConfirm)
	assert.ErrorIs(t, err, service.ErrAlreadyVoted)
}

func TestCastVote_RefuteAppliesPenaltyToAuthor(t *testing.T) {
	svc, m := newTestIncidentService(t)
	authorID := uuid.New()
	voterID := uuid.New()
	incident := openIncident(authorID)

	m.repo.EXPECT().GetByID(gomock.Any(), incident.ID).Return(incident, nil).Times(1)
	m.repo.EXPECT().
		RecordVote(gomock.Any(), gomock.Any(), authorID, -3, gomock.Any()).
		DoAndReturn(func(_ context.Context, vote *models.IncidentVote, _ uuid.UUID, _ int, decide service.StatusDecision) (*service.VoteOutcome, error) {
			assert.Equal(t, incident.ID, vote.IncidentID)
			assert.Equal(t, voterID, vote.UserID)
			assert.Equal(t, models.VoteRefute, vote.Vote)
			status := decide(0, 1)
			return &service.VoteOutcome{Refutations: 1, Status: status, StatusChanged: false}, nil
		}).Times(1)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	outcome, err := svc.CastVote(context.Background(), incident.ID, voterID, models.VoteRefute)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, outcome.Status)
	assert.False(t, outcome.StatusChanged)
}

func TestCastVote_ThirdRefuteDisputes(t *testing.T) {
	svc, m := newTestIncidentService(t)
	incident := openIncident(uuid.New())

	m.repo.EXPECT().GetByID(gomock.Any(), incident.ID).Return(incident, nil).Times(1)
	m.repo.EXPECT().
		RecordVote(gomock.Any(), gomock.Any(), incident.UserID, -3, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.IncidentVote, _ uuid.UUID, _ int, decide service.StatusDecision) (*service.VoteOutcome, error) {
			status := decide(0, 3)
			return &service.VoteOutcome{Refutations: 3, Status: status, StatusChanged: status != incident.Status}, nil
		}).Times(1)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event webhook.IncidentEvent) error {
			assert.Equal(t, webhook.EventIncidentStatusChanged, event.Event)
			assert.Equal(t, models.StatusDisputed, event.Status)
			return nil
		}).Times(1)

	outcome, err := svc.CastVote(context.Background(), incident.ID, uuid.New(), models.VoteRefute)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisputed, outcome.Status)
	assert.True(t, outcome.StatusChanged)
}

func TestCastVote_ResolvedWinsOverRefutes(t *testing.T) {
	svc, m := newTestIncidentService(t)
	incident := openIncident(uuid.New())

	m.repo.EXPECT().GetByID(gomock.Any(), incident.ID).Return(incident, nil).Times(1)
	m.repo.EXPECT().
		RecordVote(gomock.Any(), gomock.Any(), incident.UserID, 5, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.IncidentVote, _ uuid.UUID, _ int, decide service.StatusDecision) (*service.VoteOutcome, error) {
			// Three refutes already on record, but the new vote is resolved.
			status := decide(0, 3)
			return &service.VoteOutcome{Refutations: 3, Status: status, StatusChanged: status != incident.Status}, nil
		}).Times(1)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	outcome, err := svc.CastVote(context.Background(), incident.ID, uuid.New(), models.VoteResolved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, outcome.Status)
	assert.True(t, outcome.StatusChanged)
}

func TestCastVote_ConfirmThresholdKeepsStatus(t *testing.T) {
	svc, m := newTestIncidentService(t)
	incident := openIncident(uuid.New())

	m.repo.EXPECT().GetByID(gomock.Any(), incident.ID).Return(incident, nil).Times(1)
	m.repo.EXPECT().
		RecordVote(gomock.Any(), gomock.Any(), incident.UserID, 2, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.IncidentVote, _ uuid.UUID, _ int, decide service.StatusDecision) (*service.VoteOutcome, error) {
			status := decide(3, 0)
			return &service.VoteOutcome{Confirmations: 3, Status: status, StatusChanged: status != incident.Status}, nil
		}).Times(1)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	outcome, err := svc.CastVote(context.Background(), incident.ID, uuid.New(), models.VoteConfirm)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, outcome.Status)
	assert.False(t, outcome.StatusChanged)
}
