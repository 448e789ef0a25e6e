package service

import (
	"testing"

	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/config"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/stretchr/testify/assert"
)

func newRulesService() *incidentService {
	return &incidentService{
		cfg: &config.Config{
			ReputationConfirmBonus:      2,
			ReputationRefutePenalty:     3,
			ReputationResolveBonus:      5,
			ReputationThresholdConfirms: 3,
			ReputationThresholdRefutes:  3,
		},
	}
}

func TestReputationDelta(t *testing.T) {
	s := newRulesService()

	assert.Equal(t, 2, s.reputationDelta(models.VoteConfirm))
	assert.Equal(t, -3, s.reputationDelta(models.VoteRefute))
	assert.Equal(t, 5, s.reputationDelta(models.VoteResolved))
}

func TestNextStatus(t *testing.T) {
	s := newRulesService()

	tests := []struct {
		name     string
		current  models.IncidentStatus
		justCast models.VoteType
		confirms int
		refutes  int
		want     models.IncidentStatus
	}{
		{
			name:     "open stays open on a single confirm",
			current:  models.StatusOpen,
			justCast: models.VoteConfirm,
			confirms: 1,
			want:     models.StatusOpen,
		},
		{
			name:     "confirm threshold alone never changes status",
			current:  models.StatusOpen,
			justCast: models.VoteConfirm,
			confirms: 5,
			want:     models.StatusOpen,
		},
		{
			name:     "refutes below threshold keep it open",
			current:  models.StatusOpen,
			justCast: models.VoteRefute,
			refutes:  2,
			want:     models.StatusOpen,
		},
		{
			name:     "third refute flips to disputed",
			current:  models.StatusOpen,
			justCast: models.VoteRefute,
			refutes:  3,
			want:     models.StatusDisputed,
		},
		{
			name:     "resolved vote resolves immediately",
			current:  models.StatusOpen,
			justCast: models.VoteResolved,
			want:     models.StatusResolved,
		},
		{
			name:     "resolved vote wins over a refute majority",
			current:  models.StatusOpen,
			justCast: models.VoteResolved,
			refutes:  4,
			want:     models.StatusResolved,
		},
		{
			name:     "disputed is terminal for refutes",
			current:  models.StatusDisputed,
			justCast: models.VoteRefute,
			refutes:  7,
			want:     models.StatusDisputed,
		},
		{
			name:     "disputed can still be resolved",
			current:  models.StatusDisputed,
			justCast: models.VoteResolved,
			refutes:  7,
			want:     models.StatusResolved,
		},
		{
			name:     "resolved is terminal for confirms",
			current:  models.StatusResolved,
			justCast: models.VoteConfirm,
			confirms: 10,
			want:     models.StatusResolved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.nextStatus(tt.current, tt.justCast, tt.confirms, tt.refutes)
			assert.Equal(t, tt.want, got)
		})
	}
}
