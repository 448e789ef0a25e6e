package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/webhook"
	"github.com/sirupsen/logrus"
)

// reputationDelta is the ledger rule: the delta a vote applies to the
// incident author's reputation. Reputation has no floor.
func (s *incidentService) reputationDelta(vote models.VoteType) int {
	switch vote {
	case models.VoteConfirm:
		return s.cfg.ReputationConfirmBonus
	case models.VoteRefute:
		return -s.cfg.ReputationRefutePenalty
	case models.VoteResolved:
		return s.cfg.ReputationResolveBonus
	}
	return 0
}

// nextStatus is the status state machine, evaluated over the total vote
// counts after the new vote is recorded. A resolved vote wins over any
// refute majority; resolved and disputed are terminal.
func (s *incidentService) nextStatus(current models.IncidentStatus, justCast models.VoteType, confirms, refutes int) models.IncidentStatus {
	if justCast == models.VoteResolved {
		return models.StatusResolved
	}
	if current != models.StatusOpen {
		return current
	}
	if refutes >= s.cfg.ReputationThresholdRefutes {
		return models.StatusDisputed
	}
	if confirms >= s.cfg.ReputationThresholdConfirms {
		// Threshold signal only; confirmations alone do not change status.
		return current
	}
	return current
}

// CastVote runs the voting pipeline: existence gate, then a single storage
// transaction that records the vote (the (incident, voter) uniqueness
// constraint is the concurrency authority), applies the reputation delta to
// the author, and re-evaluates the status from total counts.
func (s *incidentService) CastVote(ctx context.Context, incidentID, voterID uuid.UUID, vote models.VoteType) (*VoteOutcome, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "CastVote",
		"incident_id": incidentID,
		"voter_id":    voterID,
		"vote":        vote,
	})
	log.Info("Attempting to cast a vote")

	if !vote.Valid() {
		return nil, fmt.Errorf("%w: unknown vote type %q", ErrValidation, vote)
	}

	// Read the live row, not the cache: the current status feeds the state
	// machine.
	incident, err := s.repo.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Attempted to vote on a missing incident")
		return nil, fmt.Errorf("incident for vote: %w", err)
	}

	delta := s.reputationDelta(vote)
	decide := func(confirms, refutes int) models.IncidentStatus {
		return s.nextStatus(incident.Status, vote, confirms, refutes)
	}

	outcome, err := s.repo.RecordVote(ctx, &models.IncidentVote{
		IncidentID: incidentID,
		UserID:     voterID,
		Vote:       vote,
	}, incident.UserID, delta, decide)
	if err != nil {
		log.WithError(err).Warn("Failed to record vote")
		return nil, fmt.Errorf("could not record vote: %w", err)
	}

	if outcome.StatusChanged {
		incident.Status = outcome.Status
		s.publishEvent(ctx, log, webhook.EventIncidentStatusChanged, incident)
	}

	log.WithFields(logrus.Fields{
		"status":         outcome.Status,
		"status_changed": outcome.StatusChanged,
		"confirmations":  outcome.Confirmations,
		"refutations":    outcome.Refutations,
	}).Info("Vote recorded successfully")
	return outcome, nil
}
