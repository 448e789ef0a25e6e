package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/service"
	"github.com/redis/go-redis/v9"
)

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create inserts a new incident with both the exact and the public
// geometry. The exact point never leaves the geom column.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (user_id, type, severity, status, description, photo_url, geom, public_geom, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6,
			ST_SetSRID(ST_MakePoint($7, $8), 4326),
			ST_SetSRID(ST_MakePoint($9, $10), 4326),
			$11)
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.UserID,
		incident.Type,
		incident.Severity,
		incident.Status,
		incident.Description,
		incident.PhotoURL,
		incident.TrueLongitude,
		incident.TrueLatitude,
		incident.Longitude,
		incident.Latitude,
		incident.ExpiresAt,
	).Scan(&incident.ID, &incident.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID returns an incident by UUID with its public coordinates.
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	incident := &models.Incident{}
	query := `
		SELECT
			id,
			user_id,
			type,
			severity,
			status,
			description,
			photo_url,
			ST_Y(public_geom::geometry) as latitude,
			ST_X(public_geom::geometry) as longitude,
			created_at,
			expires_at
		FROM incidents
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&incident.ID,
		&incident.UserID,
		&incident.Type,
		&incident.Severity,
		&incident.Status,
		&incident.Description,
		&incident.PhotoURL,
		&incident.Latitude,
		&incident.Longitude,
		&incident.CreatedAt,
		&incident.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// GetStats returns total confirm/refute counts and the viewer's own vote.
func (r *IncidentRepository) GetStats(ctx context.Context, incidentID, viewerID uuid.UUID) (*models.IncidentStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE vote = 'confirm'),
			COUNT(*) FILTER (WHERE vote = 'refute'),
			(SELECT vote FROM incident_votes WHERE incident_id = $1 AND user_id = $2)
		FROM incident_votes
		WHERE incident_id = $1;
	`
	stats := &models.IncidentStats{}
	var viewerVote *string
	err := r.db.QueryRow(ctx, query, incidentID, viewerID).Scan(
		&stats.Confirmations,
		&stats.Refutations,
		&viewerVote,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get incident vote stats: %w", err)
	}
	if viewerVote != nil {
		vote := models.VoteType(*viewerVote)
		stats.UserVote = &vote
	}
	return stats, nil
}

// CountNearbySince counts incidents of the given type created since the
// given time whose public point lies within radiusM meters of the center.
func (r *IncidentRepository) CountNearbySince(ctx context.Context, typ models.IncidentType, lat, lon, radiusM float64, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM incidents
		WHERE
			type = $1
			AND created_at >= $2
			AND ST_DWithin(
				public_geom::geography,
				ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography,
				$5
			);
	`
	var count int
	err := r.db.QueryRow(ctx, query, typ, since, lon, lat, radiusM).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count nearby incidents: %w", err)
	}
	return count, nil
}

// ListNearby returns incidents whose public point lies within the query
// radius, newest first, with vote counts and the viewer's vote joined in.
func (r *IncidentRepository) ListNearby(ctx context.Context, q models.IncidentQuery, viewerID uuid.UUID) ([]*models.IncidentWithStats, int, error) {
	where := `
		WHERE ST_DWithin(
			i.public_geom::geography,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3
		)`
	args := []any{q.Longitude, q.Latitude, q.RadiusMeters}

	if q.Status != "" {
		args = append(args, q.Status)
		where += fmt.Sprintf(" AND i.status = $%d", len(args))
	}
	if q.Type != "" {
		args = append(args, q.Type)
		where += fmt.Sprintf(" AND i.type = $%d", len(args))
	}

	countQuery := "SELECT COUNT(*) FROM incidents i" + where
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count incidents: %w", err)
	}

	args = append(args, viewerID)
	viewerArg := len(args)
	args = append(args, q.Limit, q.Offset)

	query := fmt.Sprintf(`
		SELECT
			i.id,
			i.user_id,
			i.type,
			i.severity,
			i.status,
			i.description,
			i.photo_url,
			ST_Y(i.public_geom::geometry) as latitude,
			ST_X(i.public_geom::geometry) as longitude,
			i.created_at,
			i.expires_at,
			COALESCE(c.cnt, 0) as confirmations,
			COALESCE(rf.cnt, 0) as refutations,
			v.vote as user_vote
		FROM incidents i
		LEFT JOIN (
			SELECT incident_id, COUNT(*) AS cnt FROM incident_votes WHERE vote = 'confirm' GROUP BY incident_id
		) c ON c.incident_id = i.id
		LEFT JOIN (
			SELECT incident_id, COUNT(*) AS cnt FROM incident_votes WHERE vote = 'refute' GROUP BY incident_id
		) rf ON rf.incident_id = i.id
		LEFT JOIN incident_votes v ON v.incident_id = i.id AND v.user_id = $%d
		%s
		ORDER BY i.created_at DESC
		LIMIT $%d OFFSET $%d;
	`, viewerArg, where, viewerArg+1, viewerArg+2)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list nearby incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.IncidentWithStats, 0)
	for rows.Next() {
		item := &models.IncidentWithStats{}
		var viewerVote *string
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Type,
			&item.Severity,
			&item.Status,
			&item.Description,
			&item.PhotoURL,
			&item.Latitude,
			&item.Longitude,
			&item.CreatedAt,
			&item.ExpiresAt,
			&item.Confirmations,
			&item.Refutations,
			&viewerVote,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan incident row: %w", err)
		}
		if viewerVote != nil {
			vote := models.VoteType(*viewerVote)
			item.UserVote = &vote
		}
		incidents = append(incidents, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, total, nil
}

// RecordVote runs the vote unit of work in a single transaction: insert the
// vote, apply the reputation delta to the author, recount, and persist the
// status the decision function picks. The unique (incident_id, user_id)
// constraint rejects double votes at the storage layer.
func (r *IncidentRepository) RecordVote(ctx context.Context, vote *models.IncidentVote, authorID uuid.UUID, reputationDelta int, decide service.StatusDecision) (*service.VoteOutcome, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO incident_votes (incident_id, user_id, vote)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;
	`
	err = tx.QueryRow(ctx, insert, vote.IncidentID, vote.UserID, vote.Vote).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return nil, fmt.Errorf("vote for incident %s: %w", vote.IncidentID, service.ErrAlreadyVoted)
			case pgerrcode.ForeignKeyViolation:
				return nil, fmt.Errorf("incident %s: %w", vote.IncidentID, service.ErrNotFound)
			}
		}
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}

	// Missing author rows affect zero rows; the vote still counts.
	if _, err := tx.Exec(ctx,
		`UPDATE users SET reputation = reputation + $1 WHERE id = $2;`,
		reputationDelta, authorID,
	); err != nil {
		return nil, fmt.Errorf("failed to update author reputation: %w", err)
	}

	outcome := &service.VoteOutcome{}
	err = tx.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE vote = 'confirm'),
			COUNT(*) FILTER (WHERE vote = 'refute')
		FROM incident_votes
		WHERE incident_id = $1;
	`, vote.IncidentID).Scan(&outcome.Confirmations, &outcome.Refutations)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	outcome.Status = decide(outcome.Confirmations, outcome.Refutations)
	cmdTag, err := tx.Exec(ctx,
		`UPDATE incidents SET status = $1 WHERE id = $2 AND status <> $1;`,
		outcome.Status, vote.IncidentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update incident status: %w", err)
	}
	outcome.StatusChanged = cmdTag.RowsAffected() > 0

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit vote transaction: %w", err)
	}

	if outcome.StatusChanged {
		if err := r.InvalidateIncidentCache(ctx, vote.IncidentID); err != nil {
			// Cache entries carry a short TTL; a failed invalidation heals itself.
			return outcome, nil
		}
	}
	return outcome, nil
}

// ExpireOpenIncidents resolves open incidents whose expires_at has passed.
func (r *IncidentRepository) ExpireOpenIncidents(ctx context.Context, now time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE incidents SET status = 'resolved'
		WHERE status = 'open' AND expires_at IS NOT NULL AND expires_at <= $1;
	`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire incidents: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// CreateComment appends a comment row.
func (r *IncidentRepository) CreateComment(ctx context.Context, comment *models.IncidentComment) error {
	query := `
		INSERT INTO incident_comments (incident_id, user_id, text)
		VALUES ($1, $2, $3) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		comment.IncidentID,
		comment.UserID,
		comment.Text,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListComments returns an incident's comments oldest first, with the
// author's display name joined in.
func (r *IncidentRepository) ListComments(ctx context.Context, incidentID uuid.UUID) ([]*models.IncidentComment, error) {
	query := `
		SELECT c.id, c.incident_id, c.user_id, COALESCE(u.name, ''), c.text, c.created_at
		FROM incident_comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.incident_id = $1
		ORDER BY c.created_at ASC;
	`
	rows, err := r.db.Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*models.IncidentComment, 0)
	for rows.Next() {
		comment := &models.IncidentComment{}
		err := rows.Scan(
			&comment.ID,
			&comment.IncidentID,
			&comment.UserID,
			&comment.UserName,
			&comment.Text,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error comment iteration: %w", err)
	}
	return comments, nil
}

// GetIncidentFromCache tries to fetch an incident from Redis.
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	key := fmt.Sprintf("incident:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache stores an incident in Redis with a short TTL.
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	key := fmt.Sprintf("incident:%s", incident.ID.String())
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache removes an incident from the Redis cache.
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("incident:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
