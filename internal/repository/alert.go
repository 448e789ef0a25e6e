package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/service"
)

type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) service.AlertRepository {
	return &AlertRepository{db: db}
}

// CreatePreference inserts an alert preference. The center geometry is NULL
// for neighborhood-mode preferences.
func (r *AlertRepository) CreatePreference(ctx context.Context, pref *models.AlertPreference) error {
	query := `
		INSERT INTO alert_preferences (user_id, mode, neighborhood_name, center_geom, radius_km, types, min_severity, enabled)
		VALUES ($1, $2, $3,
			CASE WHEN $4::float8 IS NULL THEN NULL
			     ELSE ST_SetSRID(ST_MakePoint($5, $4), 4326) END,
			$6, $7, $8, $9)
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		pref.UserID,
		pref.Mode,
		pref.NeighborhoodName,
		pref.CenterLatitude,
		pref.CenterLongitude,
		pref.RadiusKM,
		typesToStrings(pref.Types),
		pref.MinSeverity,
		pref.Enabled,
	).Scan(&pref.ID, &pref.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create alert preference: %w", err)
	}
	return nil
}

// ListPreferences returns the user's preferences, newest first.
func (r *AlertRepository) ListPreferences(ctx context.Context, userID uuid.UUID) ([]*models.AlertPreference, error) {
	query := `
		SELECT
			id,
			user_id,
			mode,
			neighborhood_name,
			ST_Y(center_geom::geometry) as center_lat,
			ST_X(center_geom::geometry) as center_lon,
			radius_km,
			types,
			min_severity,
			enabled,
			created_at
		FROM alert_preferences
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alert preferences: %w", err)
	}
	defer rows.Close()

	prefs := make([]*models.AlertPreference, 0)
	for rows.Next() {
		pref := &models.AlertPreference{}
		var types []string
		err := rows.Scan(
			&pref.ID,
			&pref.UserID,
			&pref.Mode,
			&pref.NeighborhoodName,
			&pref.CenterLatitude,
			&pref.CenterLongitude,
			&pref.RadiusKM,
			&types,
			&pref.MinSeverity,
			&pref.Enabled,
			&pref.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert preference row: %w", err)
		}
		pref.Types = stringsToTypes(types)
		prefs = append(prefs, pref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error preference iteration: %w", err)
	}
	return prefs, nil
}

// DeletePreference removes a preference owned by the user. Deleting someone
// else's preference reports not found, same as a missing one.
func (r *AlertRepository) DeletePreference(ctx context.Context, id, userID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM alert_preferences WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete alert preference: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("alert preference %s: %w", id, service.ErrNotFound)
	}
	return nil
}

// FindOpenNearby returns open incidents whose public point lies within
// radiusM meters of the center, newest first, with the distance from the
// center to the public point.
func (r *AlertRepository) FindOpenNearby(ctx context.Context, lat, lon, radiusM float64, types []models.IncidentType, limit int) ([]*models.AlertCandidate, error) {
	where := `
		WHERE i.status = 'open'
		AND ST_DWithin(
			i.public_geom::geography,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3
		)`
	args := []any{lon, lat, radiusM}

	if len(types) > 0 {
		args = append(args, typesToStrings(types))
		where += fmt.Sprintf(" AND i.type = ANY($%d)", len(args))
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT
			i.id,
			i.user_id,
			i.type,
			i.severity,
			i.status,
			i.description,
			ST_Y(i.public_geom::geometry) as latitude,
			ST_X(i.public_geom::geometry) as longitude,
			i.created_at,
			ST_Distance(
				i.public_geom::geography,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography
			) as distance_m
		FROM incidents i
		%s
		ORDER BY i.created_at DESC
		LIMIT $%d;
	`, where, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find open incidents nearby: %w", err)
	}
	defer rows.Close()

	candidates := make([]*models.AlertCandidate, 0)
	for rows.Next() {
		cand := &models.AlertCandidate{}
		err := rows.Scan(
			&cand.Incident.ID,
			&cand.Incident.UserID,
			&cand.Incident.Type,
			&cand.Incident.Severity,
			&cand.Incident.Status,
			&cand.Incident.Description,
			&cand.Incident.Latitude,
			&cand.Incident.Longitude,
			&cand.Incident.CreatedAt,
			&cand.DistanceMeters,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert candidate row: %w", err)
		}
		candidates = append(candidates, cand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error candidate iteration: %w", err)
	}
	return candidates, nil
}

func typesToStrings(types []models.IncidentType) []string {
	if len(types) == 0 {
		return nil
	}
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func stringsToTypes(types []string) []models.IncidentType {
	if len(types) == 0 {
		return nil
	}
	out := make([]models.IncidentType, len(types))
	for i, t := range types {
		out[i] = models.IncidentType(t)
	}
	return out
}
