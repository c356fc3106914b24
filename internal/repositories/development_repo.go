package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/waitumusic/backend/internal/models"
)

type DevelopmentRepo struct {
	pool *pgxpool.Pool
}

func NewDevelopmentRepo(pool *pgxpool.Pool) *DevelopmentRepo {
	return &DevelopmentRepo{pool: pool}
}

const analysisColumns = `
	a.artist_id, ar.stage_name, a.stage, a.career_score, a.growth_trajectory,
	a.breakout_probability, a.strength_areas, a.improvement_areas, a.market_position,
	a.projected_revenue, a.recommendations, a.similar_artists, a.social_reach, a.updated_at`

func (r *DevelopmentRepo) ListAnalyses(ctx context.Context) ([]models.ArtistAnalysis, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+analysisColumns+`
		FROM artist_analyses a
		JOIN artists ar ON ar.id = a.artist_id
		ORDER BY a.career_score DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []models.ArtistAnalysis
	for rows.Next() {
		var a models.ArtistAnalysis
		if err := rows.Scan(
			&a.ArtistID, &a.ArtistName, &a.CurrentStage, &a.CareerScore, &a.GrowthTrajectory,
			&a.BreakoutProbability, &a.StrengthAreas, &a.ImprovementAreas, &a.MarketPosition,
			&a.ProjectedRevenue, &a.Recommendations, &a.SimilarArtists, &a.SocialReach, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range analyses {
		milestones, err := r.ListMilestones(ctx, analyses[i].ArtistID)
		if err != nil {
			return nil, err
		}
		analyses[i].NextMilestones = milestones
	}
	return analyses, nil
}

func (r *DevelopmentRepo) GetAnalysis(ctx context.Context, artistID uuid.UUID) (*models.ArtistAnalysis, error) {
	var a models.ArtistAnalysis
	err := r.pool.QueryRow(ctx, `
		SELECT`+analysisColumns+`
		FROM artist_analyses a
		JOIN artists ar ON ar.id = a.artist_id
		WHERE a.artist_id = $1
	`, artistID).Scan(
		&a.ArtistID, &a.ArtistName, &a.CurrentStage, &a.CareerScore, &a.GrowthTrajectory,
		&a.BreakoutProbability, &a.StrengthAreas, &a.ImprovementAreas, &a.MarketPosition,
		&a.ProjectedRevenue, &a.Recommendations, &a.SimilarArtists, &a.SocialReach, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	milestones, err := r.ListMilestones(ctx, artistID)
	if err != nil {
		return nil, err
	}
	a.NextMilestones = milestones
	return &a, nil
}

func (r *DevelopmentRepo) ListMilestones(ctx context.Context, artistID uuid.UUID) ([]models.Milestone, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, artist_id, title, description, target_date, probability, impact, status, requirements
		FROM milestones WHERE artist_id = $1
		ORDER BY target_date ASC NULLS LAST
	`, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		var m models.Milestone
		if err := rows.Scan(&m.ID, &m.ArtistID, &m.Title, &m.Description, &m.TargetDate,
			&m.Probability, &m.Impact, &m.Status, &m.Requirements); err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// UpdateMilestone sets a milestone's status and optionally appends operator
// notes to its description. Returns pgx.ErrNoRows for unknown ids.
func (r *DevelopmentRepo) UpdateMilestone(ctx context.Context, id uuid.UUID, status string, notes string) (*models.Milestone, error) {
	var m models.Milestone
	err := r.pool.QueryRow(ctx, `
		UPDATE milestones
		SET status = $1,
		    description = CASE WHEN $2 <> '' THEN description || ' - ' || $2 ELSE description END
		WHERE id = $3
		RETURNING id, artist_id, title, description, target_date, probability, impact, status, requirements
	`, status, notes, id).Scan(&m.ID, &m.ArtistID, &m.Title, &m.Description, &m.TargetDate,
		&m.Probability, &m.Impact, &m.Status, &m.Requirements)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *DevelopmentRepo) UpdateSocialReach(ctx context.Context, artistID uuid.UUID, reach int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE artist_analyses SET social_reach = $1, updated_at = now() WHERE artist_id = $2
	`, reach, artistID)
	return err
}

func (r *DevelopmentRepo) GetPlan(ctx context.Context, artistID uuid.UUID) (*models.DevelopmentPlan, error) {
	var p models.DevelopmentPlan
	var timelineJSON []byte
	err := r.pool.QueryRow(ctx, `
		SELECT artist_id, phase, duration_months, objectives, strategies, resources, timeline, success_metrics, updated_at
		FROM development_plans WHERE artist_id = $1
	`, artistID).Scan(&p.ArtistID, &p.Phase, &p.DurationMonths, &p.Objectives, &p.Strategies,
		&p.Resources, &timelineJSON, &p.SuccessMetrics, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(timelineJSON, &p.Timeline); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *DevelopmentRepo) UpsertPlan(ctx context.Context, p *models.DevelopmentPlan) error {
	timelineJSON, err := json.Marshal(p.Timeline)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO development_plans
			(artist_id, phase, duration_months, objectives, strategies, resources, timeline, success_metrics)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (artist_id) DO UPDATE SET
			phase = EXCLUDED.phase,
			duration_months = EXCLUDED.duration_months,
			objectives = EXCLUDED.objectives,
			strategies = EXCLUDED.strategies,
			resources = EXCLUDED.resources,
			timeline = EXCLUDED.timeline,
			success_metrics = EXCLUDED.success_metrics,
			updated_at = now()
		RETURNING updated_at
	`, p.ArtistID, p.Phase, p.DurationMonths, p.Objectives, p.Strategies,
		p.Resources, timelineJSON, p.SuccessMetrics).Scan(&p.UpdatedAt)
}
