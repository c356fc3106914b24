package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/waitumusic/backend/internal/events"
	"github.com/waitumusic/backend/internal/models"
	"github.com/waitumusic/backend/internal/rbac"
	"go.uber.org/zap"
)

// DevelopmentStore is the persistence surface for artist development data.
// Satisfied by repositories.DevelopmentRepo.
type DevelopmentStore interface {
	ListAnalyses(ctx context.Context) ([]models.ArtistAnalysis, error)
	GetAnalysis(ctx context.Context, artistID uuid.UUID) (*models.ArtistAnalysis, error)
	UpdateMilestone(ctx context.Context, id uuid.UUID, status, notes string) (*models.Milestone, error)
	GetPlan(ctx context.Context, artistID uuid.UUID) (*models.DevelopmentPlan, error)
	UpsertPlan(ctx context.Context, p *models.DevelopmentPlan) error
}

type DevelopmentService struct {
	store     DevelopmentStore
	auditRepo AuditLogger
	publisher events.Publisher
	log       *zap.Logger
}

func NewDevelopmentService(store DevelopmentStore, auditRepo AuditLogger, publisher events.Publisher, log *zap.Logger) *DevelopmentService {
	return &DevelopmentService{
		store:     store,
		auditRepo: auditRepo,
		publisher: publisher,
		log:       log,
	}
}

var timeframeMonths = map[string]int{
	"3months": 3,
	"6months": 6,
	"1year":   12,
	"2years":  24,
}

// ListAnalyses returns the roster's career analyses with a small bounded
// scoring drift applied, so dashboards reflect day-to-day momentum instead of
// a frozen number.
func (s *DevelopmentService) ListAnalyses(ctx context.Context, actor Identity) ([]models.ArtistAnalysis, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermManageInternalObjectives) {
		return nil, ErrAccessDenied
	}

	analyses, err := s.store.ListAnalyses(ctx)
	if err != nil {
		return nil, err
	}
	for i := range analyses {
		analyses[i].CareerScore = jitterScore(analyses[i].CareerScore, 50, 100)
		analyses[i].BreakoutProbability = jitterScore(analyses[i].BreakoutProbability, 30, 100)
	}
	return analyses, nil
}

func (s *DevelopmentService) GetPlan(ctx context.Context, artistID uuid.UUID, actor Identity) (*models.DevelopmentPlan, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermManageInternalObjectives) {
		return nil, ErrAccessDenied
	}
	plan, err := s.store.GetPlan(ctx, artistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("development plan for artist %s: %w", artistID, ErrNotFound)
		}
		return nil, err
	}
	return plan, nil
}

// GeneratePlan derives a phased development plan from the artist's current
// analysis and stores it, replacing any previous plan.
func (s *DevelopmentService) GeneratePlan(ctx context.Context, artistID uuid.UUID, timeframe string, actor Identity) (*models.DevelopmentPlan, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermManageInternalObjectives) {
		return nil, ErrAccessDenied
	}

	analysis, err := s.store.GetAnalysis(ctx, artistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("artist %s: %w", artistID, ErrNotFound)
		}
		return nil, err
	}

	durationMonths, ok := timeframeMonths[timeframe]
	if !ok {
		durationMonths = 6
	}

	plan := &models.DevelopmentPlan{
		ArtistID:       artistID,
		Phase:          planPhase(analysis.CurrentStage),
		DurationMonths: durationMonths,
		Objectives: []string{
			fmt.Sprintf("Increase career score from %d to %d", analysis.CareerScore, min(100, analysis.CareerScore+15)),
			growthObjective(analysis.BreakoutProbability),
			"Complete next milestone objectives",
			"Build strategic industry relationships",
			"Expand revenue streams and opportunities",
		},
		Strategies: analysis.Recommendations[:min(4, len(analysis.Recommendations))],
		Resources: []string{
			"Professional development budget allocation",
			"Marketing and promotion campaigns",
			"Industry networking and relationship building",
			"Content creation and production resources",
			"Performance and touring opportunities",
		},
		Timeline: planTimeline(durationMonths, analysis.CurrentStage),
		SuccessMetrics: []string{
			fmt.Sprintf("Increase streaming performance by %d%%", 50+rand.IntN(100)),
			fmt.Sprintf("Achieve revenue target of $%d", int64(float64(analysis.ProjectedRevenue)*1.2)),
			"Complete all assigned milestone objectives",
			"Establish new industry partnerships",
			"Expand fanbase in target demographics",
		},
	}

	if err := s.store.UpsertPlan(ctx, plan); err != nil {
		return nil, err
	}

	s.auditDevelopment(ctx, actor, "development_plan_generated", artistID, map[string]any{
		"timeframe": timeframe,
		"phase":     plan.Phase,
	})

	return plan, nil
}

// UpdateMilestone sets a milestone's status, appending notes to its
// description when provided.
func (s *DevelopmentService) UpdateMilestone(ctx context.Context, milestoneID uuid.UUID, status, notes string, actor Identity) (*models.Milestone, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermManageInternalObjectives) {
		return nil, ErrAccessDenied
	}
	if !models.IsValidMilestoneStatus(status) {
		return nil, fmt.Errorf("%w: unknown milestone status %q", ErrValidation, status)
	}

	milestone, err := s.store.UpdateMilestone(ctx, milestoneID, status, notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("milestone %s: %w", milestoneID, ErrNotFound)
		}
		return nil, err
	}

	s.auditDevelopment(ctx, actor, "milestone_updated", milestone.ArtistID, map[string]any{
		"milestone_id": milestoneID.String(),
		"status":       status,
	})
	if s.publisher != nil {
		err := s.publisher.Publish(ctx, events.StreamObjectives, events.Event{
			Type: events.EventMilestoneUpdated,
			Payload: map[string]any{
				"milestone_id": milestoneID.String(),
				"artist_id":    milestone.ArtistID.String(),
				"status":       status,
			},
		})
		if err != nil {
			s.log.Warn("event publish failed", zap.Error(err))
		}
	}

	return milestone, nil
}

// Analytics aggregates the whole roster for the admin dashboard. Aggregation
// runs over stored scores without drift.
func (s *DevelopmentService) Analytics(ctx context.Context, actor Identity) (*models.DevelopmentAnalytics, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermManageInternalObjectives) {
		return nil, ErrAccessDenied
	}

	analyses, err := s.store.ListAnalyses(ctx)
	if err != nil {
		return nil, err
	}

	analytics := &models.DevelopmentAnalytics{
		TotalArtists: len(analyses),
		StageDistribution: map[string]int{
			models.StageEmerging:    0,
			models.StageDeveloping:  0,
			models.StageEstablished: 0,
			models.StageVeteran:     0,
		},
		TrajectoryAnalysis: map[string]int{
			models.TrajectoryAscending: 0,
			models.TrajectoryStable:    0,
			models.TrajectoryDeclining: 0,
		},
	}

	var scoreSum, probSum int
	for _, a := range analyses {
		scoreSum += a.CareerScore
		probSum += a.BreakoutProbability
		analytics.TotalProjectedRevenue += a.ProjectedRevenue
		analytics.StageDistribution[a.CurrentStage]++
		analytics.TrajectoryAnalysis[a.GrowthTrajectory]++
		if a.BreakoutProbability > 80 {
			analytics.HighPotentialArtists++
		}
		for _, m := range a.NextMilestones {
			switch m.Status {
			case models.MilestoneStatusInProgress:
				analytics.ActiveMilestones++
			case models.MilestoneStatusCompleted:
				analytics.CompletedMilestones++
			}
		}
	}
	if len(analyses) > 0 {
		analytics.AverageCareerScore = (scoreSum + len(analyses)/2) / len(analyses)
		analytics.AverageBreakoutProbability = (probSum + len(analyses)/2) / len(analyses)
	}

	return analytics, nil
}

// PredictTrajectory projects an artist's career score over three horizons.
func (s *DevelopmentService) PredictTrajectory(ctx context.Context, artistID uuid.UUID, actor Identity) (*models.TrajectoryPrediction, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermManageInternalObjectives) {
		return nil, ErrAccessDenied
	}

	analysis, err := s.store.GetAnalysis(ctx, artistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("artist %s: %w", artistID, ErrNotFound)
		}
		return nil, err
	}

	return &models.TrajectoryPrediction{
		ArtistID:     artistID,
		CurrentScore: analysis.CareerScore,
		ProjectedScores: map[string]int{
			"6months": min(100, analysis.CareerScore+rand.IntN(20)+5),
			"1year":   min(100, analysis.CareerScore+rand.IntN(30)+10),
			"2years":  min(100, analysis.CareerScore+rand.IntN(40)+15),
		},
		KeyFactors: []string{
			"Current momentum and growth trajectory",
			"Market demand for artist's genre",
			"Quality of recent releases and performances",
			"Industry connections and representation",
			"Fan engagement and social media presence",
		},
		Recommendations: analysis.Recommendations,
		RiskFactors: []string{
			"Market saturation in target genre",
			"Competition from established artists",
			"Economic factors affecting music industry",
			"Changes in consumer music preferences",
		},
		OpportunityWindows: []models.OpportunityWindow{
			{
				Period:      "Next 3 months",
				Description: "Optimal time for single release and festival bookings",
				Probability: 85,
			},
			{
				Period:      "6-12 months",
				Description: "Major label interest and international expansion",
				Probability: 70,
			},
			{
				Period:      "1-2 years",
				Description: "Breakthrough to mainstream recognition",
				Probability: analysis.BreakoutProbability,
			},
		},
	}, nil
}

func (s *DevelopmentService) auditDevelopment(ctx context.Context, actor Identity, action string, artistID uuid.UUID, meta map[string]any) {
	entry := models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorType:   "user",
		Action:      action,
		EntityType:  "artist_development",
		EntityID:    &artistID,
		Meta:        meta,
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		s.log.Warn("audit log failed", zap.String("action", action), zap.Error(err))
	}
}

// jitterScore applies a -3..+2 drift clamped to [lo, hi].
func jitterScore(score, lo, hi int) int {
	score += rand.IntN(6) - 3
	return max(lo, min(hi, score))
}

func planPhase(stage string) string {
	switch stage {
	case models.StageEmerging:
		return "Foundation Building"
	case models.StageDeveloping:
		return "Growth Acceleration"
	case models.StageEstablished:
		return "Market Expansion"
	default:
		return "Legacy Development"
	}
}

func growthObjective(breakoutProbability int) string {
	if breakoutProbability > 80 {
		return "Achieve breakthrough in target markets"
	}
	return "Achieve significant growth in target markets"
}

func planTimeline(durationMonths int, stage string) []models.PlanMonth {
	nextStage := models.StageDeveloping
	if stage != models.StageEmerging {
		nextStage = models.StageEstablished
	}

	months := min(durationMonths, 6)
	timeline := make([]models.PlanMonth, 0, months)
	for i := 0; i < months; i++ {
		focus := "Execution Phase"
		switch {
		case i == 0:
			focus = "Foundation Phase"
		case i < durationMonths/2:
			focus = "Development Phase"
		}
		timeline = append(timeline, models.PlanMonth{
			Month:           i + 1,
			Milestones:      []string{fmt.Sprintf("Month %d objectives", i+1), "Strategic activities", "Performance metrics review"},
			Focus:           focus,
			ExpectedOutcome: fmt.Sprintf("Progressive advancement toward %s status", nextStage),
		})
	}
	return timeline
}
