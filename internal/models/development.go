package models

import (
	"time"

	"github.com/google/uuid"
)

// Career stages
const (
	StageEmerging    = "emerging"
	StageDeveloping  = "developing"
	StageEstablished = "established"
	StageVeteran     = "veteran"
)

// Growth trajectories
const (
	TrajectoryAscending = "ascending"
	TrajectoryStable    = "stable"
	TrajectoryDeclining = "declining"
)

// Milestone statuses
const (
	MilestoneStatusPending    = "pending"
	MilestoneStatusInProgress = "in_progress"
	MilestoneStatusCompleted  = "completed"
	MilestoneStatusCancelled  = "cancelled"
)

var validMilestoneStatuses = map[string]bool{
	MilestoneStatusPending:    true,
	MilestoneStatusInProgress: true,
	MilestoneStatusCompleted:  true,
	MilestoneStatusCancelled:  true,
}

func IsValidMilestoneStatus(s string) bool { return validMilestoneStatuses[s] }

// ArtistAnalysis is the career development assessment of a roster artist.
type ArtistAnalysis struct {
	ArtistID            uuid.UUID   `json:"artist_id"`
	ArtistName          string      `json:"artist_name"`
	CurrentStage        string      `json:"current_stage"`
	CareerScore         int         `json:"career_score"`
	GrowthTrajectory    string      `json:"growth_trajectory"`
	BreakoutProbability int         `json:"breakout_probability"`
	NextMilestones      []Milestone `json:"next_milestones"`
	StrengthAreas       []string    `json:"strength_areas"`
	ImprovementAreas    []string    `json:"improvement_areas"`
	MarketPosition      string      `json:"market_position"`
	ProjectedRevenue    int64       `json:"projected_revenue"`
	Recommendations     []string    `json:"recommendations"`
	SimilarArtists      []string    `json:"similar_artists"`
	SocialReach         int         `json:"social_reach"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

type Milestone struct {
	ID           uuid.UUID  `json:"id"`
	ArtistID     uuid.UUID  `json:"artist_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
	Probability  int        `json:"probability"`
	Impact       string     `json:"impact"`
	Status       string     `json:"status"`
	Requirements []string   `json:"requirements"`
}

// DevelopmentPlan is a phased growth plan generated from an artist's analysis.
type DevelopmentPlan struct {
	ArtistID       uuid.UUID   `json:"artist_id"`
	Phase          string      `json:"phase"`
	DurationMonths int         `json:"duration_months"`
	Objectives     []string    `json:"objectives"`
	Strategies     []string    `json:"strategies"`
	Resources      []string    `json:"resources"`
	Timeline       []PlanMonth `json:"timeline"`
	SuccessMetrics []string    `json:"success_metrics"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type PlanMonth struct {
	Month           int      `json:"month"`
	Milestones      []string `json:"milestones"`
	Focus           string   `json:"focus"`
	ExpectedOutcome string   `json:"expected_outcome"`
}

// TrajectoryPrediction projects an artist's career score over time.
type TrajectoryPrediction struct {
	ArtistID           uuid.UUID           `json:"artist_id"`
	CurrentScore       int                 `json:"current_score"`
	ProjectedScores    map[string]int      `json:"projected_scores"`
	KeyFactors         []string            `json:"key_factors"`
	Recommendations    []string            `json:"recommendations"`
	RiskFactors        []string            `json:"risk_factors"`
	OpportunityWindows []OpportunityWindow `json:"opportunity_windows"`
}

type OpportunityWindow struct {
	Period      string `json:"period"`
	Description string `json:"description"`
	Probability int    `json:"probability"`
}

// DevelopmentAnalytics aggregates the whole roster for the admin dashboard.
type DevelopmentAnalytics struct {
	TotalArtists               int            `json:"total_artists"`
	AverageCareerScore         int            `json:"average_career_score"`
	AverageBreakoutProbability int            `json:"average_breakout_probability"`
	TotalProjectedRevenue      int64          `json:"total_projected_revenue"`
	StageDistribution          map[string]int `json:"stage_distribution"`
	TrajectoryAnalysis         map[string]int `json:"trajectory_analysis"`
	HighPotentialArtists       int            `json:"high_potential_artists"`
	ActiveMilestones           int            `json:"active_milestones"`
	CompletedMilestones        int            `json:"completed_milestones"`
}
