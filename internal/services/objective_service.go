package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/waitumusic/backend/internal/events"
	"github.com/waitumusic/backend/internal/models"
	"github.com/waitumusic/backend/internal/rbac"
	"go.uber.org/zap"
)

var (
	ErrAccessDenied = errors.New("access denied: internal objectives are confidential")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
)

// Identity is the caller on whose behalf a service operation runs. Services
// never synthesize privileged identities internally.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// ObjectiveStore is the persistence surface the service needs. Satisfied by
// repositories.ObjectiveRepo.
type ObjectiveStore interface {
	Create(ctx context.Context, o *models.InternalObjective) error
	CreateBatch(ctx context.Context, objectives []*models.InternalObjective) error
	SeedBooking(ctx context.Context, bookingID int64, objectives []*models.InternalObjective) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.InternalObjective, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]models.InternalObjective, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.InternalObjective, error)
}

type AuditLogger interface {
	Log(ctx context.Context, entry models.AuditLog) error
}

// Estimated dollar value contributed per objective type, used for report ROI.
var objectiveValueWeights = map[string]int{
	models.ObjectiveTypePhotography: 500,
	models.ObjectiveTypeVideography: 1000,
	models.ObjectiveTypeSocialMedia: 300,
	models.ObjectiveTypeMarketing:   750,
	models.ObjectiveTypeRevenue:     1000,
	models.ObjectiveTypeStrategic:   200,
}

type ObjectiveService struct {
	store     ObjectiveStore
	auditRepo AuditLogger
	publisher events.Publisher
	log       *zap.Logger
}

func NewObjectiveService(store ObjectiveStore, auditRepo AuditLogger, publisher events.Publisher, log *zap.Logger) *ObjectiveService {
	return &ObjectiveService{
		store:     store,
		auditRepo: auditRepo,
		publisher: publisher,
		log:       log,
	}
}

// ListForBooking returns a booking's confidential objectives. A booking that
// has none yet is seeded with the standard internal plan on first access, so
// repeat reads are stable.
func (s *ObjectiveService) ListForBooking(ctx context.Context, bookingID int64, actor Identity) ([]models.InternalObjective, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermManageInternalObjectives) {
		return nil, ErrAccessDenied
	}

	objectives, err := s.store.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if len(objectives) > 0 {
		return objectives, nil
	}

	seeded, err := s.store.SeedBooking(ctx, bookingID, standardObjectivePlan(bookingID, actor.UserID))
	if err != nil {
		return nil, err
	}
	if seeded {
		s.log.Info("standard objective plan seeded",
			zap.Int64("booking_id", bookingID),
			zap.String("seeded_by", actor.UserID.String()))
	}
	return s.store.ListByBooking(ctx, bookingID)
}

type CreateObjectiveInput struct {
	BookingID            int64
	ObjectiveType        string
	Title                string
	Description          string
	Priority             string
	TargetDeadline       *time.Time
	AssignedTo           *uuid.UUID
	Tags                 []string
	RelatedProfessionals []uuid.UUID
}

// Create persists a new objective. Confidential is forced true regardless of
// input; objectives are never visible to bookers.
func (s *ObjectiveService) Create(ctx context.Context, input CreateObjectiveInput, actor Identity) (*models.InternalObjective, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermManageInternalObjectives) {
		return nil, ErrAccessDenied
	}
	if !models.IsValidObjectiveType(input.ObjectiveType) {
		return nil, fmt.Errorf("%w: unknown objective type %q", ErrValidation, input.ObjectiveType)
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !models.IsValidPriority(input.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, input.Priority)
	}

	objective := &models.InternalObjective{
		BookingID:            input.BookingID,
		ObjectiveType:        input.ObjectiveType,
		Title:                input.Title,
		Description:          input.Description,
		Priority:             input.Priority,
		TargetDeadline:       input.TargetDeadline,
		AssignedTo:           input.AssignedTo,
		Status:               models.ObjectiveStatusPlanning,
		Confidential:         true,
		CreatedBy:            actor.UserID,
		Tags:                 input.Tags,
		RelatedProfessionals: input.RelatedProfessionals,
	}

	if err := s.store.Create(ctx, objective); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, "objective_created", objective.ID, map[string]any{
		"booking_id":     objective.BookingID,
		"objective_type": objective.ObjectiveType,
	})
	s.publish(ctx, events.EventObjectiveCreated, map[string]any{
		"objective_id": objective.ID.String(),
		"booking_id":   objective.BookingID,
		"title":        objective.Title,
	})

	return objective, nil
}

// UpdateStatus moves an objective to a new status. Any status can follow any
// other; only enum membership is validated.
func (s *ObjectiveService) UpdateStatus(ctx context.Context, objectiveID uuid.UUID, newStatus string, actor Identity) (*models.InternalObjective, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermManageInternalObjectives) {
		return nil, ErrAccessDenied
	}
	if !models.IsValidObjectiveStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	objective, err := s.store.UpdateStatus(ctx, objectiveID, newStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("objective %s: %w", objectiveID, ErrNotFound)
		}
		return nil, err
	}

	s.audit(ctx, actor, "objective_status_changed", objective.ID, map[string]any{
		"booking_id": objective.BookingID,
		"status":     newStatus,
	})
	s.publish(ctx, events.EventObjectiveStatusChanged, map[string]any{
		"objective_id": objective.ID.String(),
		"booking_id":   objective.BookingID,
		"status":       newStatus,
	})

	return objective, nil
}

// Templates returns the static template catalog. Any authenticated caller may
// read it; the route layer enforces authentication.
func (s *ObjectiveService) Templates() []models.ObjectiveTemplate {
	return objectiveTemplates
}

// AutoGenerate creates the standard set of three objectives for a managed
// artist's booking. Non-managed artists get none.
func (s *ObjectiveService) AutoGenerate(ctx context.Context, bookingID int64, artistUserID uuid.UUID, bookingType string, artistManaged bool, actor Identity) ([]models.InternalObjective, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermManageInternalObjectives) {
		return nil, ErrAccessDenied
	}
	if !artistManaged {
		return []models.InternalObjective{}, nil
	}

	generated := []*models.InternalObjective{
		{
			BookingID:     bookingID,
			ObjectiveType: models.ObjectiveTypePhotography,
			Title:         "Professional Documentation",
			Description:   "Capture professional-quality images of the performance for press kit and promotional use",
			Priority:      models.PriorityHigh,
			Status:        models.ObjectiveStatusPlanning,
			Confidential:  true,
			CreatedBy:     actor.UserID,
			Tags:          []string{"documentation", "professional", "press_kit"},
		},
		{
			BookingID:     bookingID,
			ObjectiveType: models.ObjectiveTypeSocialMedia,
			Title:         "Social Media Content Generation",
			Description:   "Create engaging social media content during the event to maintain online presence and fan engagement",
			Priority:      models.PriorityMedium,
			Status:        models.ObjectiveStatusPlanning,
			Confidential:  true,
			CreatedBy:     actor.UserID,
			Tags:          []string{"social_media", "engagement", "content"},
		},
		{
			BookingID:     bookingID,
			ObjectiveType: models.ObjectiveTypeRevenue,
			Title:         "Revenue Optimization",
			Description:   "Maximize revenue opportunities through merchandise sales and future booking lead generation",
			Priority:      models.PriorityMedium,
			Status:        models.ObjectiveStatusPlanning,
			Confidential:  true,
			CreatedBy:     actor.UserID,
			Tags:          []string{"revenue", "merchandise", "leads"},
		},
	}

	if err := s.store.CreateBatch(ctx, generated); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, "objectives_auto_generated", uuid.Nil, map[string]any{
		"booking_id":     bookingID,
		"artist_user_id": artistUserID.String(),
		"booking_type":   bookingType,
		"count":          len(generated),
	})
	s.publish(ctx, events.EventObjectivesAutoGenerated, map[string]any{
		"booking_id": bookingID,
		"count":      len(generated),
	})

	out := make([]models.InternalObjective, len(generated))
	for i, o := range generated {
		out[i] = *o
	}
	return out, nil
}

// Report aggregates a booking's objectives. Runs under the caller's own
// identity and requires the report permission at this layer too, not just at
// the route.
func (s *ObjectiveService) Report(ctx context.Context, bookingID int64, actor Identity) (*models.ObjectivesReport, error) {
	if !rbac.HasPermission(actor.Role, rbac.PermViewObjectiveReports) {
		return nil, ErrAccessDenied
	}

	objectives, err := s.ListForBooking(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}

	report := &models.ObjectivesReport{TotalObjectives: len(objectives)}
	for _, o := range objectives {
		switch o.Status {
		case models.ObjectiveStatusCompleted:
			report.CompletedObjectives++
		case models.ObjectiveStatusInProgress:
			report.InProgressObjectives++
		case models.ObjectiveStatusPlanning:
			report.PendingObjectives++
		}
		switch o.ObjectiveType {
		case models.ObjectiveTypePhotography:
			report.ProfessionalInvolvement.Photographers++
		case models.ObjectiveTypeVideography:
			report.ProfessionalInvolvement.Videographers++
		case models.ObjectiveTypeMarketing:
			report.ProfessionalInvolvement.MarketingSpecialists++
		case models.ObjectiveTypeSocialMedia:
			report.ProfessionalInvolvement.SocialMediaSpecialists++
		}
		report.EstimatedROI += objectiveValueWeights[o.ObjectiveType]
	}
	if report.TotalObjectives > 0 {
		report.CompletionRate = float64(report.CompletedObjectives) / float64(report.TotalObjectives) * 100
	}

	return report, nil
}

func (s *ObjectiveService) audit(ctx context.Context, actor Identity, action string, entityID uuid.UUID, meta map[string]any) {
	entry := models.AuditLog{
		ActorUserID: &actor.UserID,
		ActorType:   "user",
		Action:      action,
		EntityType:  "internal_objective",
		Meta:        meta,
	}
	if entityID != uuid.Nil {
		entry.EntityID = &entityID
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		s.log.Warn("audit log failed", zap.String("action", action), zap.Error(err))
	}
}

func (s *ObjectiveService) publish(ctx context.Context, eventType string, payload map[string]any) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, events.StreamObjectives, events.Event{Type: eventType, Payload: payload})
	if err != nil {
		s.log.Warn("event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}

// standardObjectivePlan is the five-objective internal plan every booking
// starts with.
func standardObjectivePlan(bookingID int64, createdBy uuid.UUID) []*models.InternalObjective {
	deadline := func(days int) *time.Time {
		t := time.Now().AddDate(0, 0, days)
		return &t
	}

	return []*models.InternalObjective{
		{
			BookingID:      bookingID,
			ObjectiveType:  models.ObjectiveTypePhotography,
			Title:          "Album Artwork Photography",
			Description:    "Capture high-resolution images suitable for album artwork and promotional materials. Focus on artistic shots that reflect the artist's brand and music style.",
			Priority:       models.PriorityHigh,
			TargetDeadline: deadline(7),
			Status:         models.ObjectiveStatusPlanning,
			Confidential:   true,
			CreatedBy:      createdBy,
			Tags:           []string{"album", "artwork", "promotional", "brand"},
		},
		{
			BookingID:      bookingID,
			ObjectiveType:  models.ObjectiveTypeSocialMedia,
			Title:          "Instagram/TikTok Content Creation",
			Description:    "Generate social media content during the performance for Instagram Stories, TikTok videos, and Facebook posts. Focus on behind-the-scenes content and audience engagement moments.",
			Priority:       models.PriorityMedium,
			TargetDeadline: deadline(3),
			Status:         models.ObjectiveStatusPlanning,
			Confidential:   true,
			CreatedBy:      createdBy,
			Tags:           []string{"social_media", "instagram", "tiktok", "engagement"},
		},
		{
			BookingID:      bookingID,
			ObjectiveType:  models.ObjectiveTypeVideography,
			Title:          "Performance Documentation",
			Description:    "Record full performance for potential music video content and promotional use. Capture multiple angles and audience reactions for comprehensive coverage.",
			Priority:       models.PriorityHigh,
			TargetDeadline: deadline(5),
			Status:         models.ObjectiveStatusPlanning,
			Confidential:   true,
			CreatedBy:      createdBy,
			Tags:           []string{"video", "performance", "documentation", "promotional"},
		},
		{
			BookingID:     bookingID,
			ObjectiveType: models.ObjectiveTypeRevenue,
			Title:         "Merchandise Sales Opportunity",
			Description:   "Set up merchandise booth during event to maximize revenue from physical product sales. Target $500+ in merchandise revenue.",
			Priority:      models.PriorityMedium,
			Status:        models.ObjectiveStatusPlanning,
			Confidential:  true,
			CreatedBy:     createdBy,
			Tags:          []string{"merchandise", "revenue", "sales"},
		},
		{
			BookingID:     bookingID,
			ObjectiveType: models.ObjectiveTypeStrategic,
			Title:         "Industry Network Building",
			Description:   "Identify and connect with industry professionals in attendance. Focus on potential collaboration opportunities and future booking contacts.",
			Priority:      models.PriorityLow,
			Status:        models.ObjectiveStatusPlanning,
			Confidential:  true,
			CreatedBy:     createdBy,
			Tags:          []string{"networking", "industry", "collaboration"},
		},
	}
}
