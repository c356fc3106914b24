package models

import (
	"time"

	"github.com/google/uuid"
)

// Objective types
const (
	ObjectiveTypeMarketing   = "marketing"
	ObjectiveTypePhotography = "photography"
	ObjectiveTypeVideography = "videography"
	ObjectiveTypeSocialMedia = "social_media"
	ObjectiveTypeRevenue     = "revenue"
	ObjectiveTypeStrategic   = "strategic"
)

// Objective statuses. Any status may follow any other; there is no
// transition graph, only enum membership.
const (
	ObjectiveStatusPlanning   = "planning"
	ObjectiveStatusInProgress = "in_progress"
	ObjectiveStatusCompleted  = "completed"
	ObjectiveStatusCancelled  = "cancelled"
)

// Priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var validObjectiveTypes = map[string]bool{
	ObjectiveTypeMarketing:   true,
	ObjectiveTypePhotography: true,
	ObjectiveTypeVideography: true,
	ObjectiveTypeSocialMedia: true,
	ObjectiveTypeRevenue:     true,
	ObjectiveTypeStrategic:   true,
}

var validObjectiveStatuses = map[string]bool{
	ObjectiveStatusPlanning:   true,
	ObjectiveStatusInProgress: true,
	ObjectiveStatusCompleted:  true,
	ObjectiveStatusCancelled:  true,
}

var validPriorities = map[string]bool{
	PriorityHigh:   true,
	PriorityMedium: true,
	PriorityLow:    true,
}

func IsValidObjectiveType(t string) bool   { return validObjectiveTypes[t] }
func IsValidObjectiveStatus(s string) bool { return validObjectiveStatuses[s] }
func IsValidPriority(p string) bool        { return validPriorities[p] }

// InternalObjective is a confidential per-booking goal visible only to staff
// and managed talent, never to the booker who paid for the booking.
// BookingID references the external booking system and is never validated
// here.
type InternalObjective struct {
	ID                   uuid.UUID   `json:"id"`
	BookingID            int64       `json:"booking_id"`
	ObjectiveType        string      `json:"objective_type"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Priority             string      `json:"priority"`
	TargetDeadline       *time.Time  `json:"target_deadline,omitempty"`
	AssignedTo           *uuid.UUID  `json:"assigned_to,omitempty"`
	Status               string      `json:"status"`
	Confidential         bool        `json:"confidential"`
	CreatedBy            uuid.UUID   `json:"created_by"`
	Tags                 []string    `json:"tags"`
	RelatedProfessionals []uuid.UUID `json:"related_professionals"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// ObjectiveTemplate is a catalog entry for quick objective creation.
type ObjectiveTemplate struct {
	ID                     int                 `json:"id"`
	Name                   string              `json:"name"`
	Category               string              `json:"category"`
	Objectives             []TemplateObjective `json:"objectives"`
	ApplicableArtistTypes  []string            `json:"applicable_artist_types"`
	ApplicableBookingTypes []string            `json:"applicable_booking_types"`
}

type TemplateObjective struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	Priority          string `json:"priority"`
	EstimatedDuration string `json:"estimated_duration"`
}

// ObjectivesReport aggregates a booking's objectives for admin review.
type ObjectivesReport struct {
	TotalObjectives         int                     `json:"total_objectives"`
	CompletedObjectives     int                     `json:"completed_objectives"`
	InProgressObjectives    int                     `json:"in_progress_objectives"`
	PendingObjectives       int                     `json:"pending_objectives"`
	CompletionRate          float64                 `json:"completion_rate"`
	ProfessionalInvolvement ProfessionalInvolvement `json:"professional_involvement"`
	EstimatedROI            int                     `json:"estimated_roi"`
}

type ProfessionalInvolvement struct {
	Photographers          int `json:"photographers"`
	Videographers          int `json:"videographers"`
	MarketingSpecialists   int `json:"marketing_specialists"`
	SocialMediaSpecialists int `json:"social_media_specialists"`
}
