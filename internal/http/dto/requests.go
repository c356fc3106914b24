package dto

import (
	"time"

	"github.com/google/uuid"
)

// Auth

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

// Objectives

type CreateObjectiveRequest struct {
	BookingID            int64       `json:"booking_id"`
	ObjectiveType        string      `json:"objective_type"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Priority             string      `json:"priority,omitempty"`
	TargetDeadline       *time.Time  `json:"target_deadline,omitempty"`
	AssignedTo           *uuid.UUID  `json:"assigned_to,omitempty"`
	Tags                 []string    `json:"tags,omitempty"`
	RelatedProfessionals []uuid.UUID `json:"related_professionals,omitempty"`
}

type UpdateObjectiveStatusRequest struct {
	Status string `json:"status"`
}

type AutoGenerateRequest struct {
	BookingID           int64     `json:"booking_id"`
	ArtistUserID        uuid.UUID `json:"artist_user_id"`
	BookingType         string    `json:"booking_type"`
	ArtistManagedStatus bool      `json:"artist_managed_status"`
}

// Artists

type CreateArtistRequest struct {
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	StageName    string     `json:"stage_name"`
	Genre        string     `json:"genre"`
	Managed      bool       `json:"managed"`
	PressPageURL *string    `json:"press_page_url,omitempty"`
}

// Intelligence

type GeneratePlanRequest struct {
	ArtistID  uuid.UUID `json:"artist_id"`
	Timeframe string    `json:"timeframe"`
}

type UpdateMilestoneRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

type ScanPressKitRequest struct {
	URL string `json:"url"`
}
