package dto

import "github.com/waitumusic/backend/internal/models"

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

type ObjectivesResponse struct {
	Success    bool                       `json:"success"`
	Objectives []models.InternalObjective `json:"objectives"`
	Message    string                     `json:"message,omitempty"`
	Note       string                     `json:"note,omitempty"`
}

type ObjectiveResponse struct {
	Success   bool                      `json:"success"`
	Objective *models.InternalObjective `json:"objective"`
	Message   string                    `json:"message,omitempty"`
}

type TemplatesResponse struct {
	Success   bool                       `json:"success"`
	Templates []models.ObjectiveTemplate `json:"templates"`
}

type ReportResponse struct {
	Success   bool                     `json:"success"`
	Report    *models.ObjectivesReport `json:"report"`
	BookingID int64                    `json:"booking_id"`
}

type PlanResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message,omitempty"`
	Plan    *models.DevelopmentPlan `json:"plan"`
}

type MilestoneResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Milestone *models.Milestone `json:"milestone,omitempty"`
}
