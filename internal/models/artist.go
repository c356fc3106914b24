package models

import (
	"time"

	"github.com/google/uuid"
)

// ArtistProfile is the roster entry the intelligence module analyzes.
// Managed artists get automatic booking objectives and periodic press-kit scans.
type ArtistProfile struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	StageName    string     `json:"stage_name"`
	Genre        string     `json:"genre"`
	Managed      bool       `json:"managed"`
	PressPageURL *string    `json:"press_page_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
