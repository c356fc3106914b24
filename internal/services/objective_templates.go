package services

import "github.com/waitumusic/backend/internal/models"

// objectiveTemplates is the read-only template catalog for quick objective
// creation. Defined at startup, never mutated.
var objectiveTemplates = []models.ObjectiveTemplate{
	{
		ID:       1,
		Name:     "Album Promotion Package",
		Category: "Marketing",
		Objectives: []models.TemplateObjective{
			{
				Title:             "Professional Photography",
				Description:       "High-resolution album artwork and promotional photos",
				Priority:          models.PriorityHigh,
				EstimatedDuration: "2-3 hours",
			},
			{
				Title:             "Behind-the-Scenes Video",
				Description:       "Documentary-style content for social media and press",
				Priority:          models.PriorityMedium,
				EstimatedDuration: "1-2 hours",
			},
			{
				Title:             "Social Media Content",
				Description:       "Instagram stories, TikTok videos, and Facebook posts",
				Priority:          models.PriorityHigh,
				EstimatedDuration: "Ongoing during event",
			},
		},
		ApplicableArtistTypes:  []string{"managed_artist", "artist"},
		ApplicableBookingTypes: []string{"album_release", "promotional"},
	},
	{
		ID:       2,
		Name:     "Live Performance Documentation",
		Category: "Content Creation",
		Objectives: []models.TemplateObjective{
			{
				Title:             "Multi-Camera Recording",
				Description:       "Professional multi-angle performance recording",
				Priority:          models.PriorityHigh,
				EstimatedDuration: "Full performance",
			},
			{
				Title:             "Audience Interaction Capture",
				Description:       "Document audience engagement and reactions",
				Priority:          models.PriorityMedium,
				EstimatedDuration: "Throughout event",
			},
			{
				Title:             "Sound Recording",
				Description:       "High-quality audio recording for potential release",
				Priority:          models.PriorityHigh,
				EstimatedDuration: "Full performance",
			},
		},
		ApplicableArtistTypes:  []string{"managed_artist", "managed_musician"},
		ApplicableBookingTypes: []string{"live_performance", "concert"},
	},
	{
		ID:       3,
		Name:     "Brand Development Focus",
		Category: "Strategic",
		Objectives: []models.TemplateObjective{
			{
				Title:             "Brand Consistency Documentation",
				Description:       "Ensure all content aligns with artist brand guidelines",
				Priority:          models.PriorityHigh,
				EstimatedDuration: "Throughout event",
			},
			{
				Title:             "Market Research",
				Description:       "Gather audience demographic and engagement data",
				Priority:          models.PriorityMedium,
				EstimatedDuration: "30 minutes",
			},
			{
				Title:             "Networking Opportunities",
				Description:       "Connect with industry professionals in attendance",
				Priority:          models.PriorityLow,
				EstimatedDuration: "Pre/post event",
			},
		},
		ApplicableArtistTypes:  []string{"managed_artist", "managed_musician", "managed_professional"},
		ApplicableBookingTypes: []string{"all"},
	},
}
