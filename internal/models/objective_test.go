package models

import "testing"

func TestIsValidObjectiveType(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{ObjectiveTypeMarketing, true},
		{ObjectiveTypePhotography, true},
		{ObjectiveTypeVideography, true},
		{ObjectiveTypeSocialMedia, true},
		{ObjectiveTypeRevenue, true},
		{ObjectiveTypeStrategic, true},
		{"", false},
		{"networking", false},
		{"Marketing", false},
		{"social media", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidObjectiveType(tt.input); got != tt.expected {
				t.Errorf("IsValidObjectiveType(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidObjectiveStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{ObjectiveStatusPlanning, true},
		{ObjectiveStatusInProgress, true},
		{ObjectiveStatusCompleted, true},
		{ObjectiveStatusCancelled, true},
		{"", false},
		{"done", false},
		{"in-progress", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidObjectiveStatus(tt.input); got != tt.expected {
				t.Errorf("IsValidObjectiveStatus(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidPriority(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{PriorityHigh, true},
		{PriorityMedium, true},
		{PriorityLow, true},
		{"", false},
		{"urgent", false},
		{"High", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidPriority(tt.input); got != tt.expected {
				t.Errorf("IsValidPriority(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidMilestoneStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{MilestoneStatusPending, true},
		{MilestoneStatusInProgress, true},
		{MilestoneStatusCompleted, true},
		{MilestoneStatusCancelled, true},
		{"", false},
		{"paused", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidMilestoneStatus(tt.input); got != tt.expected {
				t.Errorf("IsValidMilestoneStatus(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
