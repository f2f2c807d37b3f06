package models

import "time"

// Scholarship types as they appear in the catalog.
const (
	ScholarshipTypeMerit      = "merit-based"
	ScholarshipTypeNeed       = "need-based"
	ScholarshipTypeInternship = "internship"
)

type Scholarship struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Organization string `json:"organization"`

	// Display strings, never parsed
	Amount   string `json:"amount"`
	Deadline string `json:"deadline"`

	Description  string   `json:"description,omitempty"`
	Requirements string   `json:"requirements,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Type         string   `json:"type,omitempty"`

	// Optional eligibility criteria
	MinGPA         *float64 `json:"min_gpa,omitempty"`
	EligibleFields []string `json:"eligible_fields,omitempty"`
	EligibleLevels []string `json:"eligible_levels,omitempty"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`

	// Notes carries generated resume text when this record is used as a
	// resume row; ProfileID links that row back to its owner.
	Notes     string `json:"notes,omitempty"`
	ProfileID string `json:"profile_id,omitempty"`
}
