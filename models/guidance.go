package models

import "time"

// ApplicationGuidance carries essay tips and checklists for an application.
// Consultation bookings are persisted with the same record type: the
// counselor name and paid amount are encoded into the free-text fields.
type ApplicationGuidance struct {
	ID            string    `json:"id"`
	ProfileID     string    `json:"profile_id"`
	ScholarshipID string    `json:"scholarship_id,omitempty"`
	EssayTips     string    `json:"essay_tips,omitempty"`
	Checklist     string    `json:"checklist,omitempty"`
	Improvements  string    `json:"improvements,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
