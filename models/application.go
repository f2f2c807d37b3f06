package models

import (
	"strings"
	"time"
)

const ApplicationStatusPending = "pending"

// InvalidDocuments returns the documents that fail the case-insensitive
// ".pdf" suffix check. The check is all-or-nothing: one offender rejects the
// whole application.
func InvalidDocuments(documents []string) []string {
	var invalid []string
	for _, doc := range documents {
		if !strings.HasSuffix(strings.ToLower(doc), ".pdf") {
			invalid = append(invalid, doc)
		}
	}
	return invalid
}

type ScholarshipApplication struct {
	ID            string    `json:"id"`
	ProfileID     string    `json:"profile_id"`
	ScholarshipID string    `json:"scholarship_id"`
	Documents     []string  `json:"documents"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
}

// ApplicationRequest is the create-application payload.
type ApplicationRequest struct {
	ProfileID     string   `json:"profile_id"`
	ScholarshipID string   `json:"scholarship_id"`
	Documents     []string `json:"documents"`
}

// BookingRequest is the consultation booking payload. Payment is simulated;
// the amount is recorded, never charged.
type BookingRequest struct {
	ProfileID string `json:"profile_id"`
	Counselor string `json:"counselor"`
	Amount    string `json:"amount"`
	Slot      string `json:"slot,omitempty"`
}
