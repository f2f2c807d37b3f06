package models

import "time"

const MatchStatusNew = "new"

type ScholarshipMatch struct {
	ID            string    `json:"id"`
	ProfileID     string    `json:"profile_id"`
	ScholarshipID string    `json:"scholarship_id"`
	Score         int       `json:"score"`
	Reasoning     string    `json:"reasoning,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
