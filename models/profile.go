package models

import "time"

type StudentProfile struct {
	ID string `json:"id"`

	// Required contact information
	Name  string `json:"name"`
	Email string `json:"email"`

	// Optional profile details
	Phone          string   `json:"phone,omitempty"`
	Location       string   `json:"location,omitempty"`
	EducationLevel string   `json:"education_level,omitempty"`
	FieldOfStudy   string   `json:"field_of_study,omitempty"`
	GPA            string   `json:"gpa,omitempty"`
	GraduationYear string   `json:"graduation_year,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Activities     string   `json:"activities,omitempty"`
	FinancialNeed  string   `json:"financial_need,omitempty"`

	// Free-text resume sections
	Summary    string `json:"summary,omitempty"`
	Education  string `json:"education,omitempty"`
	Experience string `json:"experience,omitempty"`
	Projects   string `json:"projects,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial update payload. Nil fields leave the existing
// value untouched; non-nil fields overwrite it.
type ProfileUpdate struct {
	Name           *string   `json:"name,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Location       *string   `json:"location,omitempty"`
	EducationLevel *string   `json:"education_level,omitempty"`
	FieldOfStudy   *string   `json:"field_of_study,omitempty"`
	GPA            *string   `json:"gpa,omitempty"`
	GraduationYear *string   `json:"graduation_year,omitempty"`
	Skills         *[]string `json:"skills,omitempty"`
	Activities     *string   `json:"activities,omitempty"`
	FinancialNeed  *string   `json:"financial_need,omitempty"`
	Summary        *string   `json:"summary,omitempty"`
	Education      *string   `json:"education,omitempty"`
	Experience     *string   `json:"experience,omitempty"`
	Projects       *string   `json:"projects,omitempty"`
}

// ApplyTo merges the update onto an existing profile, field-overwrite-if-present.
func (u *ProfileUpdate) ApplyTo(p *StudentProfile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.EducationLevel != nil {
		p.EducationLevel = *u.EducationLevel
	}
	if u.FieldOfStudy != nil {
		p.FieldOfStudy = *u.FieldOfStudy
	}
	if u.GPA != nil {
		p.GPA = *u.GPA
	}
	if u.GraduationYear != nil {
		p.GraduationYear = *u.GraduationYear
	}
	if u.Skills != nil {
		p.Skills = *u.Skills
	}
	if u.Activities != nil {
		p.Activities = *u.Activities
	}
	if u.FinancialNeed != nil {
		p.FinancialNeed = *u.FinancialNeed
	}
	if u.Summary != nil {
		p.Summary = *u.Summary
	}
	if u.Education != nil {
		p.Education = *u.Education
	}
	if u.Experience != nil {
		p.Experience = *u.Experience
	}
	if u.Projects != nil {
		p.Projects = *u.Projects
	}
}
