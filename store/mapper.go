package store

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/recordstore"
)

// The record backend carries two historical field-naming conventions:
// capitalized display names ("Title", "Education Level") and lowercase
// snake_case keys ("title", "education_level"). Every read tolerates both;
// writes use the lowercase convention.

// fieldString returns the first present key converted to a string.
func fieldString(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok || v == nil {
			continue
		}
		switch value := v.(type) {
		case string:
			return value
		case float64:
			return strconv.FormatFloat(value, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(value)
		}
	}
	return ""
}

// fieldFloat returns the first present key as a float, accepting native
// numbers and numeric strings.
func fieldFloat(fields map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok || v == nil {
			continue
		}
		switch value := v.(type) {
		case float64:
			return value, true
		case string:
			if parsed, err := strconv.ParseFloat(value, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

func fieldInt(fields map[string]any, keys ...string) int {
	f, ok := fieldFloat(fields, keys...)
	if !ok {
		return 0
	}
	return int(f)
}

func fieldBool(fields map[string]any, keys ...string) bool {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok || v == nil {
			continue
		}
		switch value := v.(type) {
		case bool:
			return value
		case string:
			if parsed, err := strconv.ParseBool(value); err == nil {
				return parsed
			}
		}
	}
	return false
}

// fieldStringList accepts a native list or a JSON-encoded string. A parse
// failure yields an empty list, never an error.
func fieldStringList(fields map[string]any, keys ...string) []string {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok || v == nil {
			continue
		}
		switch value := v.(type) {
		case []any:
			out := make([]string, 0, len(value))
			for _, item := range value {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return value
		case string:
			var out []string
			if err := json.Unmarshal([]byte(value), &out); err != nil {
				return []string{}
			}
			return out
		}
	}
	return nil
}

func fieldTime(fields map[string]any, fallback time.Time, keys ...string) time.Time {
	if raw := fieldString(fields, keys...); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			return parsed
		}
	}
	return fallback
}

// ProfileFromRecord maps a raw backend record to a typed profile.
func ProfileFromRecord(rec *recordstore.Record) models.StudentProfile {
	f := rec.Fields
	return models.StudentProfile{
		ID:             rec.ID,
		Name:           fieldString(f, "Name", "name"),
		Email:          fieldString(f, "Email", "email"),
		Phone:          fieldString(f, "Phone", "phone"),
		Location:       fieldString(f, "Location", "location"),
		EducationLevel: fieldString(f, "Education Level", "education_level"),
		FieldOfStudy:   fieldString(f, "Field Of Study", "field_of_study"),
		GPA:            fieldString(f, "GPA", "gpa"),
		GraduationYear: fieldString(f, "Graduation Year", "graduation_year"),
		Skills:         fieldStringList(f, "Skills", "skills"),
		Activities:     fieldString(f, "Activities", "activities"),
		FinancialNeed:  fieldString(f, "Financial Need", "financial_need"),
		Summary:        fieldString(f, "Summary", "summary"),
		Education:      fieldString(f, "Education", "education"),
		Experience:     fieldString(f, "Experience", "experience"),
		Projects:       fieldString(f, "Projects", "projects"),
		CreatedAt:      fieldTime(f, rec.CreatedTime, "Created At", "created_at"),
		UpdatedAt:      fieldTime(f, rec.CreatedTime, "Updated At", "updated_at"),
	}
}

// ProfileFields maps a profile to backend fields, lowercase convention.
func ProfileFields(p *models.StudentProfile) map[string]any {
	fields := map[string]any{
		"name":            p.Name,
		"email":           p.Email,
		"phone":           p.Phone,
		"location":        p.Location,
		"education_level": p.EducationLevel,
		"field_of_study":  p.FieldOfStudy,
		"gpa":             p.GPA,
		"graduation_year": p.GraduationYear,
		"activities":      p.Activities,
		"financial_need":  p.FinancialNeed,
		"summary":         p.Summary,
		"education":       p.Education,
		"experience":      p.Experience,
		"projects":        p.Projects,
		"created_at":      p.CreatedAt.Format(time.RFC3339),
		"updated_at":      p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Skills != nil {
		fields["skills"] = encodeList(p.Skills)
	}
	return fields
}

const (
	defaultScholarshipTitle = "Untitled Scholarship"
	defaultOrganization     = "Unknown Organization"
)

// ScholarshipFromRecord maps a raw backend record to a typed scholarship,
// substituting display defaults for missing fields.
func ScholarshipFromRecord(rec *recordstore.Record) models.Scholarship {
	f := rec.Fields

	title := fieldString(f, "Title", "title")
	if title == "" {
		title = defaultScholarshipTitle
	}
	organization := fieldString(f, "Organization", "organization")
	if organization == "" {
		organization = defaultOrganization
	}

	s := models.Scholarship{
		ID:             rec.ID,
		Title:          title,
		Organization:   organization,
		Amount:         fieldString(f, "Amount", "amount"),
		Deadline:       fieldString(f, "Deadline", "deadline"),
		Description:    fieldString(f, "Description", "description"),
		Requirements:   fieldString(f, "Requirements", "requirements"),
		Tags:           fieldStringList(f, "Tags", "tags"),
		Type:           fieldString(f, "Type", "type"),
		EligibleFields: fieldStringList(f, "Eligible Fields", "eligible_fields"),
		EligibleLevels: fieldStringList(f, "Eligible Levels", "eligible_levels"),
		Active:         fieldBool(f, "Active", "active"),
		CreatedAt:      fieldTime(f, rec.CreatedTime, "Created At", "created_at"),
		Notes:          fieldString(f, "Notes", "notes"),
		ProfileID:      fieldString(f, "Profile ID", "profile_id"),
	}
	if gpa, ok := fieldFloat(f, "Min GPA", "min_gpa"); ok {
		s.MinGPA = &gpa
	}
	return s
}

// ScholarshipFields maps a scholarship to backend fields, lowercase convention.
func ScholarshipFields(s *models.Scholarship) map[string]any {
	fields := map[string]any{
		"title":        s.Title,
		"organization": s.Organization,
		"amount":       s.Amount,
		"deadline":     s.Deadline,
		"description":  s.Description,
		"requirements": s.Requirements,
		"type":         s.Type,
		"active":       s.Active,
		"created_at":   s.CreatedAt.Format(time.RFC3339),
	}
	if s.Tags != nil {
		fields["tags"] = encodeList(s.Tags)
	}
	if s.EligibleFields != nil {
		fields["eligible_fields"] = encodeList(s.EligibleFields)
	}
	if s.EligibleLevels != nil {
		fields["eligible_levels"] = encodeList(s.EligibleLevels)
	}
	if s.MinGPA != nil {
		fields["min_gpa"] = *s.MinGPA
	}
	if s.Notes != "" {
		fields["notes"] = s.Notes
	}
	if s.ProfileID != "" {
		fields["profile_id"] = s.ProfileID
	}
	return fields
}

func MatchFromRecord(rec *recordstore.Record) models.ScholarshipMatch {
	f := rec.Fields
	status := fieldString(f, "Status", "status")
	if status == "" {
		status = models.MatchStatusNew
	}
	return models.ScholarshipMatch{
		ID:            rec.ID,
		ProfileID:     fieldString(f, "Profile ID", "profile_id"),
		ScholarshipID: fieldString(f, "Scholarship ID", "scholarship_id"),
		Score:         fieldInt(f, "Score", "score"),
		Reasoning:     fieldString(f, "Reasoning", "reasoning"),
		Status:        status,
		CreatedAt:     fieldTime(f, rec.CreatedTime, "Created At", "created_at"),
	}
}

func MatchFields(m *models.ScholarshipMatch) map[string]any {
	return map[string]any{
		"profile_id":     m.ProfileID,
		"scholarship_id": m.ScholarshipID,
		"score":          m.Score,
		"reasoning":      m.Reasoning,
		"status":         m.Status,
		"created_at":     m.CreatedAt.Format(time.RFC3339),
	}
}

func GuidanceFromRecord(rec *recordstore.Record) models.ApplicationGuidance {
	f := rec.Fields
	return models.ApplicationGuidance{
		ID:            rec.ID,
		ProfileID:     fieldString(f, "Profile ID", "profile_id"),
		ScholarshipID: fieldString(f, "Scholarship ID", "scholarship_id"),
		EssayTips:     fieldString(f, "Essay Tips", "essay_tips"),
		Checklist:     fieldString(f, "Checklist", "checklist"),
		Improvements:  fieldString(f, "Improvements", "improvements"),
		CreatedAt:     fieldTime(f, rec.CreatedTime, "Created At", "created_at"),
	}
}

func GuidanceFields(g *models.ApplicationGuidance) map[string]any {
	return map[string]any{
		"profile_id":     g.ProfileID,
		"scholarship_id": g.ScholarshipID,
		"essay_tips":     g.EssayTips,
		"checklist":      g.Checklist,
		"improvements":   g.Improvements,
		"created_at":     g.CreatedAt.Format(time.RFC3339),
	}
}

func ApplicationFromRecord(rec *recordstore.Record) models.ScholarshipApplication {
	f := rec.Fields
	status := fieldString(f, "Status", "status")
	if status == "" {
		status = models.ApplicationStatusPending
	}
	return models.ScholarshipApplication{
		ID:            rec.ID,
		ProfileID:     fieldString(f, "Profile ID", "profile_id"),
		ScholarshipID: fieldString(f, "Scholarship ID", "scholarship_id"),
		Documents:     fieldStringList(f, "Documents", "documents"),
		Status:        status,
		AppliedAt:     fieldTime(f, rec.CreatedTime, "Applied At", "applied_at"),
	}
}

func ApplicationFields(a *models.ScholarshipApplication) map[string]any {
	return map[string]any{
		"profile_id":     a.ProfileID,
		"scholarship_id": a.ScholarshipID,
		"documents":      encodeList(a.Documents),
		"status":         a.Status,
		"applied_at":     a.AppliedAt.Format(time.RFC3339),
	}
}

// encodeList stores list fields as JSON-encoded strings, matching the older
// write convention the mapper tolerates on reads.
func encodeList(items []string) string {
	encoded, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
