package store

import (
	"time"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/recordstore"
)

func floatPtr(v float64) *float64 { return &v }

var fallbackCreatedAt = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

// fallbackCatalog is the fixed sample catalog substituted whenever the
// backend is unavailable, empty, or returns data failing the validity check.
var fallbackCatalog = []models.Scholarship{
	{
		ID:             "fallback-stem-excellence",
		Title:          "STEM Excellence Scholarship",
		Organization:   "National Science Foundation",
		Amount:         "$10,000",
		Deadline:       "March 15, 2025",
		Description:    "Awarded to undergraduate students pursuing degrees in science, technology, engineering, or mathematics.",
		Requirements:   "Minimum 3.5 GPA, two letters of recommendation, 500-word essay.",
		Tags:           []string{"STEM", "undergraduate", "merit"},
		Type:           models.ScholarshipTypeMerit,
		MinGPA:         floatPtr(3.5),
		EligibleFields: []string{"Computer Science", "Engineering", "Mathematics", "Physics"},
		EligibleLevels: []string{"Undergraduate"},
		Active:         true,
		CreatedAt:      fallbackCreatedAt,
	},
	{
		ID:             "fallback-first-gen",
		Title:          "First Generation Achievers Grant",
		Organization:   "Bright Futures Foundation",
		Amount:         "$5,000",
		Deadline:       "April 30, 2025",
		Description:    "Supports first-generation college students with demonstrated financial need.",
		Requirements:   "FAFSA on file, personal statement describing family background.",
		Tags:           []string{"first-generation", "need-based"},
		Type:           models.ScholarshipTypeNeed,
		Active:         true,
		CreatedAt:      fallbackCreatedAt,
	},
	{
		ID:             "fallback-womenintech",
		Title:          "Women in Technology Award",
		Organization:   "TechForward Alliance",
		Amount:         "$7,500",
		Deadline:       "May 20, 2025",
		Description:    "Recognizes women pursuing computing and information-technology degrees.",
		Requirements:   "Enrolled in an accredited CS or IT program, portfolio or project submission.",
		Tags:           []string{"women", "technology", "diversity"},
		Type:           models.ScholarshipTypeMerit,
		MinGPA:         floatPtr(3.0),
		EligibleFields: []string{"Computer Science", "Information Technology"},
		EligibleLevels: []string{"Undergraduate", "Graduate"},
		Active:         true,
		CreatedAt:      fallbackCreatedAt,
	},
	{
		ID:             "fallback-community-service",
		Title:          "Community Service Leadership Scholarship",
		Organization:   "Civic Roots Trust",
		Amount:         "$3,000",
		Deadline:       "June 1, 2025",
		Description:    "For students with a sustained record of volunteer work and community leadership.",
		Requirements:   "100+ documented volunteer hours, reference from a community organization.",
		Tags:           []string{"community", "leadership", "service"},
		Type:           models.ScholarshipTypeMerit,
		Active:         true,
		CreatedAt:      fallbackCreatedAt,
	},
	{
		ID:             "fallback-summer-internship",
		Title:          "Global Research Summer Internship",
		Organization:   "Horizon Research Institute",
		Amount:         "$4,000 stipend",
		Deadline:       "February 28, 2025",
		Description:    "Paid summer research placement for students in the life sciences.",
		Requirements:   "Transcript, research interest statement, faculty endorsement.",
		Tags:           []string{"internship", "research", "summer"},
		Type:           models.ScholarshipTypeInternship,
		EligibleFields: []string{"Biology", "Chemistry", "Biomedical Engineering"},
		EligibleLevels: []string{"Undergraduate"},
		Active:         true,
		CreatedAt:      fallbackCreatedAt,
	},
	{
		ID:             "fallback-need-access",
		Title:          "Access to Education Fund",
		Organization:   "Open Door Charitable Trust",
		Amount:         "$2,500",
		Deadline:       "Rolling",
		Description:    "Need-based support for students facing financial hardship, any field of study.",
		Requirements:   "Statement of financial need, enrollment verification.",
		Tags:           []string{"need-based", "any-field"},
		Type:           models.ScholarshipTypeNeed,
		Active:         true,
		CreatedAt:      fallbackCreatedAt,
	},
}

// FallbackCatalog returns a copy of the hardcoded sample catalog so callers
// cannot mutate the canonical set.
func FallbackCatalog() []models.Scholarship {
	out := make([]models.Scholarship, len(fallbackCatalog))
	copy(out, fallbackCatalog)
	return out
}

// LooksLikeScholarshipData reports whether a backend listing looks like real
// scholarship data: the first record must carry a title and organization in
// either naming convention. An empty listing fails the check.
func LooksLikeScholarshipData(records []recordstore.Record) bool {
	if len(records) == 0 {
		return false
	}
	first := records[0].Fields
	return fieldString(first, "Title", "title") != "" &&
		fieldString(first, "Organization", "organization") != ""
}

// hasRealScholarship reports whether any mapped record carries a
// non-default title or organization.
func hasRealScholarship(scholarships []models.Scholarship) bool {
	for _, s := range scholarships {
		if s.Title != defaultScholarshipTitle || s.Organization != defaultOrganization {
			return true
		}
	}
	return false
}
