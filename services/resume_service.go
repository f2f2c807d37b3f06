package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/shared"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

// ResumeService triggers resume generation through an outbound webhook and
// serves the generated text back. The webhook call is fire-and-forget beyond
// an HTTP-success check; the resume text arrives asynchronously into the
// backend notes field of the profile's resume record and is picked up by a
// later read.
type ResumeService struct {
	Store      *store.Store
	WebhookURL string
	HTTP       *http.Client
}

func NewResumeService(s *store.Store, webhookURL string, httpClient *http.Client) *ResumeService {
	return &ResumeService{Store: s, WebhookURL: webhookURL, HTTP: httpClient}
}

// GenerateResume posts the profile fields to the webhook and ensures a resume
// record exists for the profile.
func (rs *ResumeService) GenerateResume(ctx context.Context, profileID string) (*models.Scholarship, error) {
	profile := rs.Store.GetProfile(ctx, profileID)
	if profile == nil {
		return nil, shared.NewNotFoundError("profile not found", "resume-service", "GenerateResume")
	}

	if rs.WebhookURL == "" {
		return nil, shared.NewServiceError(shared.ErrorCategoryIntegration, "WEBHOOK_UNCONFIGURED",
			"resume webhook is not configured", "resume-service", "GenerateResume", nil)
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return nil, shared.NewServiceError(shared.ErrorCategoryIntegration, "ENCODE_FAILED",
			"failed to encode profile payload", "resume-service", "GenerateResume", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rs.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return nil, shared.NewServiceError(shared.ErrorCategoryIntegration, "REQUEST_FAILED",
			"failed to build webhook request", "resume-service", "GenerateResume", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := rs.HTTP.Do(req)
	if err != nil {
		return nil, shared.NewServiceError(shared.ErrorCategoryIntegration, "WEBHOOK_FAILED",
			"resume webhook call failed", "resume-service", "GenerateResume", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, shared.NewServiceError(shared.ErrorCategoryIntegration, "WEBHOOK_FAILED",
			fmt.Sprintf("resume webhook returned status %d", resp.StatusCode), "resume-service", "GenerateResume", nil)
	}

	// The resume lives as a repurposed scholarship row: profile_id links it
	// to its owner, notes will carry the generated text once the webhook
	// writer delivers it.
	record := rs.Store.ResumeForProfile(ctx, profileID)
	if record == nil {
		created := rs.Store.CreateScholarship(ctx, models.Scholarship{
			Title:        "Resume - " + profile.Name,
			Organization: "ScholarMatch",
			ProfileID:    profileID,
			Active:       false,
		})
		record = &created
	}

	logrus.WithFields(logrus.Fields{
		"component":  "resume-service",
		"profile_id": profileID,
		"record_id":  record.ID,
	}).Info("Resume generation triggered")

	return record, nil
}

// FetchResume returns the resume text for a profile, empty while the webhook
// writer has not delivered it yet. A nil return means generation was never
// triggered.
func (rs *ResumeService) FetchResume(ctx context.Context, profileID string) *string {
	record := rs.Store.ResumeForProfile(ctx, profileID)
	if record == nil {
		return nil
	}
	text := record.Notes
	return &text
}

// ExportResume renders the profile's resume text as a downloadable document.
func (rs *ResumeService) ExportResume(ctx context.Context, profileID string) ([]byte, string, error) {
	profile := rs.Store.GetProfile(ctx, profileID)
	if profile == nil {
		return nil, "", shared.NewNotFoundError("profile not found", "resume-service", "ExportResume")
	}

	record := rs.Store.ResumeForProfile(ctx, profileID)
	if record == nil || record.Notes == "" {
		return nil, "", shared.NewNotFoundError("no resume generated for profile", "resume-service", "ExportResume")
	}

	contact := profile.Email
	if profile.Phone != "" {
		contact += " | " + profile.Phone
	}
	if profile.Location != "" {
		contact += " | " + profile.Location
	}

	doc, err := BuildResumeDocument(profile.Name, contact, record.Notes)
	if err != nil {
		return nil, "", shared.NewServiceError(shared.ErrorCategoryIntegration, "EXPORT_FAILED",
			"failed to build resume document", "resume-service", "ExportResume", err)
	}

	return doc, ResumeFilename(profile.Name), nil
}
