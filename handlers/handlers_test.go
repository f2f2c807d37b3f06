package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/services"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

// newTestApp wires a cache-only stack behind the same routes main registers.
func newTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()

	s := store.NewStore(nil)
	matchService := services.NewMatchService(s)
	guidanceService := services.NewGuidanceService(s)
	bookingService := services.NewBookingService(s, time.Millisecond)
	resumeService := services.NewResumeService(s, "", http.DefaultClient)

	profileHandler := NewProfileHandler(s)
	scholarshipHandler := NewScholarshipHandler(s)
	matchHandler := NewMatchHandler(matchService, s)
	guidanceHandler := NewGuidanceHandler(guidanceService, s)
	applicationHandler := NewApplicationHandler(s)
	consultationHandler := NewConsultationHandler(bookingService)
	resumeHandler := NewResumeHandler(resumeService)

	app := fiber.New()
	api := app.Group("/api/v1")

	api.Post("/profiles", profileHandler.CreateProfile)
	api.Get("/profiles/:id", profileHandler.GetProfile)
	api.Put("/profiles/:id", profileHandler.UpdateProfile)
	api.Get("/profiles/:id/matches", matchHandler.GetMatchesForProfile)

	api.Get("/scholarships", scholarshipHandler.ListScholarships)
	api.Get("/scholarships/:id", scholarshipHandler.GetScholarship)
	api.Post("/scholarships", scholarshipHandler.CreateScholarship)
	api.Delete("/scholarships", scholarshipHandler.ClearScholarships)

	api.Post("/matches/generate", matchHandler.GenerateMatches)
	api.Put("/matches/:id/status", matchHandler.UpdateMatchStatus)

	api.Post("/guidance", guidanceHandler.CreateGuidance)
	api.Get("/guidance/:id", guidanceHandler.GetGuidance)

	api.Post("/applications", applicationHandler.CreateApplication)
	api.Get("/applications/:id", applicationHandler.GetApplication)

	api.Post("/consultations", consultationHandler.BookConsultation)

	api.Post("/resume/generate", resumeHandler.GenerateResume)
	api.Get("/resume/:profile_id", resumeHandler.GetResume)
	api.Get("/resume/:profile_id/download", resumeHandler.DownloadResume)

	return app, s
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body io.Reader
	if payload != nil {
		encoded, _ := json.Marshal(payload)
		body = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	return env
}

func createTestProfile(t *testing.T, app *fiber.App) models.StudentProfile {
	t.Helper()
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/profiles", fiber.Map{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var profile models.StudentProfile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	return profile
}

func TestCreateProfileEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	profile := createTestProfile(t, app)

	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, profile.CreatedAt, profile.UpdatedAt)
}

func TestCreateProfileMissingRequiredFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/profiles", fiber.Map{
		"name": "No Email",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "email")
}

func TestGetProfileNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/profiles/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateProfileEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	profile := createTestProfile(t, app)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/profiles/"+profile.ID, fiber.Map{
		"location": "Boston, MA",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var updated models.StudentProfile
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Boston, MA", updated.Location)
	assert.Equal(t, "Jane Doe", updated.Name, "omitted fields survive the update")
}

func TestListScholarshipsServesCatalog(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/scholarships", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var scholarships []models.Scholarship
	require.NoError(t, json.Unmarshal(env.Data, &scholarships))
	assert.Len(t, scholarships, 6)
}

func TestListScholarshipsFilters(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/scholarships?type=need-based", nil))
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	var byType []models.Scholarship
	require.NoError(t, json.Unmarshal(env.Data, &byType))
	require.NotEmpty(t, byType)
	for _, sc := range byType {
		assert.Equal(t, models.ScholarshipTypeNeed, sc.Type)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/scholarships?q=women", nil))
	require.NoError(t, err)
	env = decodeEnvelope(t, resp)
	var byQuery []models.Scholarship
	require.NoError(t, json.Unmarshal(env.Data, &byQuery))
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Women in Technology Award", byQuery[0].Title)
}

func TestGetScholarshipByFallbackID(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/scholarships/fallback-stem-excellence", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/scholarships/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClearScholarshipsWithoutBackend(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/scholarships", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGenerateMatchesEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	profile := createTestProfile(t, app)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/matches/generate", fiber.Map{
		"profile_id": profile.ID,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var matches []models.ScholarshipMatch
	require.NoError(t, json.Unmarshal(env.Data, &matches))
	require.Len(t, matches, 6)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Score, 60)
		assert.LessOrEqual(t, m.Score, 100)
		assert.Equal(t, models.MatchStatusNew, m.Status)
	}
}

func TestGenerateMatchesUnknownProfileEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/matches/generate", fiber.Map{
		"profile_id": "nope",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateMatchStatusEndpoint(t *testing.T) {
	app, s := newTestApp(t)
	profile := createTestProfile(t, app)

	batch := s.ReplaceMatches(context.Background(), profile.ID, []models.ScholarshipMatch{
		{ProfileID: profile.ID, ScholarshipID: "fallback-stem-excellence", Score: 80, Status: models.MatchStatusNew},
	})

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/matches/"+batch[0].ID+"/status", fiber.Map{
		"status": "saved",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPut, "/api/v1/matches/nope/status", fiber.Map{
		"status": "saved",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateApplicationRejectsNonPDF(t *testing.T) {
	app, s := newTestApp(t)
	profile := createTestProfile(t, app)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/applications", fiber.Map{
		"profile_id":     profile.ID,
		"scholarship_id": "fallback-stem-excellence",
		"documents":      []string{"transcript.pdf", "photo.jpg"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Contains(t, env.Error, "photo.jpg", "the offending document is named")

	// All-or-nothing: nothing was persisted for the rejected request.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/v1/applications", fiber.Map{
		"profile_id":     profile.ID,
		"scholarship_id": "fallback-stem-excellence",
		"documents":      []string{"Transcript.PDF", "essay.pdf"},
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	env = decodeEnvelope(t, resp)
	var created models.ScholarshipApplication
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, models.ApplicationStatusPending, created.Status)

	stored := s.GetApplication(context.Background(), created.ID)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"Transcript.PDF", "essay.pdf"}, stored.Documents)
}

func TestCreateApplicationRequiresDocuments(t *testing.T) {
	app, _ := newTestApp(t)
	profile := createTestProfile(t, app)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/applications", fiber.Map{
		"profile_id":     profile.ID,
		"scholarship_id": "fallback-stem-excellence",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateGuidanceEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	profile := createTestProfile(t, app)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/guidance", fiber.Map{
		"profile_id":     profile.ID,
		"scholarship_id": "fallback-stem-excellence",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var guidance models.ApplicationGuidance
	require.NoError(t, json.Unmarshal(env.Data, &guidance))
	assert.NotEmpty(t, guidance.EssayTips, "empty fields are filled with placeholders")
	assert.NotEmpty(t, guidance.Checklist)
	assert.NotEmpty(t, guidance.Improvements)
}

func TestBookConsultationEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	profile := createTestProfile(t, app)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/consultations", fiber.Map{
		"profile_id": profile.ID,
		"counselor":  "Dr. Reed",
		"amount":     "$49.99",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "Consultation booked, payment processed", env.Message)

	var booking models.ApplicationGuidance
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, "Consultation booked with Dr. Reed", booking.EssayTips)
	assert.Equal(t, "Amount paid: $49.99", booking.Checklist)
}

func TestBookConsultationRequiresCounselor(t *testing.T) {
	app, _ := newTestApp(t)
	profile := createTestProfile(t, app)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/consultations", fiber.Map{
		"profile_id": profile.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateResumeUnconfiguredWebhookEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	profile := createTestProfile(t, app)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/resume/generate", fiber.Map{
		"profile_id": profile.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "External service request failed", env.Error, "integration details are not leaked")
}

func TestResumePendingStatus(t *testing.T) {
	app, s := newTestApp(t)
	profile := createTestProfile(t, app)

	// Never triggered.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/resume/"+profile.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Pending: record exists, text not delivered yet.
	s.CreateScholarship(context.Background(), models.Scholarship{
		Title:     "Resume - " + profile.Name,
		ProfileID: profile.ID,
	})
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/resume/"+profile.ID, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var status struct {
		Status string `json:"status"`
		Resume string `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "pending", status.Status)

	// Download is unavailable until text arrives.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/resume/"+profile.ID+"/download", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResumeDownload(t *testing.T) {
	app, s := newTestApp(t)
	profile := createTestProfile(t, app)

	s.CreateScholarship(context.Background(), models.Scholarship{
		Title:     "Resume - " + profile.Name,
		ProfileID: profile.ID,
		Notes:     "## EDUCATION\n- BS Computer Science",
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/resume/"+profile.ID+"/download", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "Jane_Doe_Resume.docx")

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.NotEmpty(t, body)
}
