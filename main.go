package main

import (
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/scholarmatch/scholarmatch-backend/config"
	"github.com/scholarmatch/scholarmatch-backend/handlers"
	"github.com/scholarmatch/scholarmatch-backend/recordstore"
	"github.com/scholarmatch/scholarmatch-backend/services"
	"github.com/scholarmatch/scholarmatch-backend/shared"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// HTTP clients for the record backend and the resume webhook
	clientFactory := shared.NewHTTPClientFactory(15 * time.Second)

	// Backend availability is decided once here and never changes at
	// runtime; without credentials the stores run cache-only with the
	// fallback catalog.
	var backend *recordstore.Client
	if cfg.HasRecordBackend() {
		backend = recordstore.NewClient(
			cfg.RecordAPIURL,
			cfg.RecordBaseID,
			cfg.RecordAPIKey,
			clientFactory.CreateOptimizedHTTPClient(15*time.Second),
		)
		logrus.WithField("base_id", cfg.RecordBaseID).Info("Record backend configured")
	} else {
		logrus.Warn("Record backend not configured, running with transient cache and fallback catalog")
	}

	dataStore := store.NewStore(backend)

	// Initialize services
	matchService := services.NewMatchService(dataStore)
	guidanceService := services.NewGuidanceService(dataStore)
	bookingService := services.NewBookingService(dataStore, cfg.GetPaymentDelay())
	resumeService := services.NewResumeService(
		dataStore,
		cfg.ResumeWebhookURL,
		clientFactory.CreateOptimizedHTTPClient(30*time.Second),
	)

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(dataStore)
	scholarshipHandler := handlers.NewScholarshipHandler(dataStore)
	matchHandler := handlers.NewMatchHandler(matchService, dataStore)
	guidanceHandler := handlers.NewGuidanceHandler(guidanceService, dataStore)
	applicationHandler := handlers.NewApplicationHandler(dataStore)
	consultationHandler := handlers.NewConsultationHandler(bookingService)
	resumeHandler := handlers.NewResumeHandler(resumeService)

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		outcome := "success"
		if err != nil || c.Response().StatusCode() >= 400 {
			outcome = "error"
		}
		shared.RequestsTotal.WithLabelValues(c.Route().Path, outcome).Inc()
		return err
	})

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"backend":   strconv.FormatBool(dataStore.HasBackend()),
			"timestamp": time.Now().Unix(),
		})
	})

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Routes
	api := app.Group("/api/v1")

	// Profile Routes
	api.Post("/profiles", profileHandler.CreateProfile)
	api.Get("/profiles/:id", profileHandler.GetProfile)
	api.Put("/profiles/:id", profileHandler.UpdateProfile)
	api.Get("/profiles/:id/matches", matchHandler.GetMatchesForProfile)

	// Scholarship Routes
	api.Get("/scholarships", scholarshipHandler.ListScholarships)
	api.Get("/scholarships/:id", scholarshipHandler.GetScholarship)
	api.Post("/scholarships", scholarshipHandler.CreateScholarship)
	api.Delete("/scholarships", scholarshipHandler.ClearScholarships)

	// Match Routes
	api.Post("/matches/generate", matchHandler.GenerateMatches)
	api.Put("/matches/:id/status", matchHandler.UpdateMatchStatus)

	// Guidance Routes
	api.Post("/guidance", guidanceHandler.CreateGuidance)
	api.Get("/guidance/:id", guidanceHandler.GetGuidance)

	// Application Routes
	api.Post("/applications", applicationHandler.CreateApplication)
	api.Get("/applications/:id", applicationHandler.GetApplication)

	// Consultation Routes
	api.Post("/consultations", consultationHandler.BookConsultation)

	// Resume Routes
	api.Post("/resume/generate", resumeHandler.GenerateResume)
	api.Get("/resume/:profile_id", resumeHandler.GetResume)
	api.Get("/resume/:profile_id/download", resumeHandler.DownloadResume)

	// Start server
	logrus.Infof("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}
