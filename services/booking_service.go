package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/shared"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

// BookingService books paid counseling consultations. Payment is a simulated
// processing delay that always succeeds; bookings are persisted as guidance
// records with the counselor and amount encoded into the free-text fields.
type BookingService struct {
	Store        *store.Store
	PaymentDelay time.Duration
}

func NewBookingService(s *store.Store, paymentDelay time.Duration) *BookingService {
	return &BookingService{Store: s, PaymentDelay: paymentDelay}
}

// BookConsultation runs the mock payment and records the booking.
func (bs *BookingService) BookConsultation(ctx context.Context, req *models.BookingRequest) (*models.ApplicationGuidance, error) {
	profile := bs.Store.GetProfile(ctx, req.ProfileID)
	if profile == nil {
		return nil, shared.NewNotFoundError("profile not found", "booking-service", "BookConsultation")
	}

	// Mock payment: wait out the configured processing delay, then succeed.
	select {
	case <-time.After(bs.PaymentDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	booking := bs.Store.CreateGuidance(ctx, models.ApplicationGuidance{
		ProfileID:    req.ProfileID,
		EssayTips:    fmt.Sprintf("Consultation booked with %s", req.Counselor),
		Checklist:    fmt.Sprintf("Amount paid: %s", req.Amount),
		Improvements: req.Slot,
	})

	logrus.WithFields(logrus.Fields{
		"component":  "booking-service",
		"profile_id": req.ProfileID,
		"counselor":  req.Counselor,
		"booking_id": booking.ID,
	}).Info("Consultation booked")

	return &booking, nil
}
