package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/shared"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

func TestBookConsultationUnknownProfile(t *testing.T) {
	svc := NewBookingService(store.NewStore(nil), time.Millisecond)

	_, err := svc.BookConsultation(context.Background(), &models.BookingRequest{
		ProfileID: "no-such-profile",
		Counselor: "Dr. Reed",
	})
	require.Error(t, err)
	assert.True(t, shared.IsCategory(err, shared.ErrorCategoryNotFound))
}

func TestBookConsultationEncodesBookingFields(t *testing.T) {
	s, profile := newCacheOnlyStoreWithProfile(t)
	svc := NewBookingService(s, time.Millisecond)

	booking, err := svc.BookConsultation(context.Background(), &models.BookingRequest{
		ProfileID: profile.ID,
		Counselor: "Dr. Reed",
		Amount:    "$49.99",
		Slot:      "2025-07-01 10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, profile.ID, booking.ProfileID)
	assert.Equal(t, "Consultation booked with Dr. Reed", booking.EssayTips)
	assert.Equal(t, "Amount paid: $49.99", booking.Checklist)
	assert.Equal(t, "2025-07-01 10:00", booking.Improvements)

	stored := s.GetGuidance(context.Background(), booking.ID)
	require.NotNil(t, stored)
	assert.Equal(t, booking.EssayTips, stored.EssayTips)
}

func TestBookConsultationHonorsContextCancellation(t *testing.T) {
	s, profile := newCacheOnlyStoreWithProfile(t)
	svc := NewBookingService(s, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := svc.BookConsultation(ctx, &models.BookingRequest{
		ProfileID: profile.ID,
		Counselor: "Dr. Reed",
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCreateGuidanceFillsPlaceholders(t *testing.T) {
	s, profile := newCacheOnlyStoreWithProfile(t)
	svc := NewGuidanceService(s)

	created, err := svc.CreateGuidance(context.Background(), models.ApplicationGuidance{
		ProfileID:     profile.ID,
		ScholarshipID: "fallback-stem-excellence",
		EssayTips:     "Custom essay advice.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Custom essay advice.", created.EssayTips, "provided fields kept")
	assert.Equal(t, placeholderChecklist, created.Checklist, "empty fields filled")
	assert.Equal(t, placeholderImprove, created.Improvements)
}

func TestCreateGuidanceUnknownProfile(t *testing.T) {
	svc := NewGuidanceService(store.NewStore(nil))

	_, err := svc.CreateGuidance(context.Background(), models.ApplicationGuidance{
		ProfileID: "no-such-profile",
	})
	require.Error(t, err)
	assert.True(t, shared.IsCategory(err, shared.ErrorCategoryNotFound))
}
