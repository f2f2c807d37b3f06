package services

import (
	"context"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/shared"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

// Static guidance placeholders. The AI guidance integration is permanently
// degraded (external credential absent), so missing fields are filled with
// these rather than generated content.
const (
	placeholderEssayTips = "Open with a concrete story, connect it to the scholarship's mission, and close with your goals. Keep it under the word limit."
	placeholderChecklist = "Transcript; two recommendation letters; personal essay; proof of enrollment; FAFSA confirmation if need-based."
	placeholderImprove   = "Quantify achievements where possible and tailor the essay to each scholarship's stated criteria."
)

// GuidanceService creates application guidance records.
type GuidanceService struct {
	Store *store.Store
}

func NewGuidanceService(s *store.Store) *GuidanceService {
	return &GuidanceService{Store: s}
}

// CreateGuidance persists guidance for a profile, substituting the static
// placeholders for any text field the caller left empty.
func (gs *GuidanceService) CreateGuidance(ctx context.Context, g models.ApplicationGuidance) (*models.ApplicationGuidance, error) {
	if gs.Store.GetProfile(ctx, g.ProfileID) == nil {
		return nil, shared.NewNotFoundError("profile not found", "guidance-service", "CreateGuidance")
	}

	if g.EssayTips == "" {
		g.EssayTips = placeholderEssayTips
	}
	if g.Checklist == "" {
		g.Checklist = placeholderChecklist
	}
	if g.Improvements == "" {
		g.Improvements = placeholderImprove
	}

	created := gs.Store.CreateGuidance(ctx, g)
	return &created, nil
}
