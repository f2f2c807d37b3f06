package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/shared"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

const (
	matchScoreMin = 60
	matchScoreMax = 100

	// The AI matching integration is permanently inert (no credential
	// configured), so every match carries the same placeholder reasoning.
	matchPlaceholderReasoning = "Strong overall fit based on your profile and this scholarship's focus areas."
)

// MatchService generates scholarship matches for a profile. Scores are drawn
// uniformly from [60, 100]; profile content is checked for existence but not
// consulted.
type MatchService struct {
	Store *store.Store
	rng   *rand.Rand
}

func NewMatchService(s *store.Store) *MatchService {
	return &MatchService{
		Store: s,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateMatches creates one match per active scholarship in the catalog.
// Each call produces a fresh batch; earlier batches remain in the backend.
func (ms *MatchService) GenerateMatches(ctx context.Context, profileID string) ([]models.ScholarshipMatch, error) {
	profile := ms.Store.GetProfile(ctx, profileID)
	if profile == nil {
		return nil, shared.NewNotFoundError("profile not found", "match-service", "GenerateMatches")
	}

	scholarships := ms.Store.ListScholarships(ctx)

	now := time.Now().UTC()
	batch := make([]models.ScholarshipMatch, 0, len(scholarships))
	for _, sc := range scholarships {
		if !sc.Active {
			continue
		}
		batch = append(batch, models.ScholarshipMatch{
			ProfileID:     profileID,
			ScholarshipID: sc.ID,
			Score:         matchScoreMin + ms.rng.Intn(matchScoreMax-matchScoreMin+1),
			Reasoning:     matchPlaceholderReasoning,
			Status:        models.MatchStatusNew,
			CreatedAt:     now,
		})
	}

	batch = ms.Store.ReplaceMatches(ctx, profileID, batch)
	shared.MatchesGenerated.Add(float64(len(batch)))

	logrus.WithFields(logrus.Fields{
		"component":  "match-service",
		"profile_id": profileID,
		"count":      len(batch),
	}).Info("Generated scholarship matches")

	return batch, nil
}
