package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/recordstore"
	"github.com/scholarmatch/scholarmatch-backend/shared"
)

// Backend table names, one per entity type.
const (
	TableProfiles     = "profiles"
	TableScholarships = "scholarships"
	TableMatches      = "matches"
	TableGuidance     = "guidance"
	TableApplications = "applications"
)

// Store is the sole point of truth for entity persistence and retrieval. It
// hides backend availability from callers: every entity type is served from
// an in-process cache backed by the external record API when configured.
//
// Reads check the cache first, then the backend. Creates go backend-first
// and synthesize a local entity on any failure, so a create never fails
// outward. Updates merge onto the cached entity and write best-effort.
// The one exception is ClearScholarships, which is backend-only and is
// allowed to fail.
type Store struct {
	backend *recordstore.Client // nil when the backend is not configured
	log     *logrus.Entry

	mu           sync.RWMutex
	profiles     map[string]models.StudentProfile
	scholarships map[string]models.Scholarship
	applications map[string]models.ScholarshipApplication
	guidance     map[string]models.ApplicationGuidance

	// matches holds the most recent generated batch per profile. The batch
	// short-circuits backend match queries; see MatchesForProfile.
	matches map[string][]models.ScholarshipMatch
}

// NewStore creates a store. Pass a nil backend to run cache-only.
func NewStore(backend *recordstore.Client) *Store {
	return &Store{
		backend:      backend,
		log:          logrus.WithField("component", "store"),
		profiles:     make(map[string]models.StudentProfile),
		scholarships: make(map[string]models.Scholarship),
		applications: make(map[string]models.ScholarshipApplication),
		guidance:     make(map[string]models.ApplicationGuidance),
		matches:      make(map[string][]models.ScholarshipMatch),
	}
}

// HasBackend reports whether the durable backend is configured. Decided once
// at startup; never changes at runtime.
func (s *Store) HasBackend() bool {
	return s.backend != nil
}

// --- Profiles ---

// CreateProfile persists a profile, durably when the backend is available,
// otherwise only in the transient cache. It always yields a valid entity.
func (s *Store) CreateProfile(ctx context.Context, p models.StudentProfile) models.StudentProfile {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if s.backend != nil {
		rec, err := s.backend.Create(ctx, TableProfiles, ProfileFields(&p))
		if err == nil {
			p = ProfileFromRecord(rec)
			s.putProfile(p)
			return p
		}
		s.log.WithError(err).Warn("Backend profile create failed, synthesizing locally")
	}

	p.ID = uuid.NewString()
	s.putProfile(p)
	return p
}

// GetProfile returns nil when the profile is absent from both cache and
// backend. Lookups never surface backend errors.
func (s *Store) GetProfile(ctx context.Context, id string) *models.StudentProfile {
	s.mu.RLock()
	if p, ok := s.profiles[id]; ok {
		s.mu.RUnlock()
		return &p
	}
	s.mu.RUnlock()

	if s.backend == nil {
		return nil
	}

	rec, err := s.backend.Find(ctx, TableProfiles, id)
	if err != nil {
		if err != recordstore.ErrNotFound {
			s.log.WithError(err).Warn("Backend profile lookup failed, treating as absent")
		}
		return nil
	}

	p := ProfileFromRecord(rec)
	s.putProfile(p)
	return &p
}

// UpdateProfile merges the partial update onto the cached entity (or a
// synthesized-empty one), writes the merged result best-effort, and returns
// it regardless of backend outcome.
func (s *Store) UpdateProfile(ctx context.Context, id string, upd *models.ProfileUpdate) models.StudentProfile {
	s.mu.Lock()
	existing, ok := s.profiles[id]
	if !ok {
		existing = models.StudentProfile{ID: id, CreatedAt: time.Now().UTC()}
	}
	upd.ApplyTo(&existing)
	existing.UpdatedAt = time.Now().UTC()
	s.profiles[id] = existing
	s.mu.Unlock()

	if s.backend != nil {
		if _, err := s.backend.Update(ctx, TableProfiles, id, ProfileFields(&existing)); err != nil {
			s.log.WithError(err).WithField("profile_id", id).Warn("Best-effort backend profile update failed")
		}
	}

	return existing
}

func (s *Store) putProfile(p models.StudentProfile) {
	s.mu.Lock()
	s.profiles[p.ID] = p
	s.mu.Unlock()
}

// --- Scholarships ---

// ListScholarships returns the full catalog, substituting the fallback
// catalog whenever the backend is unconfigured, empty, or looks invalid.
func (s *Store) ListScholarships(ctx context.Context) []models.Scholarship {
	if s.backend == nil {
		shared.FallbackServed.Inc()
		return FallbackCatalog()
	}

	records, err := s.backend.List(ctx, TableScholarships, recordstore.ListOptions{})
	if err != nil {
		s.log.WithError(err).Warn("Backend scholarship listing failed, serving fallback catalog")
		shared.FallbackServed.Inc()
		return FallbackCatalog()
	}

	if !LooksLikeScholarshipData(records) {
		shared.FallbackServed.Inc()
		return FallbackCatalog()
	}

	scholarships := make([]models.Scholarship, 0, len(records))
	for i := range records {
		scholarships = append(scholarships, ScholarshipFromRecord(&records[i]))
	}

	if len(scholarships) == 0 || !hasRealScholarship(scholarships) {
		shared.FallbackServed.Inc()
		return FallbackCatalog()
	}

	s.mu.Lock()
	for _, sc := range scholarships {
		s.scholarships[sc.ID] = sc
	}
	s.mu.Unlock()

	return scholarships
}

// GetScholarship returns nil when absent; fallback catalog entries are
// addressable by their fixed IDs.
func (s *Store) GetScholarship(ctx context.Context, id string) *models.Scholarship {
	s.mu.RLock()
	if sc, ok := s.scholarships[id]; ok {
		s.mu.RUnlock()
		return &sc
	}
	s.mu.RUnlock()

	for _, sc := range fallbackCatalog {
		if sc.ID == id {
			out := sc
			return &out
		}
	}

	if s.backend == nil {
		return nil
	}

	rec, err := s.backend.Find(ctx, TableScholarships, id)
	if err != nil {
		if err != recordstore.ErrNotFound {
			s.log.WithError(err).Warn("Backend scholarship lookup failed, treating as absent")
		}
		return nil
	}

	sc := ScholarshipFromRecord(rec)
	s.mu.Lock()
	s.scholarships[sc.ID] = sc
	s.mu.Unlock()
	return &sc
}

// CreateScholarship persists a scholarship; never fails outward.
func (s *Store) CreateScholarship(ctx context.Context, sc models.Scholarship) models.Scholarship {
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now().UTC()
	}

	if s.backend != nil {
		rec, err := s.backend.Create(ctx, TableScholarships, ScholarshipFields(&sc))
		if err == nil {
			sc = ScholarshipFromRecord(rec)
			s.mu.Lock()
			s.scholarships[sc.ID] = sc
			s.mu.Unlock()
			return sc
		}
		s.log.WithError(err).Warn("Backend scholarship create failed, synthesizing locally")
	}

	sc.ID = uuid.NewString()
	s.mu.Lock()
	s.scholarships[sc.ID] = sc
	s.mu.Unlock()
	return sc
}

// ClearScholarships deletes every scholarship record from the backend in
// batches. Purely a backend operation with no cache interaction; unlike
// create and update, errors propagate to the caller.
func (s *Store) ClearScholarships(ctx context.Context) (int, error) {
	if s.backend == nil {
		return 0, fmt.Errorf("record backend not configured")
	}

	records, err := s.backend.List(ctx, TableScholarships, recordstore.ListOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to list scholarship records: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}

	deleted := 0
	for start := 0; start < len(ids); start += recordstore.MaxBatchSize {
		end := start + recordstore.MaxBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		if err := s.backend.Delete(ctx, TableScholarships, ids[start:end]); err != nil {
			return deleted, fmt.Errorf("failed to delete scholarship batch: %w", err)
		}
		deleted += end - start
	}

	s.log.WithField("deleted", deleted).Info("Cleared scholarship records from backend")
	return deleted, nil
}

// ResumeForProfile returns the scholarship row repurposed as the profile's
// resume record. The backend is consulted first here, unlike other reads:
// the generated resume text arrives asynchronously into the backend notes
// field, so a cache-first read would never observe it.
func (s *Store) ResumeForProfile(ctx context.Context, profileID string) *models.Scholarship {
	if s.backend != nil {
		records, err := s.backend.List(ctx, TableScholarships, recordstore.ListOptions{
			FilterFormula: fmt.Sprintf(`{profile_id}=%q`, profileID),
		})
		if err != nil {
			s.log.WithError(err).Warn("Backend resume lookup failed, falling back to cache")
		} else if len(records) > 0 {
			sc := ScholarshipFromRecord(&records[0])
			s.mu.Lock()
			s.scholarships[sc.ID] = sc
			s.mu.Unlock()
			return &sc
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sc := range s.scholarships {
		if sc.ProfileID == profileID {
			out := sc
			return &out
		}
	}
	return nil
}

// --- Matches ---

// ReplaceMatches installs a freshly generated batch for a profile in the
// cache and appends it to the backend best-effort. Prior backend batches are
// not deduplicated; the backend accumulates one batch per generate call.
func (s *Store) ReplaceMatches(ctx context.Context, profileID string, batch []models.ScholarshipMatch) []models.ScholarshipMatch {
	for i := range batch {
		if batch[i].ID == "" {
			batch[i].ID = uuid.NewString()
		}
	}

	if s.backend != nil {
		for start := 0; start < len(batch); start += recordstore.MaxBatchSize {
			end := start + recordstore.MaxBatchSize
			if end > len(batch) {
				end = len(batch)
			}
			fieldsBatch := make([]map[string]any, 0, end-start)
			for i := start; i < end; i++ {
				fieldsBatch = append(fieldsBatch, MatchFields(&batch[i]))
			}
			created, err := s.backend.CreateBatch(ctx, TableMatches, fieldsBatch)
			if err != nil {
				s.log.WithError(err).Warn("Best-effort backend match append failed")
				continue
			}
			// Adopt backend-assigned IDs so later status updates patch the
			// right rows.
			for i, rec := range created {
				if start+i < len(batch) {
					batch[start+i].ID = rec.ID
				}
			}
		}
	}

	s.mu.Lock()
	s.matches[profileID] = batch
	s.mu.Unlock()
	return batch
}

// MatchesForProfile returns the profile's matches with status "new", sorted
// descending by score. The most recent cached batch short-circuits the
// backend query; the backend (which accumulates every generated batch) is
// consulted only when the cache holds nothing for the profile.
func (s *Store) MatchesForProfile(ctx context.Context, profileID string) []models.ScholarshipMatch {
	s.mu.RLock()
	batch, ok := s.matches[profileID]
	s.mu.RUnlock()

	if ok && len(batch) > 0 {
		return filterAndSortMatches(batch)
	}

	if s.backend == nil {
		return []models.ScholarshipMatch{}
	}

	records, err := s.backend.List(ctx, TableMatches, recordstore.ListOptions{
		FilterFormula: fmt.Sprintf(`AND({profile_id}=%q, {status}=%q)`, profileID, models.MatchStatusNew),
		SortField:     "score",
		SortDesc:      true,
	})
	if err != nil {
		s.log.WithError(err).Warn("Backend match query failed, returning empty result")
		return []models.ScholarshipMatch{}
	}

	matches := make([]models.ScholarshipMatch, 0, len(records))
	for i := range records {
		matches = append(matches, MatchFromRecord(&records[i]))
	}
	return filterAndSortMatches(matches)
}

// UpdateMatchStatus sets the status on a cached match and patches the
// backend best-effort. Returns nil when no cached match has the ID.
func (s *Store) UpdateMatchStatus(ctx context.Context, matchID, status string) *models.ScholarshipMatch {
	var updated *models.ScholarshipMatch

	s.mu.Lock()
	for profileID, batch := range s.matches {
		for i := range batch {
			if batch[i].ID == matchID {
				batch[i].Status = status
				s.matches[profileID] = batch
				m := batch[i]
				updated = &m
				break
			}
		}
		if updated != nil {
			break
		}
	}
	s.mu.Unlock()

	if updated == nil {
		return nil
	}

	if s.backend != nil {
		if _, err := s.backend.Update(ctx, TableMatches, matchID, map[string]any{"status": status}); err != nil {
			s.log.WithError(err).WithField("match_id", matchID).Warn("Best-effort backend match status update failed")
		}
	}

	return updated
}

func filterAndSortMatches(matches []models.ScholarshipMatch) []models.ScholarshipMatch {
	out := make([]models.ScholarshipMatch, 0, len(matches))
	for _, m := range matches {
		if m.Status == models.MatchStatusNew {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// --- Guidance ---

func (s *Store) CreateGuidance(ctx context.Context, g models.ApplicationGuidance) models.ApplicationGuidance {
	g.CreatedAt = time.Now().UTC()

	if s.backend != nil {
		rec, err := s.backend.Create(ctx, TableGuidance, GuidanceFields(&g))
		if err == nil {
			g = GuidanceFromRecord(rec)
			s.mu.Lock()
			s.guidance[g.ID] = g
			s.mu.Unlock()
			return g
		}
		s.log.WithError(err).Warn("Backend guidance create failed, synthesizing locally")
	}

	g.ID = uuid.NewString()
	s.mu.Lock()
	s.guidance[g.ID] = g
	s.mu.Unlock()
	return g
}

func (s *Store) GetGuidance(ctx context.Context, id string) *models.ApplicationGuidance {
	s.mu.RLock()
	if g, ok := s.guidance[id]; ok {
		s.mu.RUnlock()
		return &g
	}
	s.mu.RUnlock()

	if s.backend == nil {
		return nil
	}

	rec, err := s.backend.Find(ctx, TableGuidance, id)
	if err != nil {
		if err != recordstore.ErrNotFound {
			s.log.WithError(err).Warn("Backend guidance lookup failed, treating as absent")
		}
		return nil
	}

	g := GuidanceFromRecord(rec)
	s.mu.Lock()
	s.guidance[g.ID] = g
	s.mu.Unlock()
	return &g
}

// --- Applications ---

// CreateApplication persists an already-validated application; document
// validation happens before this call so no partial application is stored.
func (s *Store) CreateApplication(ctx context.Context, a models.ScholarshipApplication) models.ScholarshipApplication {
	a.Status = models.ApplicationStatusPending
	a.AppliedAt = time.Now().UTC()

	if s.backend != nil {
		rec, err := s.backend.Create(ctx, TableApplications, ApplicationFields(&a))
		if err == nil {
			a = ApplicationFromRecord(rec)
			s.mu.Lock()
			s.applications[a.ID] = a
			s.mu.Unlock()
			return a
		}
		s.log.WithError(err).Warn("Backend application create failed, synthesizing locally")
	}

	a.ID = uuid.NewString()
	s.mu.Lock()
	s.applications[a.ID] = a
	s.mu.Unlock()
	return a
}

func (s *Store) GetApplication(ctx context.Context, id string) *models.ScholarshipApplication {
	s.mu.RLock()
	if a, ok := s.applications[id]; ok {
		s.mu.RUnlock()
		return &a
	}
	s.mu.RUnlock()

	if s.backend == nil {
		return nil
	}

	rec, err := s.backend.Find(ctx, TableApplications, id)
	if err != nil {
		if err != recordstore.ErrNotFound {
			s.log.WithError(err).Warn("Backend application lookup failed, treating as absent")
		}
		return nil
	}

	a := ApplicationFromRecord(rec)
	s.mu.Lock()
	s.applications[a.ID] = a
	s.mu.Unlock()
	return &a
}
