package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pappi-team/pappi-matching/internal/config"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory fakes for the repository interfaces.

type fakePreferenceRepo struct {
	prefs   map[int]*domain.Preferences
	created int
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{prefs: make(map[int]*domain.Preferences)}
}

func (r *fakePreferenceRepo) GetByUserID(_ context.Context, userID int) (*domain.Preferences, error) {
	if p, ok := r.prefs[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrPreferencesNotFound
}

func (r *fakePreferenceRepo) Create(_ context.Context, p *domain.Preferences) error {
	r.created++
	r.prefs[p.UserID] = p
	return nil
}

func (r *fakePreferenceRepo) Update(_ context.Context, p *domain.Preferences) error {
	r.prefs[p.UserID] = p
	return nil
}

type fakeUserRepo struct {
	users map[int]*domain.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type fakeAnimalRepo struct {
	candidates []*domain.Animal
}

func (r *fakeAnimalRepo) GetByID(_ context.Context, id int) (*domain.Animal, error) {
	for _, a := range r.candidates {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrAnimalNotFound
}

func (r *fakeAnimalRepo) SelectCandidates(_ context.Context, _ int, _ *domain.Preferences, limit int) ([]*domain.Animal, error) {
	if len(r.candidates) > limit {
		return r.candidates[:limit], nil
	}
	return r.candidates, nil
}

func (r *fakeAnimalRepo) LikedBySimilarUsers(context.Context, int, int) ([]*domain.Animal, error) {
	return nil, nil
}

func (r *fakeAnimalRepo) FindSimilar(context.Context, []string, []string, []int, int) ([]*domain.Animal, error) {
	return nil, nil
}

type fakeInteractionRepo struct {
	likeRatios  map[string]float64
	activeUsers []int
}

func (r *fakeInteractionRepo) Create(context.Context, *domain.Interaction) error { return nil }

func (r *fakeInteractionRepo) LikeRatio(_ context.Context, _ int, species string) (float64, error) {
	return r.likeRatios[species], nil
}

func (r *fakeInteractionRepo) RecentLikedAnimalIDs(context.Context, int, int) ([]int, error) {
	return nil, nil
}

func (r *fakeInteractionRepo) ActiveUserIDs(context.Context, time.Time) ([]int, error) {
	return r.activeUsers, nil
}

type pairKey struct{ userID, animalID int }

type fakeScoreRepo struct {
	rows     map[pairKey]*domain.MatchScore
	failures int
	deleted  int64
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{rows: make(map[pairKey]*domain.MatchScore)}
}

func (r *fakeScoreRepo) Upsert(_ context.Context, score *domain.MatchScore) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("constraint violation")
	}
	copied := *score
	copied.CreatedAt = time.Now()
	r.rows[pairKey{score.UserID, score.AnimalID}] = &copied
	return nil
}

func (r *fakeScoreRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return r.deleted, nil
}

func testConfig() config.MatchingConfig {
	return config.MatchingConfig{
		Weights:              defaultWeights(),
		LocationBoost:        0.2,
		InteractionBoost:     0.1,
		CandidatePoolSize:    100,
		DefaultMatchLimit:    20,
		DefaultMaxDistanceKm: 50,
		ScoreRetention:       7 * 24 * time.Hour,
	}
}

func newTestEngine(prefs *fakePreferenceRepo, users *fakeUserRepo, animals *fakeAnimalRepo, interactions *fakeInteractionRepo, scores *fakeScoreRepo) *UseCase {
	if users == nil {
		users = &fakeUserRepo{users: map[int]*domain.User{}}
	}
	if interactions == nil {
		interactions = &fakeInteractionRepo{likeRatios: map[string]float64{}}
	}
	return NewUseCase(prefs, users, animals, interactions, scores, testConfig(), zap.NewNop())
}

func dogPrefs(userID int) *domain.Preferences {
	return &domain.Preferences{
		UserID:        userID,
		Species:       []string{"dog"},
		MaxDistanceKm: 50,
	}
}

func TestGetMatchesRanksByScore(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	prefRepo.prefs[1] = &domain.Preferences{
		UserID:        1,
		Species:       []string{"dog"},
		Breeds:        []string{"Labrador"},
		MaxDistanceKm: 50,
	}

	animalRepo := &fakeAnimalRepo{candidates: []*domain.Animal{
		{ID: 10, OwnerID: 2, Species: "dog", Breed: "Poodle"},
		{ID: 11, OwnerID: 2, Species: "dog", Breed: "Labrador"},
		{ID: 12, OwnerID: 2, Species: "cat", Breed: "Siamese"},
	}}
	scoreRepo := newFakeScoreRepo()

	uc := newTestEngine(prefRepo, nil, animalRepo, nil, scoreRepo)

	matches, err := uc.GetMatches(context.Background(), 1, 10)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, 11, matches[0].Animal.ID)
	assert.Equal(t, 10, matches[1].Animal.ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestGetMatchesExcludesZeroScores(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	prefRepo.prefs[1] = dogPrefs(1)

	animalRepo := &fakeAnimalRepo{candidates: []*domain.Animal{
		{ID: 10, OwnerID: 2, Species: "cat"},
		{ID: 11, OwnerID: 2, Species: "bird"},
	}}

	uc := newTestEngine(prefRepo, nil, animalRepo, nil, newFakeScoreRepo())

	matches, err := uc.GetMatches(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGetMatchesSkipsCandidatesWithoutSpecies(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	prefRepo.prefs[1] = dogPrefs(1)

	animalRepo := &fakeAnimalRepo{candidates: []*domain.Animal{
		{ID: 10, OwnerID: 2, Species: ""},
		{ID: 11, OwnerID: 2, Species: "dog"},
	}}

	uc := newTestEngine(prefRepo, nil, animalRepo, nil, newFakeScoreRepo())

	matches, err := uc.GetMatches(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 11, matches[0].Animal.ID)
}

func TestGetMatchesCreatesDefaultPreferences(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	animalRepo := &fakeAnimalRepo{}

	uc := newTestEngine(prefRepo, nil, animalRepo, nil, newFakeScoreRepo())

	matches, err := uc.GetMatches(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, 1, prefRepo.created)

	stored, err := prefRepo.GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxDistanceKm, stored.MaxDistanceKm)
}

func TestGetMatchesLocationBoost(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	prefRepo.prefs[1] = dogPrefs(1)

	userRepo := &fakeUserRepo{users: map[int]*domain.User{
		1: {ID: 1, LocationLat: floatPtr(40.7128), LocationLon: floatPtr(-74.0060)},
	}}

	near := &domain.Animal{ID: 10, OwnerID: 2, Species: "dog",
		LocationLat: floatPtr(40.7130), LocationLon: floatPtr(-74.0062)}
	far := &domain.Animal{ID: 11, OwnerID: 2, Species: "dog",
		LocationLat: floatPtr(48.8566), LocationLon: floatPtr(2.3522)}
	unknown := &domain.Animal{ID: 12, OwnerID: 2, Species: "dog"}

	animalRepo := &fakeAnimalRepo{candidates: []*domain.Animal{far, unknown, near}}

	uc := newTestEngine(prefRepo, userRepo, animalRepo, nil, newFakeScoreRepo())

	matches, err := uc.GetMatches(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// The nearby candidate gets almost the full 20% boost; the distant one
	// is outside the radius and keeps the base score, same as the one with
	// no coordinates.
	assert.Equal(t, 10, matches[0].Animal.ID)
	assert.InDelta(t, 24.0, matches[0].Score, 0.01)
	assert.Equal(t, 20.0, matches[1].Score)
	assert.Equal(t, 20.0, matches[2].Score)
}

func TestGetMatchesInteractionBoost(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	prefRepo.prefs[1] = &domain.Preferences{
		UserID:        1,
		Species:       []string{"dog", "cat"},
		MaxDistanceKm: 50,
	}

	interactions := &fakeInteractionRepo{likeRatios: map[string]float64{
		"dog": 1.0,
		"cat": 0.0,
	}}
	animalRepo := &fakeAnimalRepo{candidates: []*domain.Animal{
		{ID: 10, OwnerID: 2, Species: "cat"},
		{ID: 11, OwnerID: 2, Species: "dog"},
	}}

	uc := newTestEngine(prefRepo, nil, animalRepo, interactions, newFakeScoreRepo())

	matches, err := uc.GetMatches(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, 11, matches[0].Animal.ID)
	assert.InDelta(t, 22.0, matches[0].Score, 1e-9)
	assert.InDelta(t, 20.0, matches[1].Score, 1e-9)
}

func TestGetMatchesTieBreakNewestFirst(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	prefRepo.prefs[1] = dogPrefs(1)

	older := &domain.Animal{ID: 10, OwnerID: 2, Species: "dog",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &domain.Animal{ID: 11, OwnerID: 2, Species: "dog",
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

	animalRepo := &fakeAnimalRepo{candidates: []*domain.Animal{older, newer}}

	uc := newTestEngine(prefRepo, nil, animalRepo, nil, newFakeScoreRepo())

	matches, err := uc.GetMatches(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 11, matches[0].Animal.ID)
	assert.Equal(t, 10, matches[1].Animal.ID)
}

func TestGetMatchesTruncatesToLimit(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	prefRepo.prefs[1] = dogPrefs(1)

	var candidates []*domain.Animal
	for i := 0; i < 30; i++ {
		candidates = append(candidates, &domain.Animal{
			ID: 100 + i, OwnerID: 2, Species: "dog",
		})
	}
	animalRepo := &fakeAnimalRepo{candidates: candidates}

	uc := newTestEngine(prefRepo, nil, animalRepo, nil, newFakeScoreRepo())

	matches, err := uc.GetMatches(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Len(t, matches, 5)
}

func TestSaveMatchesUpsertIdempotent(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	prefRepo.prefs[1] = dogPrefs(1)
	scoreRepo := newFakeScoreRepo()

	uc := newTestEngine(prefRepo, nil, &fakeAnimalRepo{}, nil, scoreRepo)

	matches := []*domain.Match{
		{Animal: &domain.Animal{ID: 10}, Score: 20, Criteria: []string{"species_match"}},
	}

	require.NoError(t, uc.SaveMatches(context.Background(), 1, matches))
	require.NoError(t, uc.SaveMatches(context.Background(), 1, matches))

	assert.Len(t, scoreRepo.rows, 1)
	assert.Equal(t, 20.0, scoreRepo.rows[pairKey{1, 10}].Score)

	matches[0].Score = 24
	require.NoError(t, uc.SaveMatches(context.Background(), 1, matches))
	assert.Len(t, scoreRepo.rows, 1)
	assert.Equal(t, 24.0, scoreRepo.rows[pairKey{1, 10}].Score)
}

func TestGetMatchesReturnsRankingWhenPersistenceFails(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	prefRepo.prefs[1] = dogPrefs(1)

	animalRepo := &fakeAnimalRepo{candidates: []*domain.Animal{
		{ID: 10, OwnerID: 2, Species: "dog"},
	}}
	scoreRepo := newFakeScoreRepo()
	scoreRepo.failures = 10 // every upsert and retry fails

	uc := newTestEngine(prefRepo, nil, animalRepo, nil, scoreRepo)

	matches, err := uc.GetMatches(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRefreshScoresRescoresActiveUsers(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	prefRepo.prefs[1] = dogPrefs(1)
	prefRepo.prefs[2] = dogPrefs(2)

	animalRepo := &fakeAnimalRepo{candidates: []*domain.Animal{
		{ID: 10, OwnerID: 9, Species: "dog"},
	}}
	interactions := &fakeInteractionRepo{
		likeRatios:  map[string]float64{},
		activeUsers: []int{1, 2},
	}
	scoreRepo := newFakeScoreRepo()

	uc := newTestEngine(prefRepo, nil, animalRepo, interactions, scoreRepo)

	require.NoError(t, uc.RefreshScores(context.Background()))

	// One upserted row per active user for the shared candidate.
	assert.Len(t, scoreRepo.rows, 2)
	assert.Contains(t, scoreRepo.rows, pairKey{1, 10})
	assert.Contains(t, scoreRepo.rows, pairKey{2, 10})

	// Re-running is safe; rows are upserted, not appended.
	require.NoError(t, uc.RefreshScores(context.Background()))
	assert.Len(t, scoreRepo.rows, 2)
}

func TestSaveMatchesRetriesOnce(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	prefRepo.prefs[1] = dogPrefs(1)
	scoreRepo := newFakeScoreRepo()
	scoreRepo.failures = 1 // first attempt fails, retry succeeds

	uc := newTestEngine(prefRepo, nil, &fakeAnimalRepo{}, nil, scoreRepo)

	matches := []*domain.Match{
		{Animal: &domain.Animal{ID: 10}, Score: 20},
	}
	require.NoError(t, uc.SaveMatches(context.Background(), 1, matches))
	assert.Len(t, scoreRepo.rows, 1)
}
