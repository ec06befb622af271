package preference

import (
	"context"
	"testing"

	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedCache struct {
	invalidated []int
}

func (c *fakeFeedCache) GetFeed(context.Context, int) ([]*domain.Recommendation, bool, error) {
	return nil, false, nil
}

func (c *fakeFeedCache) SetFeed(context.Context, int, []*domain.Recommendation) error {
	return nil
}

func (c *fakeFeedCache) InvalidateFeed(_ context.Context, userID int) error {
	c.invalidated = append(c.invalidated, userID)
	return nil
}

type fakePreferenceRepo struct {
	prefs   map[int]*domain.Preferences
	created int
	updated int
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
	r.updated++
	r.prefs[p.UserID] = p
	return nil
}

func intPtr(i int) *int              { return &i }
func strPtr(s string) *string        { return &s }
func boolPtr(b bool) *bool           { return &b }
func slicePtr(s ...string) *[]string { return &s }

func TestGetPreferencesCreatesDefault(t *testing.T) {
	repo := newFakePreferenceRepo()
	uc := NewUseCase(repo, nil)

	prefs, err := uc.GetPreferences(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, prefs.UserID)
	assert.Empty(t, prefs.Species)
	assert.Equal(t, domain.DefaultMaxDistanceKm, prefs.MaxDistanceKm)
	assert.Equal(t, 1, repo.created)

	// Second call returns the stored row without creating again.
	again, err := uc.GetPreferences(context.Background(), 1)
	require.NoError(t, err)
	assert.Same(t, prefs, again)
	assert.Equal(t, 1, repo.created)
}

func TestUpdatePreferencesMergesFields(t *testing.T) {
	repo := newFakePreferenceRepo()
	repo.prefs[1] = &domain.Preferences{
		UserID:        1,
		Species:       []string{"dog"},
		AgeMin:        intPtr(1),
		MaxDistanceKm: 50,
	}
	uc := NewUseCase(repo, nil)

	prefs, err := uc.UpdatePreferences(context.Background(), 1, &UpdatePreferencesRequest{
		Breeds:             slicePtr("Labrador", "Poodle"),
		AgeMax:             intPtr(8),
		Gender:             strPtr("female"),
		RequiresVaccinated: boolPtr(true),
		MaxDistanceKm:      intPtr(100),
	})
	require.NoError(t, err)

	// Touched fields change, absent ones stay.
	assert.Equal(t, []string{"dog"}, prefs.Species)
	assert.Equal(t, []string{"Labrador", "Poodle"}, prefs.Breeds)
	assert.Equal(t, 1, *prefs.AgeMin)
	assert.Equal(t, 8, *prefs.AgeMax)
	assert.Equal(t, "female", *prefs.Gender)
	assert.True(t, prefs.RequiresVaccinated)
	assert.False(t, prefs.RequiresPedigree)
	assert.Equal(t, 100, prefs.MaxDistanceKm)
	assert.Equal(t, 1, repo.updated)
}

func TestUpdatePreferencesInvalidatesFeedCache(t *testing.T) {
	repo := newFakePreferenceRepo()
	cache := &fakeFeedCache{}
	uc := NewUseCase(repo, cache)

	_, err := uc.UpdatePreferences(context.Background(), 3, &UpdatePreferencesRequest{
		Species: slicePtr("dog"),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, cache.invalidated)
}

func TestUpdatePreferencesInvalidAgeRange(t *testing.T) {
	repo := newFakePreferenceRepo()
	uc := NewUseCase(repo, nil)

	_, err := uc.UpdatePreferences(context.Background(), 1, &UpdatePreferencesRequest{
		AgeMin: intPtr(10),
		AgeMax: intPtr(2),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAgeRange)
	assert.Equal(t, 0, repo.updated)
}

func TestUpdatePreferencesInvalidMaxDistance(t *testing.T) {
	repo := newFakePreferenceRepo()
	uc := NewUseCase(repo, nil)

	_, err := uc.UpdatePreferences(context.Background(), 1, &UpdatePreferencesRequest{
		MaxDistanceKm: intPtr(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMaxDistance)
}

func TestUpdatePreferencesClearsWithEmptySlice(t *testing.T) {
	repo := newFakePreferenceRepo()
	repo.prefs[1] = &domain.Preferences{
		UserID:        1,
		Species:       []string{"dog", "cat"},
		MaxDistanceKm: 50,
	}
	uc := NewUseCase(repo, nil)

	prefs, err := uc.UpdatePreferences(context.Background(), 1, &UpdatePreferencesRequest{
		Species: slicePtr(),
	})
	require.NoError(t, err)
	assert.Empty(t, prefs.Species)
}
