package inventory

import (
	"context"
	"errors"
	"testing"

	stayRepo "wayfare/database/repository/stay"
	"wayfare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

// fakeStayRepo serves canned stays and records every criteria it saw.
type fakeStayRepo struct {
	byKind   map[string][]models.Stay
	err      error
	searches []stayRepo.StaySearchCriteria
}

func (f *fakeStayRepo) GetByID(ctx context.Context, id string) (*models.Stay, error) {
	return nil, nil
}

func (f *fakeStayRepo) Search(ctx context.Context, criteria stayRepo.StaySearchCriteria) ([]models.Stay, error) {
	f.searches = append(f.searches, criteria)
	if f.err != nil {
		return nil, f.err
	}
	return f.byKind[criteria.Kind], nil
}

func hotel(id string, price, rating float64) models.Stay {
	return models.Stay{ID: id, Name: id, Kind: models.StayKindHotel, PricePerNight: price, Rating: rating}
}

func TestSearchBothKindsByDefault(t *testing.T) {
	repo := &fakeStayRepo{byKind: map[string][]models.Stay{
		models.StayKindHome:  {{ID: "home1", Kind: models.StayKindHome, Rating: 4.2}},
		models.StayKindHotel: {hotel("hotel1", 120, 4.5)},
	}}
	svc := &DefaultSearchService{Repo: repo}
	st := &models.ConversationState{Destination: models.Destination{Name: "Miami"}}

	inv, err := svc.Search(context.Background(), nil, st, SearchLimits{PerKind: 5})
	require.NoError(t, err)

	assert.Len(t, inv.Homes, 1)
	assert.Len(t, inv.Hotels, 1)
	assert.Equal(t, MatchExact, inv.MatchTypes[models.ListingHomes])
	assert.Equal(t, MatchExact, inv.MatchTypes[models.ListingHotels])
}

func TestSearchHonorsListingTypeFilter(t *testing.T) {
	repo := &fakeStayRepo{byKind: map[string][]models.Stay{
		models.StayKindHotel: {hotel("hotel1", 120, 4.5)},
	}}
	svc := &DefaultSearchService{Repo: repo}
	plan := &models.Plan{ListingTypes: []string{models.ListingHotels}}
	st := &models.ConversationState{Destination: models.Destination{Name: "Miami"}}

	inv, err := svc.Search(context.Background(), plan, st, SearchLimits{PerKind: 5})
	require.NoError(t, err)

	assert.Len(t, inv.Hotels, 1)
	assert.Empty(t, inv.Homes)
	require.Len(t, repo.searches, 1)
	assert.Equal(t, models.StayKindHotel, repo.searches[0].Kind)
}

func TestSearchRelaxesSoftFiltersOnce(t *testing.T) {
	// Strict pass finds nothing; the retry without soft filters does.
	calls := 0
	repoWithRetry := &retryStayRepo{onSecond: []models.Stay{hotel("hotel1", 90, 4.0)}, calls: &calls}
	svc := &DefaultSearchService{Repo: repoWithRetry}
	st := &models.ConversationState{
		Destination: models.Destination{Name: "Miami"},
		Preferences: models.SearchPrefs{Amenities: []string{"pool"}},
	}
	plan := &models.Plan{ListingTypes: []string{models.ListingHotels}}

	inv, err := svc.Search(context.Background(), plan, st, SearchLimits{PerKind: 5})
	require.NoError(t, err)

	assert.Len(t, inv.Hotels, 1)
	assert.Equal(t, MatchPartial, inv.MatchTypes[models.ListingHotels])
	assert.Equal(t, 2, calls)
}

// retryStayRepo returns nothing on the first call and canned stays afterwards.
type retryStayRepo struct {
	onSecond []models.Stay
	calls    *int
}

func (r *retryStayRepo) GetByID(ctx context.Context, id string) (*models.Stay, error) {
	return nil, nil
}

func (r *retryStayRepo) Search(ctx context.Context, criteria stayRepo.StaySearchCriteria) ([]models.Stay, error) {
	*r.calls++
	if *r.calls == 1 {
		return nil, nil
	}
	// The relaxed pass must have dropped the soft filters.
	if len(criteria.Amenities) > 0 || criteria.PriceMin != nil || criteria.PriceMax != nil {
		return nil, nil
	}
	return r.onSecond, nil
}

func TestSearchEmptyMatchReportsNone(t *testing.T) {
	repo := &fakeStayRepo{byKind: map[string][]models.Stay{}}
	svc := &DefaultSearchService{Repo: repo}
	st := &models.ConversationState{Destination: models.Destination{Name: "Nowhere"}}
	plan := &models.Plan{ListingTypes: []string{models.ListingHotels}}

	inv, err := svc.Search(context.Background(), plan, st, SearchLimits{PerKind: 5})
	require.NoError(t, err)

	assert.Empty(t, inv.Hotels)
	assert.Equal(t, MatchNone, inv.MatchTypes[models.ListingHotels])
}

func TestSearchFailsOnlyWhenAllBranchesFail(t *testing.T) {
	repo := &fakeStayRepo{err: errors.New("db down")}
	svc := &DefaultSearchService{Repo: repo}
	st := &models.ConversationState{Destination: models.Destination{Name: "Miami"}}

	inv, err := svc.Search(context.Background(), nil, st, SearchLimits{PerKind: 5})
	assert.Error(t, err)
	require.NotNil(t, inv)
	assert.Empty(t, inv.Homes)
	assert.Empty(t, inv.Hotels)
}

func TestSearchSortsByPriceAscending(t *testing.T) {
	repo := &fakeStayRepo{byKind: map[string][]models.Stay{
		models.StayKindHotel: {hotel("pricey", 300, 4.9), hotel("cheap", 80, 4.1), hotel("mid", 150, 4.5)},
	}}
	svc := &DefaultSearchService{Repo: repo}
	plan := &models.Plan{ListingTypes: []string{models.ListingHotels}, SortBy: models.SortPriceAsc}
	st := &models.ConversationState{Destination: models.Destination{Name: "Miami"}}

	inv, err := svc.Search(context.Background(), plan, st, SearchLimits{PerKind: 5})
	require.NoError(t, err)

	require.Len(t, inv.Hotels, 3)
	assert.Equal(t, "cheap", inv.Hotels[0].ID)
	assert.Equal(t, "mid", inv.Hotels[1].ID)
	assert.Equal(t, "pricey", inv.Hotels[2].ID)
}

func TestSearchGeoAnchorWins(t *testing.T) {
	repo := &fakeStayRepo{byKind: map[string][]models.Stay{}}
	svc := &DefaultSearchService{Repo: repo}
	st := &models.ConversationState{
		Destination: models.Destination{
			Name: "Miami", Lat: floatPtr(25.76), Lon: floatPtr(-80.19),
		},
	}
	plan := &models.Plan{ListingTypes: []string{models.ListingHotels}}

	_, err := svc.Search(context.Background(), plan, st, SearchLimits{PerKind: 5})
	require.NoError(t, err)

	require.Len(t, repo.searches, 1)
	c := repo.searches[0]
	assert.Empty(t, c.City)
	require.Len(t, c.LocationGeo.Coordinates, 2)
	assert.Equal(t, -80.19, c.LocationGeo.Coordinates[0])
	assert.Equal(t, 25.76, c.LocationGeo.Coordinates[1])
}
