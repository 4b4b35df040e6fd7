package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	stayRepo "wayfare/database/repository/stay"
	"wayfare/models"
	"wayfare/utils"

	"go.uber.org/zap"
)

const (
	defaultPerKind   = 10
	searchRadiusKm   = 25.0
	defaultMinRating = 0.0
)

// DefaultSearchService searches the stay inventory, one concurrent branch
// per listing kind, and ranks each branch.
type DefaultSearchService struct {
	Repo stayRepo.StayRepository
}

func (s *DefaultSearchService) Search(ctx context.Context, plan *models.Plan, st *models.ConversationState, limits SearchLimits) (*models.Inventory, error) {
	logger := utils.GetLogger()

	kinds := requestedKinds(plan, st)
	perKind := limits.PerKind
	if perKind <= 0 {
		perKind = defaultPerKind
	}

	inv := &models.Inventory{
		Homes:      []models.StayCard{},
		Hotels:     []models.StayCard{},
		MatchTypes: map[string]string{},
	}

	type branchResult struct {
		kind      string
		cards     []models.StayCard
		matchType string
		err       error
	}

	resultsCh := make(chan branchResult, len(kinds))
	var wg sync.WaitGroup
	for _, kind := range kinds {
		wg.Add(1)
		go func(kind string) {
			defer wg.Done()
			cards, matchType, err := s.searchKind(ctx, kind, plan, st, perKind, limits.ExcludeIDs)
			resultsCh <- branchResult{kind: kind, cards: cards, matchType: matchType, err: err}
		}(kind)
	}
	wg.Wait()
	close(resultsCh)

	var firstErr error
	for res := range resultsCh {
		if res.err != nil {
			logger.Warn("inventory branch failed",
				zap.String("kind", res.kind), zap.Error(res.err))
			if firstErr == nil {
				firstErr = res.err
			}
			res.matchType = MatchNone
		}
		switch res.kind {
		case models.StayKindHome:
			inv.Homes = res.cards
			inv.MatchTypes[models.ListingHomes] = res.matchType
		case models.StayKindHotel:
			inv.Hotels = res.cards
			inv.MatchTypes[models.ListingHotels] = res.matchType
		}
	}
	if inv.Homes == nil {
		inv.Homes = []models.StayCard{}
	}
	if inv.Hotels == nil {
		inv.Hotels = []models.StayCard{}
	}

	// A single failed branch still yields a usable result; fail only when
	// every branch failed and nothing was found.
	if firstErr != nil && len(inv.Homes) == 0 && len(inv.Hotels) == 0 {
		return inv, fmt.Errorf("inventory search failed: %w", firstErr)
	}
	return inv, nil
}

// searchKind runs the filtered search for one listing kind, relaxing the
// soft filters once when the strict pass finds nothing.
func (s *DefaultSearchService) searchKind(ctx context.Context, kind string, plan *models.Plan, st *models.ConversationState, limit int, excludeIDs []string) ([]models.StayCard, string, error) {
	criteria := buildCriteria(kind, plan, st, limit, excludeIDs)

	stays, err := s.Repo.Search(ctx, criteria)
	if err != nil {
		return nil, MatchNone, err
	}
	matchType := MatchExact
	if len(stays) == 0 && hasSoftFilters(criteria) {
		relaxed := criteria
		relaxed.Amenities = nil
		relaxed.PropertyTypes = nil
		relaxed.PriceMin = nil
		relaxed.PriceMax = nil
		stays, err = s.Repo.Search(ctx, relaxed)
		if err != nil {
			return nil, MatchNone, err
		}
		matchType = MatchPartial
	}
	if len(stays) == 0 {
		return []models.StayCard{}, MatchNone, nil
	}

	cards := rankAndProject(stays, plan, st)
	if len(cards) > limit {
		cards = cards[:limit]
	}
	return cards, matchType, nil
}

// requestedKinds maps the plan's listing types to stay kinds; with no
// explicit preference both kinds are searched.
func requestedKinds(plan *models.Plan, st *models.ConversationState) []string {
	var listingTypes []string
	if plan != nil && len(plan.ListingTypes) > 0 {
		listingTypes = plan.ListingTypes
	} else if st != nil && len(st.Preferences.ListingTypes) > 0 {
		listingTypes = st.Preferences.ListingTypes
	}

	kinds := make([]string, 0, 2)
	for _, lt := range listingTypes {
		switch lt {
		case models.ListingHomes:
			kinds = append(kinds, models.StayKindHome)
		case models.ListingHotels:
			kinds = append(kinds, models.StayKindHotel)
		}
	}
	if len(kinds) == 0 {
		kinds = []string{models.StayKindHome, models.StayKindHotel}
	}
	return kinds
}

func buildCriteria(kind string, plan *models.Plan, st *models.ConversationState, limit int, excludeIDs []string) stayRepo.StaySearchCriteria {
	criteria := stayRepo.StaySearchCriteria{
		Kind:       kind,
		Limit:      limit * 3, // headroom for ranking before the cut
		ExcludeIDs: excludeIDs,
	}

	if st != nil {
		if st.Destination.Lat != nil && st.Destination.Lon != nil {
			criteria.LocationGeo = models.GeoPoint{
				Type:        "Point",
				Coordinates: []float64{*st.Destination.Lon, *st.Destination.Lat},
			}
			criteria.MaxDistanceKm = searchRadiusKm
		} else if st.Destination.Name != "" {
			criteria.City = st.Destination.Name
		}
		if st.Guests.Adults > 0 {
			criteria.MinGuests = st.Guests.Adults + st.Guests.Children
		}
		criteria.PriceMin = st.Budget.Min
		criteria.PriceMax = st.Budget.Max
		criteria.Amenities = st.Preferences.Amenities
		criteria.PropertyTypes = st.Preferences.PropertyType
	}
	if plan != nil {
		if kind == models.StayKindHome && plan.HomeFilters != nil {
			criteria.MinBedrooms = plan.HomeFilters.Bedrooms
		}
		if kind == models.StayKindHotel && plan.HotelFilters != nil {
			criteria.MinStars = plan.HotelFilters.MinStars
		}
	}
	return criteria
}

func hasSoftFilters(c stayRepo.StaySearchCriteria) bool {
	return len(c.Amenities) > 0 || len(c.PropertyTypes) > 0 ||
		c.PriceMin != nil || c.PriceMax != nil
}

// rankAndProject orders stays by the requested sort and converts them to
// cards. The recommended order blends rating weight with proximity.
func rankAndProject(stays []models.Stay, plan *models.Plan, st *models.ConversationState) []models.StayCard {
	var anchor *models.LatLng
	if st != nil && st.Destination.Lat != nil && st.Destination.Lon != nil {
		anchor = &models.LatLng{Lat: *st.Destination.Lat, Lon: *st.Destination.Lon}
	}

	cards := make([]models.StayCard, 0, len(stays))
	for _, stay := range stays {
		card := models.StayCard{
			ID:            stay.ID,
			Name:          stay.Name,
			Kind:          stay.Kind,
			City:          stay.City,
			Country:       stay.Country,
			PricePerNight: stay.PricePerNight,
			Currency:      stay.Currency,
			Rating:        stay.Rating,
			RatingCount:   stay.RatingCount,
			PhotoURL:      stay.PhotoURL,
		}
		if anchor != nil && len(stay.LocationGeo.Coordinates) == 2 {
			card.DistanceKm = utils.HaversineKm(
				anchor.Lat, anchor.Lon,
				stay.LocationGeo.Coordinates[1], stay.LocationGeo.Coordinates[0],
			)
		}
		cards = append(cards, card)
	}

	sortBy := models.SortRecommended
	if plan != nil && plan.SortBy != "" {
		sortBy = plan.SortBy
	} else if st != nil && st.Preferences.SortBy != "" {
		sortBy = st.Preferences.SortBy
	}

	switch sortBy {
	case models.SortPriceAsc:
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].PricePerNight < cards[j].PricePerNight })
	case models.SortPriceDesc:
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].PricePerNight > cards[j].PricePerNight })
	case models.SortRating:
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Rating > cards[j].Rating })
	default:
		sort.SliceStable(cards, func(i, j int) bool {
			return recommendScore(cards[i]) > recommendScore(cards[j])
		})
	}
	return cards
}

func recommendScore(c models.StayCard) float64 {
	score := c.Rating * 10
	if c.RatingCount > 100 {
		score += 5
	}
	score -= c.DistanceKm * 0.2
	return score
}

var _ SearchService = (*DefaultSearchService)(nil)
