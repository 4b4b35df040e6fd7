package assistant

import (
	"context"
	"strings"
	"time"

	"wayfare/cron"
	"wayfare/models"
	"wayfare/services/geo"
	"wayfare/services/inventory"
	"wayfare/services/planner"
	recsService "wayfare/services/recs"
	"wayfare/services/state"
	"wayfare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxHistoryMessages = 12
	defaultRadiusKm    = 5.0
	defaultPerKind     = 10
)

func (s *DefaultAssistantService) ProcessTurn(ctx context.Context, input models.TurnInput) (*models.TurnResult, error) {
	logger := utils.GetLogger()

	latest := latestUserMessage(input.Messages)
	if strings.TrimSpace(latest) == "" && input.UIEvent == "" {
		return nil, ErrEmptyTurnInput
	}

	st, err := s.Store.Load(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if input.Trip != nil {
		st.Trip = input.Trip
	}

	history := capHistory(input.Messages, maxHistoryMessages)

	// Interpret: extract, accumulate, project.
	plan := s.Extractor.Extract(ctx, history)
	st.SearchPlan = planner.MergePlan(st.SearchPlan, plan)
	planner.ApplyPlanToState(st, st.SearchPlan)
	s.applyUIEvent(st, input.UIEvent)

	outcome := planner.BuildPlanOutcome(st, st.SearchPlan)
	outcome = planner.EnforcePolicy(st, outcome)

	sig := s.classifier().Classify(latest)
	planWantsTrip := st.SearchPlan != nil && st.SearchPlan.Intent == models.IntentTrip
	wantsTrip := sig.Trip || sig.Itinerary || planWantsTrip

	var tripLoc *models.LatLng
	var tripTZ string
	if wantsTrip && !outcome.SafeMode {
		tripLoc, tripTZ = s.resolveTripLocation(ctx, st, input.Ambient)
		// Heuristics only override the planner when a location actually
		// resolved; otherwise the planner's verdict stands.
		if tripLoc != nil {
			outcome.Intent = models.IntentTrip
			outcome.NextAction = models.ActionRunTrip
			outcome.Missing = nil
		}
	}

	result := &models.TurnResult{
		SessionID:    st.SessionID,
		Intent:       outcome.Intent,
		NextAction:   outcome.NextAction,
		Missing:      outcome.Missing,
		PolicyNotice: outcome.PolicyNotice,
	}

	var recsResult *recsService.Result
	switch outcome.NextAction {
	case models.ActionRunSearch:
		inv := s.runSearch(ctx, st, input.UIEvent)
		result.Inventory = inv
	case models.ActionRunTrip:
		recsResult = s.runTrip(ctx, result, st, sig, tripLoc, tripTZ, latest)
	}

	// A weather question without trip context still deserves an answer.
	if sig.Weather && result.Weather == nil && s.Weather != nil {
		if loc, tz := s.resolveTripLocation(ctx, st, input.Ambient); loc != nil {
			if summary, werr := s.Weather.Summarize(ctx, *loc, tz); werr == nil {
				result.Weather = summary
			} else {
				logger.Warn("weather lookup failed", zap.Error(werr))
			}
		}
	}

	reply, followUps, ui := s.Renderer.Render(ctx, RenderInput{
		State:         st,
		Plan:          st.SearchPlan,
		Outcome:       outcome,
		Messages:      history,
		LatestMessage: latest,
		Inventory:     result.Inventory,
		Recs:          recsResult,
		Itinerary:     result.Itinerary,
	})
	result.Assistant = reply
	result.FollowUps = followUps
	result.UI = ui

	planner.UpdateStageFromAction(st, outcome.NextAction)
	result.Stage = st.Stage

	st = state.Normalize(st)
	if err := s.Store.Save(ctx, st); err != nil {
		// Losing the turn's accumulation would silently fork the
		// conversation, so the save failure fails the turn.
		return nil, err
	}
	return result, nil
}

func (s *DefaultAssistantService) ResetConversation(ctx context.Context, sessionID, userID string) error {
	owned, err := s.Store.Exists(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrConversationNotFound
	}
	return s.Store.Delete(ctx, sessionID)
}

// runSearch executes an inventory search and records the results context only
// when the search succeeds, keeping "show more" anchored to real results.
func (s *DefaultAssistantService) runSearch(ctx context.Context, st *models.ConversationState, uiEvent string) *models.Inventory {
	perKind := s.ResultsPerKind
	if perKind <= 0 {
		perKind = defaultPerKind
	}
	limits := inventory.SearchLimits{PerKind: perKind}
	if uiEvent == "SHOW_MORE" {
		limits.ExcludeIDs = st.LastResults.ShownIDs
	}

	inv, err := s.Inventory.Search(ctx, st.SearchPlan, st, limits)
	if err != nil {
		utils.GetLogger().Error("inventory search failed",
			zap.String("sessionId", st.SessionID), zap.Error(err))
		return &models.Inventory{Homes: []models.StayCard{}, Hotels: []models.StayCard{}}
	}

	shown := make([]string, 0, len(inv.Homes)+len(inv.Hotels))
	for _, c := range inv.Homes {
		shown = append(shown, c.ID)
	}
	for _, c := range inv.Hotels {
		shown = append(shown, c.ID)
	}
	if uiEvent == "SHOW_MORE" {
		shown = append(st.LastResults.ShownIDs, shown...)
	}
	st.LastResults = models.ResultsContext{
		LastSearchID: uuid.NewString(),
		ShownIDs:     shown,
	}
	return inv
}

// runTrip fetches recommendations for the resolved location plus the optional
// itinerary and news extras. Provider failures degrade the section, never the
// turn.
func (s *DefaultAssistantService) runTrip(ctx context.Context, result *models.TurnResult, st *models.ConversationState, sig Signals, loc *models.LatLng, tz, latest string) *recsService.Result {
	logger := utils.GetLogger()
	if loc == nil || s.Recs == nil {
		return nil
	}

	radius := s.DefaultRadiusKm
	if radius <= 0 {
		radius = defaultRadiusKm
	}
	if st.Trip != nil && st.Trip.RadiusKm > 0 {
		radius = st.Trip.RadiusKm
	}

	recs, err := s.Recs.Recommendations(ctx, *loc, tz, radius, time.Now())
	if err != nil {
		logger.Error("recommendations failed",
			zap.String("sessionId", st.SessionID), zap.Error(err))
		return nil
	}
	result.Weather = recs.Weather

	if sig.Itinerary {
		result.Itinerary = BuildItinerary(recs.Groups, sig.Days)
	}

	if s.News != nil {
		query := tripNewsQuery(st)
		lang := DetectLanguage(latest, planLanguage(st.SearchPlan), s.DefaultLanguage)
		if items, nerr := s.News.LocalNews(ctx, query, lang); nerr == nil {
			result.News = items
		} else {
			logger.Warn("local news lookup failed", zap.Error(nerr))
		}
	}

	s.enqueueDeltaRefresh(loc, tz)
	return recs
}

func (s *DefaultAssistantService) enqueueDeltaRefresh(loc *models.LatLng, tz string) {
	if s.Queue == nil || loc == nil {
		return
	}
	task, err := cron.NewPackRefreshTask(loc.Lat, loc.Lon, tz)
	if err != nil {
		return
	}
	if _, err := s.Queue.Enqueue(task); err != nil {
		utils.GetLogger().Warn("failed to enqueue pack refresh", zap.Error(err))
	}
}

// applyUIEvent translates a tapped chip into plan mutations. Chip taps are
// treated as explicit search refinements.
func (s *DefaultAssistantService) applyUIEvent(st *models.ConversationState, event string) {
	if event == "" {
		return
	}
	if st.SearchPlan == nil {
		st.SearchPlan = models.DefaultPlan()
	}

	switch event {
	case "SORT_PRICE_ASC":
		st.SearchPlan.SortBy = models.SortPriceAsc
	case "SORT_PRICE_DESC":
		st.SearchPlan.SortBy = models.SortPriceDesc
	case "SORT_RATING":
		st.SearchPlan.SortBy = models.SortRating
	case "FILTER_HOTELS":
		st.SearchPlan.ListingTypes = []string{models.ListingHotels}
	case "FILTER_HOMES":
		st.SearchPlan.ListingTypes = []string{models.ListingHomes}
	case "SHOW_MORE":
		// Exclusions are applied at dispatch time from LastResults.
	default:
		return
	}
	st.SearchPlan.Intent = models.IntentSearch
	planner.ApplyPlanToState(st, st.SearchPlan)
}

// resolveTripLocation walks the fallback chain: explicit trip coordinates,
// then geocoded trip text, then the accumulated destination, then the
// caller's ambient location.
func (s *DefaultAssistantService) resolveTripLocation(ctx context.Context, st *models.ConversationState, ambient *models.LatLng) (*models.LatLng, string) {
	logger := utils.GetLogger()

	if t := st.Trip; t != nil {
		if t.Location.Lat != nil && t.Location.Lng != nil {
			return &models.LatLng{Lat: *t.Location.Lat, Lon: *t.Location.Lng}, ""
		}
		for _, text := range []string{t.Location.Address, t.LocationText, t.Location.City} {
			if text == "" {
				continue
			}
			if r, err := s.geocode(ctx, text); r != nil {
				return &models.LatLng{Lat: r.Lat, Lon: r.Lon}, r.Timezone
			} else if err != nil {
				logger.Warn("trip geocoding failed", zap.String("text", text), zap.Error(err))
			}
		}
	}

	if st.Destination.Lat != nil && st.Destination.Lon != nil {
		return &models.LatLng{Lat: *st.Destination.Lat, Lon: *st.Destination.Lon}, st.Destination.Timezone
	}
	if st.Destination.Name != "" {
		if r, err := s.geocode(ctx, st.Destination.Name); r != nil {
			st.Destination.Lat = &r.Lat
			st.Destination.Lon = &r.Lon
			st.Destination.Timezone = r.Timezone
			st.Destination.Confidence = r.Confidence
			return &models.LatLng{Lat: r.Lat, Lon: r.Lon}, r.Timezone
		} else if err != nil {
			logger.Warn("destination geocoding failed",
				zap.String("name", st.Destination.Name), zap.Error(err))
		}
	}

	if ambient != nil {
		return ambient, ""
	}
	return nil, ""
}

func (s *DefaultAssistantService) geocode(ctx context.Context, text string) (*geo.Result, error) {
	if s.Geo == nil {
		return nil, nil
	}
	return s.Geo.Geocode(ctx, text)
}

func (s *DefaultAssistantService) classifier() Classifier {
	if s.Classifier != nil {
		return s.Classifier
	}
	return KeywordClassifier{}
}

func latestUserMessage(messages []models.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

func capHistory(messages []models.ChatMessage, max int) []models.ChatMessage {
	if len(messages) <= max {
		return messages
	}
	return messages[len(messages)-max:]
}

func tripNewsQuery(st *models.ConversationState) string {
	if st.Trip != nil {
		if st.Trip.Location.City != "" {
			return st.Trip.Location.City
		}
		if st.Trip.LocationText != "" {
			return st.Trip.LocationText
		}
	}
	return st.Destination.Name
}

func planLanguage(plan *models.Plan) string {
	if plan == nil {
		return ""
	}
	return plan.Language
}
