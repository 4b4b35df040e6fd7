package models

// Intent is the classified purpose of the latest user turn.
type Intent string

const (
	IntentSearch    Intent = "SEARCH"
	IntentHelp      Intent = "HELP"
	IntentSmallTalk Intent = "SMALL_TALK"
	IntentTrip      Intent = "TRIP"
)

// NextAction is what the orchestrator should do for this turn.
type NextAction string

const (
	ActionRunSearch         NextAction = "RUN_SEARCH"
	ActionRunTrip           NextAction = "RUN_TRIP"
	ActionAskForDestination NextAction = "ASK_FOR_DESTINATION"
	ActionAskForDates       NextAction = "ASK_FOR_DATES"
	ActionAskForGuests      NextAction = "ASK_FOR_GUESTS"
	ActionHelp              NextAction = "HELP"
	ActionSmallTalk         NextAction = "SMALL_TALK"
)

// Stage is a derived projection of (intent, nextAction); only the planner's
// stage transition writes it.
type Stage string

const (
	StageNeedDestination Stage = "NEED_DESTINATION"
	StageNeedDates       Stage = "NEED_DATES"
	StageNeedGuests      Stage = "NEED_GUESTS"
	StageShowResults     Stage = "SHOW_RESULTS"
	StageDetails         Stage = "DETAILS"
	StageQuote           Stage = "QUOTE"
	StageReadyToBook     Stage = "READY_TO_BOOK"
	StageBooked          Stage = "BOOKED"
	StageTripAssist      Stage = "TRIP_ASSIST"
)

// Listing types a plan can target.
const (
	ListingHomes  = "HOMES"
	ListingHotels = "HOTELS"
)

// Sort orders understood by the inventory search.
const (
	SortRecommended = "RECOMMENDED"
	SortPriceAsc    = "PRICE_ASC"
	SortPriceDesc   = "PRICE_DESC"
	SortRating      = "RATING"
)

// PlanLocation is the location fragment extracted from free text.
type PlanLocation struct {
	City    string   `json:"city,omitempty"`
	State   string   `json:"state,omitempty"`
	Country string   `json:"country,omitempty"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// PlanDates holds extracted stay dates as ISO calendar strings.
type PlanDates struct {
	CheckIn      string `json:"checkIn,omitempty"`
	CheckOut     string `json:"checkOut,omitempty"`
	Flexible     bool   `json:"flexible,omitempty"`
	OriginalText string `json:"originalText,omitempty"`
}

// PlanGuests holds the extracted party size.
type PlanGuests struct {
	Adults       int   `json:"adults,omitempty"`
	Children     int   `json:"children,omitempty"`
	ChildrenAges []int `json:"childrenAges,omitempty"`
}

// PlanBudget holds the extracted price range.
type PlanBudget struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// PlanPreferences holds soft search refinements.
type PlanPreferences struct {
	Amenities          []string `json:"amenities,omitempty"`
	Areas              []string `json:"areas,omitempty"`
	CancellationPolicy string   `json:"cancellationPolicy,omitempty"`
	PropertyType       []string `json:"propertyType,omitempty"`
}

// HomeFilters are filters that only apply to home listings.
type HomeFilters struct {
	Bedrooms    int  `json:"bedrooms,omitempty"`
	Beds        int  `json:"beds,omitempty"`
	Bathrooms   int  `json:"bathrooms,omitempty"`
	EntirePlace bool `json:"entirePlace,omitempty"`
}

// HotelFilters are filters that only apply to hotel listings.
type HotelFilters struct {
	MinStars int    `json:"minStars,omitempty"`
	MealPlan string `json:"mealPlan,omitempty"`
}

// Plan is the structured, per-turn extraction of travel intent. A plan is
// merged into the accumulated ConversationState.SearchPlan, never applied
// wholesale: empty fields in a new plan never erase previously known values.
type Plan struct {
	Intent       Intent           `json:"intent,omitempty"`
	ListingTypes []string         `json:"listingTypes,omitempty"`
	Location     *PlanLocation    `json:"location,omitempty"`
	Dates        *PlanDates       `json:"dates,omitempty"`
	Guests       *PlanGuests      `json:"guests,omitempty"`
	Preferences  *PlanPreferences `json:"preferences,omitempty"`
	HomeFilters  *HomeFilters     `json:"homeFilters,omitempty"`
	HotelFilters *HotelFilters    `json:"hotelFilters,omitempty"`
	Budget       *PlanBudget      `json:"budget,omitempty"`
	SortBy       string           `json:"sortBy,omitempty"`
	Limit        int              `json:"limit,omitempty"`
	Language     string           `json:"language,omitempty"`
	Notes        []string         `json:"notes,omitempty"`
}

// DefaultPlan is the fallback when extraction yields nothing usable.
func DefaultPlan() *Plan {
	return &Plan{Intent: IntentSmallTalk}
}
