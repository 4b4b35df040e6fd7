package models

import "time"

// Destination is the resolved place the user wants to stay in.
type Destination struct {
	Name       string    `bson:"name,omitempty" json:"name,omitempty"`
	PlaceID    string    `bson:"placeId,omitempty" json:"placeId,omitempty"`
	Lat        *float64  `bson:"lat,omitempty" json:"lat,omitempty"`
	Lon        *float64  `bson:"lon,omitempty" json:"lon,omitempty"`
	Timezone   string    `bson:"timezone,omitempty" json:"timezone,omitempty"`
	BBox       []float64 `bson:"bbox,omitempty" json:"bbox,omitempty"`
	Confidence float64   `bson:"confidence,omitempty" json:"confidence,omitempty"`
}

// StayDates are ISO calendar strings; no time-zone component is stored.
type StayDates struct {
	CheckIn      string `bson:"checkIn,omitempty" json:"checkIn,omitempty"`
	CheckOut     string `bson:"checkOut,omitempty" json:"checkOut,omitempty"`
	Flexible     bool   `bson:"flexible,omitempty" json:"flexible,omitempty"`
	OriginalText string `bson:"originalText,omitempty" json:"originalText,omitempty"`
}

// GuestCount is the party composition.
type GuestCount struct {
	Adults       int   `bson:"adults" json:"adults"`
	Children     int   `bson:"children" json:"children"`
	ChildrenAges []int `bson:"childrenAges,omitempty" json:"childrenAges,omitempty"`
}

// Budget is the accumulated price range; currency defaults when unset.
type Budget struct {
	Min      *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max      *float64 `bson:"max,omitempty" json:"max,omitempty"`
	Currency string   `bson:"currency,omitempty" json:"currency,omitempty"`
}

// SearchPrefs are the accumulated soft preferences.
type SearchPrefs struct {
	Amenities          []string `bson:"amenities,omitempty" json:"amenities,omitempty"`
	Areas              []string `bson:"areas,omitempty" json:"areas,omitempty"`
	CancellationPolicy string   `bson:"cancellationPolicy,omitempty" json:"cancellationPolicy,omitempty"`
	PropertyType       []string `bson:"propertyType,omitempty" json:"propertyType,omitempty"`
	ListingTypes       []string `bson:"listingTypes,omitempty" json:"listingTypes,omitempty"`
	SortBy             string   `bson:"sortBy,omitempty" json:"sortBy,omitempty"`
}

// ResultsContext supports "show me more" without re-deriving a plan. Written
// only after a successful search.
type ResultsContext struct {
	LastSearchID string   `bson:"lastSearchId,omitempty" json:"lastSearchId,omitempty"`
	ShownIDs     []string `bson:"shownIds,omitempty" json:"shownIds,omitempty"`
}

// Locks are set by the booking flow and read-only to the assistant.
type Locks struct {
	BookingFlowLocked bool `bson:"bookingFlowLocked" json:"bookingFlowLocked"`
}

// TripLocation pins a booked stay on the map.
type TripLocation struct {
	Lat     *float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     *float64 `bson:"lng,omitempty" json:"lng,omitempty"`
	City    string   `bson:"city,omitempty" json:"city,omitempty"`
	State   string   `bson:"state,omitempty" json:"state,omitempty"`
	Country string   `bson:"country,omitempty" json:"country,omitempty"`
	Address string   `bson:"address,omitempty" json:"address,omitempty"`
}

// TripContext describes a booked stay the user may be asking about in-place.
// It is supplied by the booking collaborator, never invented here.
type TripContext struct {
	BookingID    string       `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	StayName     string       `bson:"stayName,omitempty" json:"stayName,omitempty"`
	LocationText string       `bson:"locationText,omitempty" json:"locationText,omitempty"`
	Location     TripLocation `bson:"location,omitempty" json:"location,omitempty"`
	Dates        StayDates    `bson:"dates,omitempty" json:"dates,omitempty"`
	Guests       int          `bson:"guests,omitempty" json:"guests,omitempty"`
	RadiusKm     float64      `bson:"radiusKm,omitempty" json:"radiusKm,omitempty"`
	Summary      string       `bson:"summary,omitempty" json:"summary,omitempty"`
}

// ConversationState is the single long-lived entity of a conversation,
// mutated only by the turn orchestrator between turns.
type ConversationState struct {
	SessionID   string         `bson:"sessionId" json:"sessionId"`
	UserID      string         `bson:"userId" json:"userId"`
	Stage       Stage          `bson:"stage" json:"stage"`
	Destination Destination    `bson:"destination" json:"destination"`
	Dates       StayDates      `bson:"dates" json:"dates"`
	Guests      GuestCount     `bson:"guests" json:"guests"`
	Budget      Budget         `bson:"budget" json:"budget"`
	Preferences SearchPrefs    `bson:"preferences" json:"preferences"`
	LastResults ResultsContext `bson:"lastResults" json:"lastResults"`
	Locks       Locks          `bson:"locks" json:"locks"`
	SearchPlan  *Plan          `bson:"searchPlan,omitempty" json:"searchPlan,omitempty"`
	Trip        *TripContext   `bson:"trip,omitempty" json:"trip,omitempty"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}
