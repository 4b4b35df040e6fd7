package models

// ChatMessage is one entry in the conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnInput is the payload for one assistant turn.
type TurnInput struct {
	SessionID string        `json:"sessionId"`
	UserID    string        `json:"userId"`
	Messages  []ChatMessage `json:"messages"`
	// UIEvent carries a tapped chip token, e.g. "SORT_PRICE_ASC".
	UIEvent string       `json:"uiEvent,omitempty"`
	Trip    *TripContext `json:"trip,omitempty"`
	// Ambient is the caller's current location, used as the last trip
	// location fallback.
	Ambient *LatLng `json:"ambient,omitempty"`
}

// Chip is a clickable follow-up suggestion.
type Chip struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// InputDescriptor asks the client to render one structured input.
type InputDescriptor struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Required bool   `json:"required"`
}

// UISection groups trip recommendations for display.
type UISection struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Items []PlaceItem `json:"items"`
}

// UIPayload carries all UI affordances for one turn.
type UIPayload struct {
	Chips    []Chip            `json:"chips,omitempty"`
	Cards    []StayCard        `json:"cards,omitempty"`
	Inputs   []InputDescriptor `json:"inputs,omitempty"`
	Sections []UISection       `json:"sections,omitempty"`
}

// AssistantReply is the rendered natural-language part of a turn.
type AssistantReply struct {
	Text        string   `json:"text"`
	Tone        string   `json:"tone,omitempty"`
	Disclaimers []string `json:"disclaimers,omitempty"`
}

// TurnResult is the full outcome of one assistant turn.
type TurnResult struct {
	SessionID    string          `json:"sessionId"`
	Assistant    AssistantReply  `json:"assistant"`
	FollowUps    []string        `json:"followUps,omitempty"`
	UI           UIPayload       `json:"ui"`
	Intent       Intent          `json:"intent"`
	NextAction   NextAction      `json:"nextAction"`
	Stage        Stage           `json:"stage"`
	Missing      []string        `json:"missing,omitempty"`
	PolicyNotice string          `json:"policyNotice,omitempty"`
	Inventory    *Inventory      `json:"inventory,omitempty"`
	Weather      *WeatherSummary `json:"weather,omitempty"`
	News         []NewsItem      `json:"news,omitempty"`
	Itinerary    *TripPlan       `json:"itinerary,omitempty"`
}
