package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

// Signals is the heuristic read of the latest user message.
type Signals struct {
	Trip      bool
	Weather   bool
	Itinerary bool
	Days      int
}

// Classifier detects trip-assist requests from raw text. The keyword
// implementation below can be swapped for a model-based one without
// touching the orchestrator.
type Classifier interface {
	Classify(text string) Signals
}

var tripTerms = []string{
	"near me", "nearby", "around here", "close by", "walking distance",
	"things to do", "what to do", "what can i do", "places to visit",
	"where to eat", "where can i eat", "restaurants near", "attractions",
	"sightseeing", "explore", "visit around",
}

var weatherTerms = []string{
	"weather", "rain", "raining", "sunny", "forecast", "temperature",
	"hot today", "cold today", "umbrella",
}

var itineraryTerms = []string{
	"itinerary", "day plan", "plan my day", "plan my days", "schedule",
	"what should i do tomorrow", "plan for",
}

var dayCountPattern = regexp.MustCompile(`(\d+)[\s-]*day`)

// KeywordClassifier is the data-driven default classifier.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(text string) Signals {
	lower := strings.ToLower(text)
	var sig Signals

	for _, term := range tripTerms {
		if strings.Contains(lower, term) {
			sig.Trip = true
			break
		}
	}
	for _, term := range weatherTerms {
		if strings.Contains(lower, term) {
			sig.Weather = true
			break
		}
	}
	for _, term := range itineraryTerms {
		if strings.Contains(lower, term) {
			sig.Itinerary = true
			sig.Trip = true
			break
		}
	}

	if m := dayCountPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			sig.Days = n
			sig.Itinerary = true
			sig.Trip = true
		}
	}
	if strings.Contains(lower, "weekend") && sig.Itinerary {
		sig.Days = 2
	}
	return sig
}

var _ Classifier = KeywordClassifier{}
