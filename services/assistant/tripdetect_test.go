package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTripSignals(t *testing.T) {
	c := KeywordClassifier{}

	sig := c.Classify("what are some things to do near me?")
	assert.True(t, sig.Trip)
	assert.False(t, sig.Weather)
	assert.False(t, sig.Itinerary)

	sig = c.Classify("where to eat tonight")
	assert.True(t, sig.Trip)
}

func TestClassifyWeatherSignal(t *testing.T) {
	c := KeywordClassifier{}

	sig := c.Classify("is it going to rain tomorrow?")
	assert.True(t, sig.Weather)
	assert.False(t, sig.Trip)
}

func TestClassifyItineraryImpliesTrip(t *testing.T) {
	c := KeywordClassifier{}

	sig := c.Classify("build me an itinerary please")
	assert.True(t, sig.Itinerary)
	assert.True(t, sig.Trip)
}

func TestClassifyDayCount(t *testing.T) {
	c := KeywordClassifier{}

	sig := c.Classify("plan a 3 day trip around here")
	assert.True(t, sig.Itinerary)
	assert.True(t, sig.Trip)
	assert.Equal(t, 3, sig.Days)

	sig = c.Classify("give me a 2-day plan")
	assert.Equal(t, 2, sig.Days)
}

func TestClassifyWeekendItinerary(t *testing.T) {
	c := KeywordClassifier{}

	sig := c.Classify("plan my weekend itinerary")
	assert.True(t, sig.Itinerary)
	assert.Equal(t, 2, sig.Days)
}

func TestClassifyPlainSearchHasNoSignals(t *testing.T) {
	c := KeywordClassifier{}

	sig := c.Classify("hotels in Miami for 2 adults")
	assert.False(t, sig.Trip)
	assert.False(t, sig.Weather)
	assert.False(t, sig.Itinerary)
	assert.Zero(t, sig.Days)
}
