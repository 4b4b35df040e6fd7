package planner

import "wayfare/models"

// Slot names reported as missing for a search intent.
const (
	SlotDestination = "DESTINATION"
	SlotDates       = "DATES"
	SlotGuests      = "GUESTS"
)

// Outcome is the planner's verdict for one turn.
type Outcome struct {
	Intent       models.Intent
	Missing      []string
	NextAction   models.NextAction
	SafeMode     bool
	PolicyNotice string
}

// BuildPlanOutcome computes the turn outcome from the accumulated state and
// the merged plan. Missing slots are checked against the state, not the
// plan, so information from earlier turns keeps satisfying them. Only the
// destination blocks a search; dates and guests are soft refinements the UI
// surfaces as affordances.
func BuildPlanOutcome(st *models.ConversationState, plan *models.Plan) Outcome {
	intent := models.IntentSmallTalk
	if plan != nil && plan.Intent != "" {
		intent = plan.Intent
	}

	out := Outcome{Intent: intent}
	if st != nil {
		out.SafeMode = st.Locks.BookingFlowLocked ||
			st.Stage == models.StageQuote || st.Stage == models.StageReadyToBook
	}

	if intent == models.IntentSearch {
		if !HasDestination(st) {
			out.Missing = append(out.Missing, SlotDestination)
		}
		if !HasDates(st) {
			out.Missing = append(out.Missing, SlotDates)
		}
		if !HasGuests(st) {
			out.Missing = append(out.Missing, SlotGuests)
		}
	}

	switch {
	case intent == models.IntentHelp:
		out.NextAction = models.ActionHelp
	case intent == models.IntentSearch && !HasDestination(st):
		out.NextAction = models.ActionAskForDestination
	case intent == models.IntentSearch:
		out.NextAction = models.ActionRunSearch
	default:
		out.NextAction = models.ActionSmallTalk
	}
	return out
}

// HasDestination reports whether the state carries a usable destination:
// either a name or a full coordinate pair.
func HasDestination(st *models.ConversationState) bool {
	if st == nil {
		return false
	}
	if st.Destination.Name != "" {
		return true
	}
	return st.Destination.Lat != nil && st.Destination.Lon != nil
}

// HasDates reports whether a check-in date is known.
func HasDates(st *models.ConversationState) bool {
	return st != nil && st.Dates.CheckIn != ""
}

// HasGuests reports whether the party size is known.
func HasGuests(st *models.ConversationState) bool {
	return st != nil && st.Guests.Adults > 0
}

// stageByAction is the single source of stage transitions. Actions outside
// the mapping leave the stage unchanged.
var stageByAction = map[models.NextAction]models.Stage{
	models.ActionRunSearch:         models.StageShowResults,
	models.ActionRunTrip:           models.StageTripAssist,
	models.ActionAskForDestination: models.StageNeedDestination,
	models.ActionAskForDates:       models.StageNeedDates,
	models.ActionAskForGuests:      models.StageNeedGuests,
}

// UpdateStageFromAction derives the stage from the executed action. This is
// the only writer of ConversationState.Stage.
func UpdateStageFromAction(st *models.ConversationState, action models.NextAction) {
	if st == nil {
		return
	}
	if stage, ok := stageByAction[action]; ok {
		st.Stage = stage
	}
}
