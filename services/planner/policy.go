package planner

import "wayfare/models"

// PolicyNoticeBookingLocked marks a turn that ran under an active booking lock.
const PolicyNoticeBookingLocked = "BOOKING_LOCKED"

// EnforcePolicy applies the global booking lock to a planner outcome. While
// a booking flow is in progress, new searches are downgraded to help; every
// other intent passes through but still carries the notice. With no lock
// active, the outcome is returned unchanged.
func EnforcePolicy(st *models.ConversationState, out Outcome) Outcome {
	if st == nil || !st.Locks.BookingFlowLocked {
		return out
	}
	out.PolicyNotice = PolicyNoticeBookingLocked
	if out.Intent == models.IntentSearch {
		out.Intent = models.IntentHelp
		out.NextAction = models.ActionHelp
		out.Missing = nil
	}
	return out
}
