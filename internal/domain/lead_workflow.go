package domain

// validTransitions is the fixed status graph. Transitions never skip a
// stage and never move backward; closed states have no exits.
var validTransitions = map[LeadStatus][]LeadStatus{
	LeadStatusNew:        {LeadStatusContacted},
	LeadStatusContacted:  {LeadStatusQuoteSent, LeadStatusClosedLost},
	LeadStatusQuoteSent:  {LeadStatusInterested, LeadStatusClosedLost},
	LeadStatusInterested: {LeadStatusClosedWon, LeadStatusClosedLost},
	LeadStatusClosedWon:  {},
	LeadStatusClosedLost: {},
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(status LeadStatus) bool {
	return status == LeadStatusClosedWon || status == LeadStatusClosedLost
}

// IsValidTransition checks whether a lead may move from one status to
// another. Identity transitions are accepted as no-ops, except on
// terminal states which reject every request including same-state ones.
func IsValidTransition(from, to LeadStatus) bool {
	if IsTerminal(from) {
		return false
	}
	if from == to {
		return true
	}
	for _, candidate := range validTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// ValidNextStatuses returns the statuses reachable from the given one.
func ValidNextStatuses(from LeadStatus) []LeadStatus {
	next := validTransitions[from]
	out := make([]LeadStatus, len(next))
	copy(out, next)
	return out
}
