package santa

// ViolationKind names one way an assignment set can break the exchange rules.
type ViolationKind string

const (
	ViolationSelfAssignment     ViolationKind = "self_assignment"
	ViolationUnknownParticipant ViolationKind = "unknown_participant"
	ViolationDuplicateGiver     ViolationKind = "duplicate_giver"
	ViolationDuplicateReceiver  ViolationKind = "duplicate_receiver"
	ViolationUncoveredGiver     ViolationKind = "uncovered_giver"
	ViolationUncoveredReceiver  ViolationKind = "uncovered_receiver"
)

// Violation describes a single problem found by Check.
// Index is the offending assignment's position, or -1 for coverage problems.
type Violation struct {
	Kind          ViolationKind `json:"kind"`
	Index         int           `json:"index"`
	ParticipantID string        `json:"participant_id"`
}

// Report is the structured result of Check.
type Report struct {
	Violations []Violation `json:"violations"`
}

// OK reports whether no violation was found.
func (r Report) OK() bool { return len(r.Violations) == 0 }

// Validate reports whether assignments form a valid exchange over participants:
// no self-assignment, only roster ids, every participant giving exactly once and
// receiving exactly once. It stops at the first problem and never errors.
func Validate(assignments []Assignment, participants []Participant) bool {
	ids := rosterIDs(participants)
	givers := make(map[string]struct{}, len(assignments))
	receivers := make(map[string]struct{}, len(assignments))

	for _, a := range assignments {
		if a.GiverID == a.ReceiverID {
			return false
		}
		if _, ok := ids[a.GiverID]; !ok {
			return false
		}
		if _, ok := ids[a.ReceiverID]; !ok {
			return false
		}
		if _, dup := givers[a.GiverID]; dup {
			return false
		}
		if _, dup := receivers[a.ReceiverID]; dup {
			return false
		}
		givers[a.GiverID] = struct{}{}
		receivers[a.ReceiverID] = struct{}{}
	}
	return len(givers) == len(participants) && len(receivers) == len(participants)
}

// Check walks every assignment and collects all violations instead of
// stopping at the first one. Check(a, p).OK() == Validate(a, p) for rosters
// without duplicate ids.
func Check(assignments []Assignment, participants []Participant) Report {
	ids := rosterIDs(participants)
	givers := make(map[string]struct{}, len(assignments))
	receivers := make(map[string]struct{}, len(assignments))
	var report Report

	add := func(kind ViolationKind, index int, id string) {
		report.Violations = append(report.Violations, Violation{Kind: kind, Index: index, ParticipantID: id})
	}

	for i, a := range assignments {
		if a.GiverID == a.ReceiverID {
			add(ViolationSelfAssignment, i, a.GiverID)
		}
		if _, ok := ids[a.GiverID]; !ok {
			add(ViolationUnknownParticipant, i, a.GiverID)
		}
		if _, ok := ids[a.ReceiverID]; !ok && a.ReceiverID != a.GiverID {
			add(ViolationUnknownParticipant, i, a.ReceiverID)
		}
		if _, dup := givers[a.GiverID]; dup {
			add(ViolationDuplicateGiver, i, a.GiverID)
		}
		if _, dup := receivers[a.ReceiverID]; dup {
			add(ViolationDuplicateReceiver, i, a.ReceiverID)
		}
		givers[a.GiverID] = struct{}{}
		receivers[a.ReceiverID] = struct{}{}
	}

	for _, p := range participants {
		if _, ok := givers[p.ID]; !ok {
			add(ViolationUncoveredGiver, -1, p.ID)
		}
		if _, ok := receivers[p.ID]; !ok {
			add(ViolationUncoveredReceiver, -1, p.ID)
		}
	}
	return report
}

func rosterIDs(participants []Participant) map[string]struct{} {
	ids := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		ids[p.ID] = struct{}{}
	}
	return ids
}
