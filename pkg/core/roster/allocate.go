package roster

import (
	"sort"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// Skip reasons reported for slots that could not be filled
const (
	SkipNoEligibleMembers = "no eligible members"
	SkipAlreadyFilled     = "already filled"
)

// Assignment is one planned duty assignment produced by Allocate
type Assignment struct {
	Date      string
	Activity  string
	MemberID  string
	EventTime string
}

// SkippedSlot records a (date, activity) pair that was not filled, with the
// reason. Skips are expected during onboarding (partial eligibility setup)
// and are reported rather than treated as errors.
type SkippedSlot struct {
	Date     string
	Activity string
	Reason   string
}

// Plan is the outcome of one allocation run
type Plan struct {
	Assignments []Assignment
	Skipped     []SkippedSlot
}

// Allocate picks one eligible member per (occurrence, activity) pair using a
// per-activity round-robin cursor.
//
// Cursors live in a map local to this call and start at zero the first time
// an activity is encountered, so separate runs do not continue each other's
// rotation; a month regenerated twice restarts from the same member. The
// cursor for an activity is shared across the whole run and advances
// unconditionally on every attempt, including attempts whose slot turns out
// to be already filled (two events on the same date sharing an activity).
// That cursor advance on a skipped slot is a documented quirk of the
// rotation scheme, kept rather than corrected.
//
// Eligible members for an activity are the eligibility set filtered to the
// current member list and ordered by member ID ascending, which makes the
// selection reproducible for identical inputs.
func Allocate(occurrences []Occurrence, index EligibilityIndex, members []db.Member) Plan {
	membersByID := make(map[string]db.Member, len(members))
	for _, member := range members {
		membersByID[member.ID] = member
	}

	// Resolved per activity once per run so the rotation order is stable
	eligibleCache := make(map[string][]string)
	eligibleFor := func(activity string) []string {
		if cached, ok := eligibleCache[activity]; ok {
			return cached
		}
		var eligible []string
		for _, memberID := range index[activity] {
			if _, ok := membersByID[memberID]; ok {
				eligible = append(eligible, memberID)
			}
		}
		sort.Strings(eligible)
		eligibleCache[activity] = eligible
		return eligible
	}

	cursors := make(map[string]int)
	filled := make(map[[2]string]bool)

	var plan Plan
	for _, occurrence := range occurrences {
		date := occurrence.DateString()
		assigned := make(map[string]bool)

		for _, activity := range NormalizeActivities(occurrence.Event.Activities) {
			// Guard against a malformed event listing the same activity
			// twice; skipped before the cursor moves
			if assigned[activity] {
				continue
			}

			eligible := eligibleFor(activity)
			if len(eligible) == 0 {
				plan.Skipped = append(plan.Skipped, SkippedSlot{
					Date:     date,
					Activity: activity,
					Reason:   SkipNoEligibleMembers,
				})
				continue
			}

			memberID := eligible[cursors[activity]%len(eligible)]
			cursors[activity]++

			// A slot can already be filled when another event on the same
			// date carries the same activity. The cursor has advanced by
			// this point and is not rewound.
			key := [2]string{date, activity}
			if filled[key] {
				plan.Skipped = append(plan.Skipped, SkippedSlot{
					Date:     date,
					Activity: activity,
					Reason:   SkipAlreadyFilled,
				})
				continue
			}

			filled[key] = true
			assigned[activity] = true
			plan.Assignments = append(plan.Assignments, Assignment{
				Date:      date,
				Activity:  activity,
				MemberID:  memberID,
				EventTime: occurrence.Event.Time,
			})
		}
	}

	return plan
}
