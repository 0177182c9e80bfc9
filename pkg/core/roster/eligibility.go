package roster

import "github.com/jakechorley/duty-roster/pkg/db"

// EligibilityIndex maps an activity name to the member IDs allowed to
// perform it. An activity with no grants is simply absent; lookups on it
// yield an empty set and the activity is never assigned.
type EligibilityIndex map[string][]string

// BuildEligibilityIndex builds the index from a tenant's grant rows.
// Activity names are matched by exact text, so no normalization is applied
// beyond what the grants already carry.
func BuildEligibilityIndex(grants []db.EligibilityGrant) EligibilityIndex {
	index := make(EligibilityIndex)
	for _, grant := range grants {
		index[grant.Activity] = append(index[grant.Activity], grant.MemberID)
	}
	return index
}
