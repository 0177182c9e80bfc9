package roster

import (
	"sort"
	"strings"
)

// NormalizeActivities splits a comma-separated activity string into a
// de-duplicated, sorted list of trimmed activity names. Activity names are
// admin-defined free text matched by exact string equality, so this is the
// single normalization shared by event storage, eligibility indexing, and
// allocation; the three must never diverge.
func NormalizeActivities(activities string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, raw := range strings.Split(activities, ",") {
		activity := strings.TrimSpace(raw)
		if activity == "" || seen[activity] {
			continue
		}
		seen[activity] = true
		result = append(result, activity)
	}

	// The source order carries no priority; sort for deterministic iteration
	sort.Strings(result)

	return result
}

// JoinActivities renders an activity list back into the stored
// comma-separated form
func JoinActivities(activities []string) string {
	return strings.Join(activities, ", ")
}
