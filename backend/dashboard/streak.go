package dashboard

// MissStreak returns the longest run of consecutive events for which happened
// is false. Events are expected most recent first; a run still open at the
// end of the slice counts.
func MissStreak[T any](events []T, happened func(T) bool) int {
	consecutive := 0
	longest := 0
	for _, event := range events {
		if !happened(event) {
			consecutive++
			continue
		}
		longest = max(longest, consecutive)
		consecutive = 0
	}
	return max(longest, consecutive)
}

// MinStreak is the shortest streak surfaced on the dashboard.
const MinStreak = 2
