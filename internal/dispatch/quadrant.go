package dispatch

import "strings"

// Quadrant derives an Eisenhower quadrant from a task's priority and
// importance. Rules are evaluated top to bottom, first match wins:
//
//	high priority + high importance → q1
//	high importance                 → q2
//	high priority                   → q3
//	everything else                 → q4
//
// Missing values default to "medium", which lands in q4 unless the other
// axis is explicitly high.
func Quadrant(priority, importance string) string {
	p := normalizeLevel(priority)
	i := normalizeLevel(importance)

	switch {
	case p == "high" && i == "high":
		return "q1"
	case i == "high":
		return "q2"
	case p == "high":
		return "q3"
	default:
		return "q4"
	}
}

func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return "medium"
	}
	return level
}
