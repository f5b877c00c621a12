package analytics

import "strings"

// defaultTargetDays applies when the frequency category is empty or
// unrecognized: half of a seven-day week.
const defaultTargetDays = 3.5

// TargetDaysPerWeek maps a user's workout-frequency category to a target
// number of training days per week. The category is free text and is
// normalized (trimmed, collapsed whitespace, upper-cased) before matching.
func TargetDaysPerWeek(frequency string) float64 {
	normalized := strings.ToUpper(strings.Join(strings.Fields(frequency), " "))
	switch normalized {
	case "LOW":
		return 2
	case "MEDIUM":
		return 4
	case "HIGH":
		return 6
	case "ATHLETE":
		return 7
	default:
		return defaultTargetDays
	}
}

// ConsistencyScore converts an actual unique-training-days-per-week rate into
// a 0–100 percentage of the user's target, capped at 100. A rate of zero or
// below scores zero regardless of category.
func ConsistencyScore(avgUniqueDaysPerWeek float64, frequency string) float64 {
	if avgUniqueDaysPerWeek <= 0 {
		return 0
	}
	target := TargetDaysPerWeek(frequency)
	if target <= 0 {
		target = defaultTargetDays
	}
	score := avgUniqueDaysPerWeek / target * 100
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
