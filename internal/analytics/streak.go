package analytics

import (
	"time"

	"github.com/claude/liftstats/internal/models"
)

// currentStreakCap bounds the backward walk of CurrentStreak.
const currentStreakCap = 365

// LongestStreak walks every calendar day in [from, to] and returns the
// longest run of consecutive days with at least one session start. Streaks
// count distinct workout days, not session counts.
func LongestStreak(sessions []models.WorkoutSession, from, to time.Time) int {
	if len(sessions) == 0 {
		return 0
	}
	days := workoutDays(sessions)

	longest, current := 0, 0
	for d := DayOf(from); !d.After(DayOf(to)); d = d.AddDate(0, 0, 1) {
		if _, ok := days[d]; ok {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

// CurrentStreak walks backward day-by-day from to while each day has a
// session, stopping at the first gap, when passing the earliest known workout
// day, or after 365 days.
func CurrentStreak(sessions []models.WorkoutSession, to time.Time) int {
	if len(sessions) == 0 {
		return 0
	}
	days := workoutDays(sessions)

	oldest := DayOf(to)
	for d := range days {
		if d.Before(oldest) {
			oldest = d
		}
	}

	streak := 0
	end := DayOf(to)
	for d := end; !d.Before(oldest); d = d.AddDate(0, 0, -1) {
		if _, ok := days[d]; !ok {
			break
		}
		streak++
		if daysBetween(d, end) >= currentStreakCap {
			break
		}
	}
	return streak
}
