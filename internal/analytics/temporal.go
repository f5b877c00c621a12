package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/claude/liftstats/internal/models"
)

// DayOf normalizes a timestamp to its calendar day (midnight UTC). All
// day-level bucketing keys on this value.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MondayOf returns the Monday of the ISO week containing t, at midnight UTC.
func MondayOf(t time.Time) time.Time {
	d := DayOf(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset)
}

// ISOWeekKey returns the "week-based-year:week" bucket key for t.
func ISOWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d:%02d", year, week)
}

// WeekSpan is one week slice of a date range. End is clipped to the range
// end, so the final span may cover fewer than seven days.
type WeekSpan struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WeekSpans splits [from, to] into consecutive seven-day spans starting at
// from, advancing by seven days, with the final span clipped to to.
func WeekSpans(from, to time.Time) []WeekSpan {
	from, to = DayOf(from), DayOf(to)
	var spans []WeekSpan
	for start := from; !start.After(to); start = start.AddDate(0, 0, 7) {
		end := start.AddDate(0, 0, 6)
		if end.After(to) {
			end = to
		}
		spans = append(spans, WeekSpan{Start: start, End: end})
	}
	return spans
}

// daysBetween counts whole days from a to b (both normalized to days).
func daysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)) / (24 * time.Hour))
}

// workoutDays collects the distinct calendar days on which any of the given
// sessions started.
func workoutDays(sessions []models.WorkoutSession) map[time.Time]struct{} {
	days := make(map[time.Time]struct{}, len(sessions))
	for _, s := range sessions {
		days[DayOf(s.StartedAt)] = struct{}{}
	}
	return days
}

// AverageUniqueDaysPerWeek converts a set of distinct workout days within
// [start, end] into a days-per-week rate. Ranges shorter than a week divide
// by one full week rather than extrapolating, so the result never exceeds the
// observed unique-day count, and never exceeds 7.
func AverageUniqueDaysPerWeek(days map[time.Time]struct{}, start, end time.Time) float64 {
	if len(days) == 0 || DayOf(start).After(DayOf(end)) {
		return 0
	}
	covered := daysBetween(start, end) + 1
	weeks := math.Max(1.0, float64(covered)/7.0)
	return math.Min(7.0, float64(len(days))/weeks)
}
