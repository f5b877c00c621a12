package analytics

import (
	"math"
	"strings"
	"time"
)

// DayCount is the workout count for one day of the current calendar week.
type DayCount struct {
	Day      string `json:"day"`
	Workouts int    `json:"workouts"`
}

// WeeklyBreakdown is the workout count for one week slice of the range.
type WeeklyBreakdown struct {
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
	Workouts  int       `json:"workouts"`
}

// TrainingFrequencySummary is the frequency/consistency result bundle.
type TrainingFrequencySummary struct {
	TotalWorkouts    int               `json:"total_workouts"`
	AvgPerWeek       float64           `json:"avg_per_week"`
	ByDayOfWeek      []DayCount        `json:"by_day_of_week"`
	WeeklyBreakdown  []WeeklyBreakdown `json:"weekly_breakdown"`
	LongestStreak    int               `json:"longest_streak"`
	CurrentStreak    int               `json:"current_streak"`
	ConsistencyScore float64           `json:"consistency_score"`
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// TrainingFrequency computes the frequency summary over [from, to]. Only
// FINISHED sessions count. The day-of-week histogram covers the calendar week
// containing now, not the whole range; the consistency score blends a 30-day
// rolling rate with the lifetime rate of the supplied history.
func TrainingFrequency(in Input, from, to time.Time, targetFrequency string, now time.Time) TrainingFrequencySummary {
	empty := TrainingFrequencySummary{
		ByDayOfWeek:     emptyDayCounts(),
		WeeklyBreakdown: []WeeklyBreakdown{},
	}

	finished := in.finishedSessions()
	if len(finished) == 0 {
		return empty
	}

	totalWorkouts := len(finished)

	uniqueWeeks := make(map[string]struct{})
	for _, s := range finished {
		uniqueWeeks[ISOWeekKey(s.StartedAt)] = struct{}{}
	}
	weekCount := len(uniqueWeeks)
	if weekCount == 0 {
		weekCount = 1
	}
	avgPerWeek := math.Floor(math.Min(7.0, float64(totalWorkouts)/float64(weekCount)))

	// Day-of-week histogram for the current calendar week only.
	byDay := emptyDayCounts()
	dayIndex := make(map[time.Weekday]int, len(weekdayOrder))
	for i, wd := range weekdayOrder {
		dayIndex[wd] = i
	}
	weekStart := MondayOf(now)
	weekEnd := weekStart.AddDate(0, 0, 6)
	for _, s := range finished {
		day := DayOf(s.StartedAt)
		if day.Before(weekStart) || day.After(weekEnd) {
			continue
		}
		byDay[dayIndex[day.Weekday()]].Workouts++
	}

	breakdown := make([]WeeklyBreakdown, 0, 8)
	for _, span := range WeekSpans(from, to) {
		count := 0
		for _, s := range finished {
			day := DayOf(s.StartedAt)
			if !day.Before(span.Start) && !day.After(span.End) {
				count++
			}
		}
		breakdown = append(breakdown, WeeklyBreakdown{
			WeekStart: span.Start,
			WeekEnd:   span.End,
			Workouts:  count,
		})
	}

	days := workoutDays(finished)

	recentStart := DayOf(now).AddDate(0, 0, -29)
	recentDays := make(map[time.Time]struct{})
	for d := range days {
		if !d.Before(recentStart) {
			recentDays[d] = struct{}{}
		}
	}
	recentRate := AverageUniqueDaysPerWeek(recentDays, recentStart, now)

	lifetimeStart := DayOf(now)
	for d := range days {
		if d.Before(lifetimeStart) {
			lifetimeStart = d
		}
	}
	lifetimeRate := AverageUniqueDaysPerWeek(days, lifetimeStart, now)

	var combined float64
	switch {
	case recentRate == 0 && lifetimeRate == 0:
		combined = 0
	case recentRate == 0:
		combined = lifetimeRate
	case lifetimeRate == 0:
		combined = recentRate
	default:
		combined = (recentRate + lifetimeRate) / 2
	}

	return TrainingFrequencySummary{
		TotalWorkouts:    totalWorkouts,
		AvgPerWeek:       round1(avgPerWeek),
		ByDayOfWeek:      byDay,
		WeeklyBreakdown:  breakdown,
		LongestStreak:    LongestStreak(finished, from, to),
		CurrentStreak:    CurrentStreak(finished, to),
		ConsistencyScore: round1(ConsistencyScore(combined, targetFrequency)),
	}
}

func emptyDayCounts() []DayCount {
	out := make([]DayCount, len(weekdayOrder))
	for i, wd := range weekdayOrder {
		out[i] = DayCount{Day: strings.ToUpper(wd.String())}
	}
	return out
}
