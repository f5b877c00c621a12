package analytics

import (
	"testing"
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

func TestTrainingFrequencyEmptyInput(t *testing.T) {
	now := day(2026, time.March, 15)
	got := TrainingFrequency(Input{}, day(2026, time.February, 1), now, "", now)

	if got.TotalWorkouts != 0 || got.AvgPerWeek != 0 || got.ConsistencyScore != 0 {
		t.Errorf("non-zero summary for empty input: %+v", got)
	}
	if len(got.ByDayOfWeek) != 7 {
		t.Fatalf("ByDayOfWeek = %d entries, want 7", len(got.ByDayOfWeek))
	}
	if got.ByDayOfWeek[0].Day != "MONDAY" || got.ByDayOfWeek[6].Day != "SUNDAY" {
		t.Errorf("day order = %q..%q, want MONDAY..SUNDAY", got.ByDayOfWeek[0].Day, got.ByDayOfWeek[6].Day)
	}
	if got.WeeklyBreakdown == nil {
		t.Error("WeeklyBreakdown is nil, want empty slice")
	}
}

func TestTrainingFrequencyIgnoresUnfinishedSessions(t *testing.T) {
	user := uuid.New()
	now := day(2026, time.March, 15)
	open := models.WorkoutSession{ID: uuid.New(), UserID: user,
		StartedAt: day(2026, time.March, 10), Status: models.SessionInProgress}

	got := TrainingFrequency(Input{Sessions: []models.WorkoutSession{open}},
		day(2026, time.March, 1), now, "", now)
	if got.TotalWorkouts != 0 {
		t.Errorf("TotalWorkouts = %d, want 0 for in-progress only", got.TotalWorkouts)
	}
}

func TestTrainingFrequencyTotalsAndAverage(t *testing.T) {
	user := uuid.New()
	// Two workouts in one ISO week, one in the next: 3 / 2 weeks -> floor 1.
	sessions := []models.WorkoutSession{
		finishedSession(user, day(2026, time.March, 2).Add(9*time.Hour)),
		finishedSession(user, day(2026, time.March, 4).Add(9*time.Hour)),
		finishedSession(user, day(2026, time.March, 9).Add(9*time.Hour)),
	}
	now := day(2026, time.March, 12)

	got := TrainingFrequency(Input{Sessions: sessions},
		day(2026, time.March, 2), now, "", now)

	if got.TotalWorkouts != 3 {
		t.Errorf("TotalWorkouts = %d, want 3", got.TotalWorkouts)
	}
	if got.AvgPerWeek != 1 {
		t.Errorf("AvgPerWeek = %v, want 1", got.AvgPerWeek)
	}
	if len(got.WeeklyBreakdown) != 2 {
		t.Fatalf("WeeklyBreakdown = %d spans, want 2", len(got.WeeklyBreakdown))
	}
	if got.WeeklyBreakdown[0].Workouts != 2 || got.WeeklyBreakdown[1].Workouts != 1 {
		t.Errorf("breakdown counts = %d,%d, want 2,1",
			got.WeeklyBreakdown[0].Workouts, got.WeeklyBreakdown[1].Workouts)
	}
}

func TestTrainingFrequencyDayHistogramCoversCurrentWeekOnly(t *testing.T) {
	user := uuid.New()
	// now is Thursday March 12 2026; the current week is March 9..15.
	now := day(2026, time.March, 12)
	sessions := []models.WorkoutSession{
		finishedSession(user, day(2026, time.March, 9).Add(9*time.Hour)),  // Monday, this week
		finishedSession(user, day(2026, time.March, 11).Add(9*time.Hour)), // Wednesday, this week
		finishedSession(user, day(2026, time.March, 4).Add(9*time.Hour)),  // last week, excluded
	}

	got := TrainingFrequency(Input{Sessions: sessions},
		day(2026, time.March, 1), now, "", now)

	counts := make(map[string]int)
	for _, dc := range got.ByDayOfWeek {
		counts[dc.Day] = dc.Workouts
	}
	if counts["MONDAY"] != 1 || counts["WEDNESDAY"] != 1 {
		t.Errorf("histogram = %v, want MONDAY=1 WEDNESDAY=1", counts)
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != 2 {
		t.Errorf("histogram total = %d, want 2 (prior weeks excluded)", total)
	}
}

func TestTrainingFrequencyStreaksWiredIn(t *testing.T) {
	user := uuid.New()
	now := day(2026, time.March, 12)
	sessions := []models.WorkoutSession{
		finishedSession(user, day(2026, time.March, 10).Add(8*time.Hour)),
		finishedSession(user, day(2026, time.March, 11).Add(8*time.Hour)),
		finishedSession(user, day(2026, time.March, 12).Add(8*time.Hour)),
	}

	got := TrainingFrequency(Input{Sessions: sessions},
		day(2026, time.March, 1), now, "", now)

	if got.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", got.LongestStreak)
	}
	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
	}
}

func TestTrainingFrequencyStreakThroughInclusiveEndDate(t *testing.T) {
	user := uuid.New()
	// A range queried as end=2026-03-07 ends on March 7 itself. The streak
	// walks back from that day, not from the day after.
	to := day(2026, time.March, 7)
	sessions := []models.WorkoutSession{
		finishedSession(user, day(2026, time.March, 5).Add(8*time.Hour)),
		finishedSession(user, day(2026, time.March, 6).Add(8*time.Hour)),
		finishedSession(user, day(2026, time.March, 7).Add(8*time.Hour)),
	}

	got := TrainingFrequency(Input{Sessions: sessions},
		day(2026, time.March, 1), to, "", to)

	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
	}
	if got.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", got.LongestStreak)
	}
}

func TestTrainingFrequencyConsistencyBlendsRecentAndLifetime(t *testing.T) {
	user := uuid.New()
	now := day(2026, time.March, 12)
	// All history inside the last 30 days: the recent and lifetime rates
	// coincide, so the blend equals either one.
	var sessions []models.WorkoutSession
	for d := 0; d < 21; d += 7 {
		start := day(2026, time.February, 16).AddDate(0, 0, d)
		sessions = append(sessions,
			finishedSession(user, start.Add(8*time.Hour)),
			finishedSession(user, start.AddDate(0, 0, 2).Add(8*time.Hour)),
			finishedSession(user, start.AddDate(0, 0, 4).Add(8*time.Hour)),
		)
	}

	got := TrainingFrequency(Input{Sessions: sessions},
		day(2026, time.February, 16), now, "MEDIUM", now)

	// 9 unique days over roughly 3.5 weeks against a target of 4 days/week
	// lands well inside (0, 100).
	if got.ConsistencyScore <= 0 || got.ConsistencyScore >= 100 {
		t.Errorf("ConsistencyScore = %v, want within (0, 100)", got.ConsistencyScore)
	}
}
