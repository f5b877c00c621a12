package analytics

import (
	"testing"
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

func sessionsOnDays(userID uuid.UUID, days ...time.Time) []models.WorkoutSession {
	out := make([]models.WorkoutSession, 0, len(days))
	for _, d := range days {
		out = append(out, finishedSession(userID, d.Add(10*time.Hour)))
	}
	return out
}

func TestLongestStreak(t *testing.T) {
	user := uuid.New()
	from, to := day(2026, time.March, 1), day(2026, time.March, 7)

	tests := []struct {
		name     string
		sessions []models.WorkoutSession
		want     int
	}{
		{"no sessions", nil, 0},
		{
			// Workouts on days 1,2,3,5,6 of the week: longest run is 3.
			name: "gap breaks the run",
			sessions: sessionsOnDays(user,
				day(2026, time.March, 1), day(2026, time.March, 2), day(2026, time.March, 3),
				day(2026, time.March, 5), day(2026, time.March, 6)),
			want: 3,
		},
		{
			name: "two sessions same day count once",
			sessions: append(
				sessionsOnDays(user, day(2026, time.March, 4)),
				sessionsOnDays(user, day(2026, time.March, 4))...),
			want: 1,
		},
		{
			name: "full week",
			sessions: sessionsOnDays(user,
				day(2026, time.March, 1), day(2026, time.March, 2), day(2026, time.March, 3),
				day(2026, time.March, 4), day(2026, time.March, 5), day(2026, time.March, 6),
				day(2026, time.March, 7)),
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestStreak(tt.sessions, from, to); got != tt.want {
				t.Errorf("LongestStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreak(t *testing.T) {
	user := uuid.New()

	tests := []struct {
		name     string
		sessions []models.WorkoutSession
		to       time.Time
		want     int
	}{
		{"no sessions", nil, day(2026, time.March, 7), 0},
		{
			// No workout on the end day: the streak is already broken.
			name: "gap on end day",
			sessions: sessionsOnDays(user,
				day(2026, time.March, 5), day(2026, time.March, 6)),
			to:   day(2026, time.March, 7),
			want: 0,
		},
		{
			name: "counts back to first gap",
			sessions: sessionsOnDays(user,
				day(2026, time.March, 3),
				day(2026, time.March, 5), day(2026, time.March, 6), day(2026, time.March, 7)),
			to:   day(2026, time.March, 7),
			want: 3,
		},
		{
			name:     "stops at earliest workout day",
			sessions: sessionsOnDays(user, day(2026, time.March, 7)),
			to:       day(2026, time.March, 7),
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.sessions, tt.to); got != tt.want {
				t.Errorf("CurrentStreak = %d, want %d", got, tt.want)
			}
		})
	}
}
