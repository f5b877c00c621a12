package analytics

import (
	"errors"
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

// ErrForbidden is returned when a compared session does not belong to the
// requesting user. This is the one user-facing validation boundary in the
// engine; everything else degrades to empty results.
var ErrForbidden = errors.New("session does not belong to user")

// Comparison trend labels (±5% thresholds).
const (
	TrendImproving  = "improving"
	TrendDeclining  = "declining"
	TrendImproved   = "improved"
	TrendDeclined   = "declined"
	TrendMaintained = "maintained"
)

// SessionStats is the per-session side of a comparison.
type SessionStats struct {
	SessionID       uuid.UUID `json:"session_id"`
	StartedAt       time.Time `json:"started_at"`
	Volume          float64   `json:"volume"`
	Sets            int       `json:"sets"`
	DurationMinutes int       `json:"duration_minutes"`
}

// ComparisonSummary is the session-level diff.
type ComparisonSummary struct {
	VolumeDiff          float64 `json:"volume_diff"`
	VolumeChangePercent float64 `json:"volume_change_percent"`
	SetsDiff            int     `json:"sets_diff"`
	OverallTrend        string  `json:"overall_trend"`
}

// ExerciseSideStats summarizes one exercise within one session.
type ExerciseSideStats struct {
	Sets      int     `json:"sets"`
	AvgWeight float64 `json:"avg_weight"`
	MaxWeight float64 `json:"max_weight"`
	TotalReps int     `json:"total_reps"`
	Volume    float64 `json:"volume"`
}

// ExerciseDifference is the per-exercise diff block.
type ExerciseDifference struct {
	WeightChange        float64 `json:"weight_change"`
	WeightChangePercent float64 `json:"weight_change_percent"`
	SetsChange          int     `json:"sets_change"`
	VolumeChange        float64 `json:"volume_change"`
	VolumeChangePercent float64 `json:"volume_change_percent"`
	Trend               string  `json:"trend"`
}

// ExerciseComparison is the side-by-side block for one exercise appearing in
// either session.
type ExerciseComparison struct {
	ExerciseID   uuid.UUID          `json:"exercise_id"`
	ExerciseName string             `json:"exercise_name"`
	MuscleGroup  string             `json:"muscle_group"`
	First        ExerciseSideStats  `json:"first"`
	Second       ExerciseSideStats  `json:"second"`
	Difference   ExerciseDifference `json:"difference"`
}

// SessionComparison is the structured diff between two sessions.
type SessionComparison struct {
	First     SessionStats         `json:"first"`
	Second    SessionStats         `json:"second"`
	Summary   ComparisonSummary    `json:"summary"`
	Exercises []ExerciseComparison `json:"exercises"`
}

// CompareSessions produces a structured diff between two sessions the user
// owns. Comparing a session against itself yields all-zero deltas and a
// stable trend.
func CompareSessions(userID uuid.UUID, first, second models.WorkoutSession, firstSets, secondSets []models.WorkoutSet, exercises map[uuid.UUID]models.Exercise) (*SessionComparison, error) {
	if first.UserID != userID || second.UserID != userID {
		return nil, ErrForbidden
	}

	firstStats := sessionStats(first, firstSets)
	secondStats := sessionStats(second, secondSets)

	volumeDiff := secondStats.Volume - firstStats.Volume
	volumePercent := 0.0
	if firstStats.Volume > 0 {
		volumePercent = volumeDiff / firstStats.Volume * 100
	}
	overall := TrendStable
	if volumePercent > 5 {
		overall = TrendImproving
	} else if volumePercent < -5 {
		overall = TrendDeclining
	}

	summary := ComparisonSummary{
		VolumeDiff:          volumeDiff,
		VolumeChangePercent: round1(volumePercent),
		SetsDiff:            len(secondSets) - len(firstSets),
		OverallTrend:        overall,
	}

	// Union of exercises in first-seen order.
	var order []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, ws := range firstSets {
		if _, ok := seen[ws.ExerciseID]; !ok {
			seen[ws.ExerciseID] = struct{}{}
			order = append(order, ws.ExerciseID)
		}
	}
	for _, ws := range secondSets {
		if _, ok := seen[ws.ExerciseID]; !ok {
			seen[ws.ExerciseID] = struct{}{}
			order = append(order, ws.ExerciseID)
		}
	}

	comparisons := make([]ExerciseComparison, 0, len(order))
	for _, exerciseID := range order {
		exercise, ok := exercises[exerciseID]
		if !ok {
			continue
		}

		a := exerciseSideStats(filterByExercise(firstSets, exerciseID))
		b := exerciseSideStats(filterByExercise(secondSets, exerciseID))

		weightChange := b.AvgWeight - a.AvgWeight
		weightPercent := 0.0
		if a.AvgWeight > 0 {
			weightPercent = weightChange / a.AvgWeight * 100
		}
		volumeChange := b.Volume - a.Volume
		exVolumePercent := 0.0
		if a.Volume > 0 {
			exVolumePercent = volumeChange / a.Volume * 100
		}
		trend := TrendMaintained
		if exVolumePercent > 5 {
			trend = TrendImproved
		} else if exVolumePercent < -5 {
			trend = TrendDeclined
		}

		comparisons = append(comparisons, ExerciseComparison{
			ExerciseID:   exerciseID,
			ExerciseName: exercise.Name,
			MuscleGroup:  exercise.MuscleGroup,
			First:        a,
			Second:       b,
			Difference: ExerciseDifference{
				WeightChange:        weightChange,
				WeightChangePercent: round1(weightPercent),
				SetsChange:          b.Sets - a.Sets,
				VolumeChange:        volumeChange,
				VolumeChangePercent: round1(exVolumePercent),
				Trend:               trend,
			},
		})
	}

	return &SessionComparison{
		First:     firstStats,
		Second:    secondStats,
		Summary:   summary,
		Exercises: comparisons,
	}, nil
}

func sessionStats(s models.WorkoutSession, sets []models.WorkoutSet) SessionStats {
	var volume float64
	for _, ws := range sets {
		if v, ok := mainSetVolume(ws); ok {
			volume += v
		}
	}

	duration := 0
	if s.FinishedAt != nil {
		duration = int(s.FinishedAt.Sub(s.StartedAt).Minutes())
	}

	return SessionStats{
		SessionID:       s.ID,
		StartedAt:       s.StartedAt,
		Volume:          volume,
		Sets:            len(sets),
		DurationMinutes: duration,
	}
}

func exerciseSideStats(sets []models.WorkoutSet) ExerciseSideStats {
	stats := ExerciseSideStats{Sets: len(sets)}
	if len(sets) == 0 {
		return stats
	}

	weighted := 0
	var weightSum float64
	for _, ws := range sets {
		if ws.Weight != nil {
			weighted++
			weightSum += *ws.Weight
			if *ws.Weight > stats.MaxWeight {
				stats.MaxWeight = *ws.Weight
			}
		}
		if ws.Reps != nil {
			stats.TotalReps += *ws.Reps
		}
		if v, ok := mainSetVolume(ws); ok {
			stats.Volume += v
		}
	}
	if weighted > 0 {
		stats.AvgWeight = round2(weightSum / float64(weighted))
	}
	return stats
}

func filterByExercise(sets []models.WorkoutSet, exerciseID uuid.UUID) []models.WorkoutSet {
	var out []models.WorkoutSet
	for _, ws := range sets {
		if ws.ExerciseID == exerciseID {
			out = append(out, ws)
		}
	}
	return out
}
