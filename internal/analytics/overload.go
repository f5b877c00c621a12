package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

// Progression status labels.
const (
	StatusProgressing = "progressing"
	StatusMaintaining = "maintaining"
	StatusPlateau     = "plateau"
)

// ProgressPoint records a new running-maximum working weight for an exercise.
type ProgressPoint struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Reps   *int      `json:"reps,omitempty"`
}

// ProgressiveOverload is the per-exercise progression result.
type ProgressiveOverload struct {
	ExerciseID      uuid.UUID       `json:"exercise_id"`
	ExerciseName    string          `json:"exercise_name"`
	MuscleGroup     string          `json:"muscle_group"`
	StartingWeight  float64         `json:"starting_weight"`
	CurrentWeight   float64         `json:"current_weight"`
	ProgressPercent float64         `json:"progress_percent"`
	Status          string          `json:"status"`
	ProgressPoints  []ProgressPoint `json:"progress_points"`
}

// TrackProgressiveOverload walks each exercise's main sets in chronological
// order and emits a progress point whenever a set's weight strictly exceeds
// the running maximum, so the points form a monotonic envelope. Exercises with
// no progress points are excluded; results are sorted by progress percent
// descending. Status is judged against the range end: progressing when the
// last new maximum is at most 14 days old, plateau when it is over 30 days
// old, maintaining otherwise or when fewer than two points exist.
func TrackProgressiveOverload(in Input, to time.Time) []ProgressiveOverload {
	if len(in.Sessions) == 0 {
		return []ProgressiveOverload{}
	}

	sessions := in.sessionIndex()
	overloads := make([]ProgressiveOverload, 0)

	for exerciseID, sets := range in.setsByExercise() {
		exercise, ok := in.Exercises[exerciseID]
		if !ok {
			continue
		}

		ordered := make([]models.WorkoutSet, len(sets))
		copy(ordered, sets)
		sort.SliceStable(ordered, func(i, j int) bool {
			si, oki := sessions[ordered[i].SessionID]
			sj, okj := sessions[ordered[j].SessionID]
			if !oki || !okj {
				return false
			}
			return si.StartedAt.Before(sj.StartedAt)
		})

		var points []ProgressPoint
		currentMax := 0.0
		for _, ws := range ordered {
			if ws.Weight == nil || !isMainSet(ws) {
				continue
			}
			session, ok := sessions[ws.SessionID]
			if !ok {
				continue
			}
			if *ws.Weight > currentMax {
				currentMax = *ws.Weight
				points = append(points, ProgressPoint{
					Date:   DayOf(session.StartedAt),
					Weight: *ws.Weight,
					Reps:   ws.Reps,
				})
			}
		}

		if len(points) == 0 {
			continue
		}

		first := points[0].Weight
		last := points[len(points)-1].Weight
		progressPercent := 0.0
		if first > 0 {
			progressPercent = (last - first) / first * 100
		}

		status := StatusMaintaining
		if len(points) >= 2 {
			sinceProgress := daysBetween(points[len(points)-1].Date, to)
			switch {
			case sinceProgress <= 14:
				status = StatusProgressing
			case sinceProgress > 30:
				status = StatusPlateau
			}
		}

		overloads = append(overloads, ProgressiveOverload{
			ExerciseID:      exerciseID,
			ExerciseName:    exercise.Name,
			MuscleGroup:     exercise.MuscleGroup,
			StartingWeight:  first,
			CurrentWeight:   last,
			ProgressPercent: round1(progressPercent),
			Status:          status,
			ProgressPoints:  points,
		})
	}

	sort.Slice(overloads, func(i, j int) bool {
		if overloads[i].ProgressPercent != overloads[j].ProgressPercent {
			return overloads[i].ProgressPercent > overloads[j].ProgressPercent
		}
		return overloads[i].ExerciseName < overloads[j].ExerciseName
	})
	return overloads
}
