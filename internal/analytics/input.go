// Package analytics turns raw workout history into derived training metrics:
// frequency and consistency scoring, streaks, volume trends, progressive
// overload, personal records, milestones, template analytics, and session
// comparison.
//
// Every component is a pure function over caller-supplied collections; none
// performs I/O except milestone reconciliation, which goes through the
// MilestoneStore interface. The caller fetches all sessions, sets, exercises
// and templates up front.
package analytics

import (
	"math"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

// Input bundles the pre-fetched collections every component computes over.
// Exercises is a lookup map; sets referencing an exercise missing from it are
// skipped rather than failing the computation.
type Input struct {
	Sessions  []models.WorkoutSession
	Sets      []models.WorkoutSet
	Exercises map[uuid.UUID]models.Exercise
}

func (in Input) sessionIndex() map[uuid.UUID]models.WorkoutSession {
	idx := make(map[uuid.UUID]models.WorkoutSession, len(in.Sessions))
	for _, s := range in.Sessions {
		idx[s.ID] = s
	}
	return idx
}

func (in Input) setsByExercise() map[uuid.UUID][]models.WorkoutSet {
	grouped := make(map[uuid.UUID][]models.WorkoutSet)
	for _, ws := range in.Sets {
		grouped[ws.ExerciseID] = append(grouped[ws.ExerciseID], ws)
	}
	return grouped
}

func (in Input) finishedSessions() []models.WorkoutSession {
	var out []models.WorkoutSession
	for _, s := range in.Sessions {
		if s.Status == models.SessionFinished {
			out = append(out, s)
		}
	}
	return out
}

// isMainSet reports whether a set counts toward volume and progression
// analytics: not a warmup, and if part of a drop-set group, only the first
// (group order nil or 0) member. Superset members all count.
func isMainSet(ws models.WorkoutSet) bool {
	if ws.Warmup {
		return false
	}
	if ws.GroupType != nil && *ws.GroupType == models.GroupDropSet {
		return ws.GroupOrder == nil || *ws.GroupOrder == 0
	}
	return true
}

// setVolume returns weight × reps, defined only when both are present.
func setVolume(ws models.WorkoutSet) (float64, bool) {
	if ws.Weight == nil || ws.Reps == nil {
		return 0, false
	}
	return *ws.Weight * float64(*ws.Reps), true
}

// mainSetVolume returns setVolume restricted to main sets. Warmups and
// drop-set continuations never contribute to aggregated volume.
func mainSetVolume(ws models.WorkoutSet) (float64, bool) {
	if !isMainSet(ws) {
		return 0, false
	}
	return setVolume(ws)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
