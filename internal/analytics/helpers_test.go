package analytics

import (
	"time"

	"github.com/claude/liftstats/internal/models"
	"github.com/google/uuid"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func finishedSession(userID uuid.UUID, startedAt time.Time) models.WorkoutSession {
	finished := startedAt.Add(time.Hour)
	return models.WorkoutSession{
		ID:         uuid.New(),
		UserID:     userID,
		StartedAt:  startedAt,
		FinishedAt: &finished,
		Status:     models.SessionFinished,
	}
}

func workingSet(sessionID, exerciseID uuid.UUID, weight float64, reps int) models.WorkoutSet {
	return models.WorkoutSet{
		ID:         uuid.New(),
		SessionID:  sessionID,
		ExerciseID: exerciseID,
		Weight:     fptr(weight),
		Reps:       iptr(reps),
	}
}

func warmupSet(sessionID, exerciseID uuid.UUID, weight float64, reps int) models.WorkoutSet {
	ws := workingSet(sessionID, exerciseID, weight, reps)
	ws.Warmup = true
	return ws
}

func dropSet(sessionID, exerciseID uuid.UUID, weight float64, reps, groupOrder int) models.WorkoutSet {
	ws := workingSet(sessionID, exerciseID, weight, reps)
	gt := models.GroupDropSet
	ws.GroupType = &gt
	ws.GroupOrder = iptr(groupOrder)
	return ws
}

func exerciseMap(exercises ...models.Exercise) map[uuid.UUID]models.Exercise {
	m := make(map[uuid.UUID]models.Exercise, len(exercises))
	for _, e := range exercises {
		m[e.ID] = e
	}
	return m
}

func benchPress() models.Exercise {
	return models.Exercise{ID: uuid.New(), Name: "Bench Press", MuscleGroup: "CHEST"}
}
